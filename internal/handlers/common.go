package handlers

import (
	"net/http"
	"strconv"

	dom "Lucky/internal/domain"
	"Lucky/internal/dto"
	"Lucky/internal/logging"

	"github.com/gin-gonic/gin"
)

// internalError logs err and answers 500 with msg only; driver errors never reach the client.
func internalError(c *gin.Context, log logging.Logger, msg string, err error) {
	log.Error(c.Request.Context(), msg, "error", err, "route", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func accountToResponse(a dom.Account) dto.AccountResponse {
	return dto.AccountResponse{ID: a.ID, Email: a.Email, Credits: a.Credits}
}

func accountsToResponses(list []dom.Account) []dto.AccountResponse {
	out := make([]dto.AccountResponse, len(list))
	for i := range list {
		out[i] = accountToResponse(list[i])
	}
	return out
}
