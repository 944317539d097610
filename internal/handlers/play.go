package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"Lucky/internal/auth"
	dom "Lucky/internal/domain"
	"Lucky/internal/dto"
	"Lucky/internal/logging"
	"Lucky/internal/service"

	"github.com/gin-gonic/gin"
)

type PlayHandler struct {
	accounts *service.AccountService
	plays    *service.PlayService
	log      logging.Logger
}

func NewPlayHandler(accounts *service.AccountService, plays *service.PlayService, log logging.Logger) *PlayHandler {
	return &PlayHandler{accounts: accounts, plays: plays, log: log}
}

// Status godoc
// @Summary      Current account and the cost of a play
// @Tags         play
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.PlayStatusResponse
// @Failure      303
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /play [get]
func (h *PlayHandler) Status(c *gin.Context) {
	a, err := h.accounts.Get(c.Request.Context(), auth.AccountIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		internalError(c, h.log, "failed to load account", err)
		return
	}
	c.JSON(http.StatusOK, dto.PlayStatusResponse{Account: accountToResponse(a), Cost: service.PlayCost})
}

// Play godoc
// @Summary      Spend credits for a chance to win a prize
// @Tags         play
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.PlayResponse
// @Failure      303
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /play [post]
func (h *PlayHandler) Play(c *gin.Context) {
	res, err := h.plays.Play(c.Request.Context(), auth.AccountIDFromContext(c), service.PlayCost)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientCredits) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient credits"})
			return
		}
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		internalError(c, h.log, "play failed", err)
		return
	}
	c.JSON(http.StatusOK, playToResponse(res))
}

func playToResponse(r dom.PlayResult) dto.PlayResponse {
	msg := fmt.Sprintf("You lost %d.", r.Cost)
	if r.Win {
		msg = fmt.Sprintf("You won %d! (cost: %d)", r.Prize, r.Cost)
	}
	return dto.PlayResponse{Win: r.Win, Prize: r.Prize, Cost: r.Cost, Balance: r.Balance, Message: msg}
}
