package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"Lucky/internal/auth"
	dom "Lucky/internal/domain"
	"Lucky/internal/dto"
	"Lucky/internal/logging"
	"Lucky/internal/service"
	"Lucky/internal/utils"

	"github.com/gin-gonic/gin"
)

const dashboardPath = "/admin/dashboard"

type AdminHandler struct {
	sessions *auth.Manager
	admin    *service.AdminService
	log      logging.Logger
}

func NewAdminHandler(sessions *auth.Manager, admin *service.AdminService, log logging.Logger) *AdminHandler {
	return &AdminHandler{sessions: sessions, admin: admin, log: log}
}

// Login godoc
// @Summary      Admin login against the configured credentials
// @Tags         admin
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        body  body      dto.CredentialsRequest  true  "Admin credentials"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.admin.Login(req.Email, req.Password); err != nil {
		h.log.Warn(c.Request.Context(), "admin login rejected", "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin credentials"})
		return
	}
	if err := h.sessions.Renew(c, func(s *dom.Session) { s.Admin = true }); err != nil {
		internalError(c, h.log, "failed to create session", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "admin session started"})
}

// Logout godoc
// @Summary      Admin logout (the player identity, if any, stays)
// @Tags         admin
// @Success      303
// @Router       /admin/logout [get]
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.sessions.Update(c, func(s *dom.Session) { s.Admin = false }); err != nil {
		internalError(c, h.log, "logout failed", err)
		return
	}
	c.Redirect(http.StatusSeeOther, auth.AdminLoginPath)
}

// Dashboard godoc
// @Summary      Roster and current loss probability
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.DashboardResponse
// @Failure      303
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	h.renderDashboard(c, "")
}

// UpdateLossProb godoc
// @Summary      Set the loss probability; values outside [0,1] are ignored
// @Tags         admin
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.UpdateLossProbRequest  true  "New loss probability"
// @Success      200   {object}  dto.DashboardResponse
// @Failure      303
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /admin/dashboard [post]
func (h *AdminHandler) UpdateLossProb(c *gin.Context) {
	var req dto.UpdateLossProbRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raw := utils.FormatProbability(dom.DefaultLossProb)
	if req.LossProb != nil {
		raw = strings.TrimSpace(*req.LossProb)
	}

	msg := ""
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		h.log.Warn(c.Request.Context(), "ignoring unparsable loss_prob", "value", raw)
	} else if err := h.admin.UpdateLossProbability(c.Request.Context(), p); err != nil {
		if !errors.Is(err, service.ErrInvalidSettingValue) {
			internalError(c, h.log, "failed to update loss probability", err)
			return
		}
		h.log.Warn(c.Request.Context(), "ignoring out-of-range loss_prob", "value", raw)
	} else {
		h.log.Info(c.Request.Context(), "loss probability updated", "value", p)
		msg = "loss probability updated"
	}
	h.renderDashboard(c, msg)
}

// CreateDemo godoc
// @Summary      Demo accounts are created through normal registration
// @Tags         admin
// @Produce      json
// @Security     CookieAuth
// @Param        user_id  path      int  true  "Account ID"
// @Success      200      {object}  dto.MessageResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /admin/create_demo/{user_id} [get]
func (h *AdminHandler) CreateDemo(c *gin.Context) {
	if _, ok := parseID(c, "user_id"); !ok {
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "use normal registration to create demo accounts; see " + dashboardPath})
}

func (h *AdminHandler) renderDashboard(c *gin.Context, msg string) {
	d, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		internalError(c, h.log, "failed to load dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		Accounts: accountsToResponses(d.Accounts),
		LossProb: d.LossProb,
		Message:  msg,
	})
}
