package handlers

import (
	"errors"
	"net/http"

	"Lucky/internal/auth"
	dom "Lucky/internal/domain"
	"Lucky/internal/dto"
	"Lucky/internal/logging"
	"Lucky/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles player register, login and logout.
type AuthHandler struct {
	sessions *auth.Manager
	accounts *service.AccountService
	log      logging.Logger
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Manager, accounts *service.AccountService, log logging.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, accounts: accounts, log: log}
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        body  body      dto.CredentialsRequest  true  "Credentials"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		if errors.Is(err, service.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		internalError(c, h.log, "registration failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterResponse{Message: "account created, please log in", Account: accountToResponse(a)})
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded,json
// @Produce      json
// @Param        body  body      dto.CredentialsRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.accounts.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		internalError(c, h.log, "login failed", err)
		return
	}
	if err := h.sessions.Renew(c, func(s *dom.Session) { s.AccountID = a.ID }); err != nil {
		internalError(c, h.log, "failed to create session", err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{OK: true, Account: accountToResponse(a)})
}

// Logout godoc
// @Summary      Logout (clears the player and admin identity)
// @Tags         auth
// @Success      303
// @Router       /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c); err != nil {
		internalError(c, h.log, "logout failed", err)
		return
	}
	c.Redirect(http.StatusSeeOther, auth.LoginPath)
}
