package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidoukh/shidoukh/internal/services"
	"github.com/shidoukh/shidoukh/internal/sessions"
	apperrors "github.com/shidoukh/shidoukh/pkg/errors"
	"github.com/shidoukh/shidoukh/pkg/response"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	auth     *services.AuthService
	sessions *sessions.Manager
}

// NewAuthHandler wires an AuthHandler.
func NewAuthHandler(auth *services.AuthService, sessionManager *sessions.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessionManager}
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates the account and opens a session right away. Signing in
// through the login form still requires a confirmed email; the fresh
// session only lets the new user land on the dashboard shell.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, services.ErrRequiredFields)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sessions.Create(c, user.ID)
	c.JSON(http.StatusCreated, response.Response{
		Success: true,
		Message: services.MsgAccountCreated,
		Data:    user.Public(),
	})
}

// Login verifies credentials and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, services.ErrRequiredFields)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.sessions.Create(c, user.ID)
	c.JSON(http.StatusOK, response.Response{
		Success: true,
		Message: services.MsgLoginSuccess,
		Data:    user.Public(),
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	response.Message(c, http.StatusOK, "Déconnexion réussie")
}

// Me returns the identity behind the session cookie.
func (h *AuthHandler) Me(c *gin.Context) {
	user := h.sessions.CurrentUser(c)
	if user == nil {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ForgotPassword triggers the reset email. The response is identical
// whether or not the address has an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, services.ErrRequiredFields)
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, services.MsgResetEmailSent)
}

// ResetPassword consumes a reset link.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, services.ErrRequiredFields)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, services.MsgPasswordReset)
}

// ConfirmEmail consumes the confirmation link. The token arrives as a query
// parameter when the link is clicked from an email client, or in the body
// when the front-end relays it.
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var req struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.Token
		}
	}

	if err := h.auth.ConfirmEmail(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, services.MsgEmailConfirmed)
}
