package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"brightevents-backend/internal/auth"
	"brightevents-backend/internal/middleware"
)

type AuthHandler struct {
	svc    *auth.Service
	logger *slog.Logger
}

func NewAuthHandler(svc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"cpassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ========================
// REGISTER
// ========================

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), auth.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "You registered successfully. Please login",
		"user":    user,
	})
}

// ========================
// LOGIN
// ========================

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "You logged in successfully",
		"access_token": token,
	})
}

// ========================
// LOGOUT / DELETE ACCOUNT
// ========================

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAccount(c.Request.Context(), user, middleware.CurrentToken(c)); err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
