package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medrec/hospital-api/internal/handler"
	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/service/auth"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Error(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Refresh exchanges the bearer refresh token for a new access token.
func (h *Handler) Refresh(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout revokes the bearer access token.
func (h *Handler) Logout(c *gin.Context) {
	token, err := bearerToken(c)
	if err != nil {
		handler.Error(c, err)
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "successfully logged out"})
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", apperrors.Unauthorized(errors.New("missing authorization header"))
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", apperrors.Unauthorized(errors.New("invalid authorization format"))
	}
	return parts[1], nil
}
