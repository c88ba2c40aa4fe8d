package handlers

import (
	"github.com/gin-gonic/gin"

	"salespoint/internal/domain/auth"
	"salespoint/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves login.
type AuthHandler struct {
	BaseHandler
	svc *auth.Service
}

// NewAuthHandler creates the handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{
		Token: result.Token,
		User: dto.UserView{
			ID:       result.User.ID.String(),
			Username: result.User.Username,
			FullName: result.User.FullName,
			Roles:    result.User.Roles,
		},
	})
}
