package handler

import (
	"github.com/gin-gonic/gin"

	"userhub/internal/app"
	"userhub/internal/transport/http/response"
)

type AdminHandler struct {
	auth *app.AuthService
}

func NewAdminHandler(auth *app.AuthService) *AdminHandler {
	return &AdminHandler{auth: auth}
}

// ListUsers returns every registered user, digests excluded by serialization.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, users)
}
