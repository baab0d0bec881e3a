package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/app"
	"userhub/internal/transport/http/middleware"
	"userhub/internal/transport/http/response"
	"userhub/internal/validation"
)

type AuthHandler struct {
	auth     *app.AuthService
	validate *validation.Validator
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Email    string `json:"email" validate:"required,min=3,max=255,email,tld"`
	Phone    string `json:"phone" validate:"required,digits,min=10,max=15"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

func (r *RegisterRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	// password is taken verbatim
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,min=3,max=255,email,tld"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

func (r *LoginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func NewAuthHandler(auth *app.AuthService, validate *validation.Validator) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.normalize()
	if err := h.validate.Struct(&req); err != nil {
		response.FromError(c, err)
		return
	}

	result, err := h.auth.Register(c.Request.Context(), app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message":     "User registered successfully",
		"createdUser": result.User,
		"token":       result.Token,
		"userId":      formatUserID(result.User.ID),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.normalize()
	if err := h.validate.Struct(&req); err != nil {
		response.FromError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"userId":  formatUserID(result.User.ID),
	})
}

// CurrentUser returns the record the auth gate resolved for this request.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.MsgUnauthorized)
		return
	}
	response.OK(c, user)
}

func formatUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
