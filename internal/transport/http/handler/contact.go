package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/app"
	"userhub/internal/transport/http/response"
	"userhub/internal/validation"
)

type ContactHandler struct {
	contact  *app.ContactService
	validate *validation.Validator
}

type ContactRequest struct {
	Email   string `json:"email" validate:"required,min=3,max=255,email,tld"`
	Subject string `json:"subject" validate:"required,min=3,max=255"`
	Message string `json:"message" validate:"required,min=3,max=255"`
}

func (r *ContactRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func NewContactHandler(contact *app.ContactService, validate *validation.Validator) *ContactHandler {
	return &ContactHandler{contact: contact, validate: validate}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.normalize()
	if err := h.validate.Struct(&req); err != nil {
		response.FromError(c, err)
		return
	}

	submission, err := h.contact.Submit(c.Request.Context(), app.ContactInput{
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message":  "Form Submitted Successfully",
		"formData": submission,
	})
}
