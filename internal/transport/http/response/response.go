package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"userhub/internal/app"
	"userhub/internal/validation"
)

const (
	// MsgUnauthorized is deliberately the same for malformed, expired and
	// badly signed tokens so responses don't reveal which check failed.
	MsgUnauthorized = "Unauthorized"
	MsgServerError  = "Server error. Please try again later."
)

func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func ValidationFailed(c *gin.Context, verr *validation.Error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Validation Failed",
		"details": verr.Fields,
	})
}

// FromError is the single place domain errors become HTTP responses. Anything
// unrecognized is an infrastructure fault: logged in full, reported generically.
func FromError(c *gin.Context, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		ValidationFailed(c, verr)
	case errors.Is(err, app.ErrEmailExists):
		Error(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, app.ErrUserNotFound):
		Error(c, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, app.ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, "Invalid email or password")
	default:
		log.Printf("request failed: %v", err)
		Error(c, http.StatusInternalServerError, MsgServerError)
	}
}
