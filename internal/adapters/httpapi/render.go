package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func profileURL(username string) string { return "/profile/" + username + "/" }
func postURL(id string) string          { return "/posts/" + id + "/" }

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// notFound renders the shared 404 body.
func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// respondError turns the errors every view shares into a response.
// Validation and permission outcomes differ per view and are handled before this.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		notFound(c)
	case errors.Is(err, apperror.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	default:
		_ = c.Error(err)
		config.Logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

var bindMessages = map[string]string{
	"required": "This field is required.",
	"uuid":     "Select a valid choice. That choice is not one of the available choices.",
	"max":      "Ensure this value has fewer characters.",
}

// bindErrors converts gin binding failures into field messages.
func bindErrors(err error) *apperror.ValidationError {
	verr := &apperror.ValidationError{}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return verr.Add("__all__", "Invalid form data.")
	}
	for _, fe := range ves {
		msg, ok := bindMessages[fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		verr.Add(strings.ToLower(fe.Field()), msg)
	}
	return verr
}
