package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"clinic-appointment-api/internal/apperr"
	"clinic-appointment-api/internal/store"
)

type Handler struct {
	store  *store.Store
	secret string
	log    zerolog.Logger
}

func New(st *store.Store, secret string, log zerolog.Logger) *Handler {
	return &Handler{store: st, secret: secret, log: log}
}

// bindJSON decodes the body and collects every field violation instead of
// stopping at the first. A nil return means the request is valid.
func bindJSON(c *gin.Context, dst any) apperr.ValidationErrors {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(apperr.ValidationErrors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, apperr.FieldError{Field: fe.Field(), Message: tagMessage(fe)})
		}
		return out
	}
	return apperr.ValidationErrors{{Field: "body", Message: "invalid request body"}}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "eqfield":
		return "does not match " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// fail maps store/workflow errors onto HTTP responses.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": apperr.ErrNotFound.Error()})
	case errors.Is(err, apperr.ErrPendingApproval):
		c.JSON(http.StatusForbidden, gin.H{"error": apperr.ErrPendingApproval.Error()})
	case errors.Is(err, apperr.ErrRejected):
		c.JSON(http.StatusForbidden, gin.H{"error": apperr.ErrRejected.Error()})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperr.ErrInvalidCredentials.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
