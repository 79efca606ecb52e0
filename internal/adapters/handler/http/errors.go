package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

var validationErrors = []error{
	domain.ErrInvalidDateKey,
	domain.ErrInvalidTimezone,
	domain.ErrCheckInFutureDate,
	domain.ErrJournalEmpty,
	domain.ErrJournalTooLong,
	domain.ErrEmotionRequired,
	domain.ErrEmotionTooLong,
	domain.ErrEmotionGlyphTooBig,
	domain.ErrInvalidEntryTime,
	domain.ErrTriggerSituationEmpty,
	domain.ErrTriggerTextTooLong,
	domain.ErrInvalidIntensity,
}

func handleError(c *gin.Context, log logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidUserID):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Errorf("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
