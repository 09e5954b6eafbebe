package api

import (
	"errors"
	"net/http"

	"akashic/domain/entities"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps domain errors to HTTP status codes. Unknown errors are
// logged server-side and reported as a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	var validationErr *entities.ValidationError
	if errors.As(err, &validationErr) {
		respondValidationError(c, err)
		return
	}

	switch {
	case errors.Is(err, entities.ErrSessionNotFound),
		errors.Is(err, entities.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, entities.ErrInsufficientMana):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})

	case errors.Is(err, entities.ErrInvalidKey):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrScrollNotFound),
		errors.Is(err, entities.ErrPackageNotFound),
		errors.Is(err, entities.ErrRecipeNotFound),
		errors.Is(err, entities.ErrQueueItemNotFound),
		errors.Is(err, entities.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, entities.ErrUsernameTaken),
		errors.Is(err, entities.ErrEmailTaken),
		errors.Is(err, entities.ErrDuplicatePurchase),
		errors.Is(err, entities.ErrMissingIngredients),
		errors.Is(err, entities.ErrCraftingNotReady),
		errors.Is(err, entities.ErrCraftingAlreadyClaimed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, entities.ErrOracleUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		log.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err,
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondValidationError reports a client input problem
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
