package controllers

import (
	"errors"
	"net/http"

	"foodgram/config"
	"foodgram/logging"
	"foodgram/services"

	"github.com/gin-gonic/gin"
)

var configuration = config.Default()

// SetConfigurations é chamado pelo main antes do router subir.
func SetConfigurations(c config.Configuration) {
	configuration = c
}

func recipePolicy() services.Policy {
	return services.Policy{MaxCookingTime: configuration.Recipes.MaxCookingTime}
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// respondServiceError traduz os erros de services para status HTTP.
// Vínculo duplicado ou ausente nos toggles responde 400 {"errors": ...}.
func respondServiceError(c *gin.Context, err error) {
	var (
		verr     *services.ValidationError
		notFound *services.NotFoundError
		conflict *services.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{verr.Field: []string{verr.Message}})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"errors": "already added"})
	case errors.As(err, &notFound) && notFound.Entry:
		c.JSON(http.StatusBadRequest, gin.H{"errors": "already removed"})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"errors": conflict.Message})
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		RespondError(c, err.Error(), http.StatusForbidden)
	default:
		logging.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		RespondError(c, "internal error", http.StatusInternalServerError)
	}
}

// errorResult classifica o erro para as métricas.
func errorResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, services.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, services.ErrNotFound):
		return "not_found"
	case errors.Is(err, services.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
