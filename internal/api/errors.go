package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/mealplanner-backend/internal/service"
)

// errorBody is the stable error shape every failure serializes to.
type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Error converts a service error into a JSON response. Anything outside
// the taxonomy is reported as backend_unavailable with the detail kept in
// the log.
func Error(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.Printf("unclassified error: %v", err)
		c.JSON(http.StatusInternalServerError, errorBody{
			Kind:    string(service.KindUnavailable),
			Message: "internal error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Kind {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindUnavailable:
		log.Printf("backend error: %v", svcErr)
	}

	c.JSON(status, errorBody{Kind: string(svcErr.Kind), Message: svcErr.Message})
}
