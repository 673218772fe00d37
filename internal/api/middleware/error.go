package middleware

import (
	"github.com/aven-ai/support-agent/internal/models"
	"github.com/emicklei/go-restful/v3"
)

// WriteError writes the service's uniform {error, message} body.
func WriteError(resp *restful.Response, status int, errorText string, message string) {
	_ = resp.WriteHeaderAndEntity(status, models.ErrorResponse{
		Error:   errorText,
		Message: message,
	})
}
