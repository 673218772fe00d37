package middleware

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

// RecoverPanic converts a handler panic into a generic 500 response.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("path", req.Request.URL.Path).Msg("Recovered from panic")
			WriteError(resp, http.StatusInternalServerError, "Internal server error", "unexpected failure")
		}
	}()

	chain.ProcessFilter(req, resp)
}
