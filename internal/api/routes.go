package api

import (
	"github.com/aven-ai/support-agent/internal/models"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("query").
			To(handler.Query).
			Doc("Answer a question about Aven's products").
			Metadata(restfulspec.KeyOpenAPITags, []string{"query"}).
			Reads(models.QueryRequest{}).
			Writes(models.QueryResponse{}).
			Returns(200, "OK", models.QueryResponse{}).
			Returns(400, "Bad Request", models.ErrorResponse{}).
			Returns(500, "Internal Server Error", models.ErrorResponse{}))

	ws.
		Route(ws.POST("query/stream").
			To(handler.QueryStream).
			Doc("Answer a question and deliver the result as server-sent events").
			Metadata(restfulspec.KeyOpenAPITags, []string{"query"}).
			Reads(models.QueryRequest{}).
			Produces("text/event-stream").
			Returns(200, "OK", nil))

	ws.
		Route(ws.GET("metrics").
			To(handler.Metrics).
			Doc("Guardrail metrics snapshot and summary").
			Metadata(restfulspec.KeyOpenAPITags, []string{"metrics"}).
			Writes(MetricsResponse{}).
			Returns(200, "OK", MetricsResponse{}))

	container.Add(ws)

	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}))
}
