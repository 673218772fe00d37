package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aven-ai/support-agent/internal/guardrails"
	"github.com/aven-ai/support-agent/internal/metrics"
	"github.com/aven-ai/support-agent/internal/models"
	"github.com/aven-ai/support-agent/internal/orchestrator"
	"github.com/aven-ai/support-agent/internal/retrieval"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

type stubRetriever struct {
	result retrieval.Result
	err    error
}

func (s *stubRetriever) Retrieve(ctx context.Context, question string) (retrieval.Result, error) {
	return s.result, s.err
}

type stubGenerator struct {
	answer string
	err    error
}

func (s *stubGenerator) Generate(ctx context.Context, docContext string, question string, sources []models.SourceInfo) (string, error) {
	return s.answer, s.err
}

func newTestContainer(t *testing.T, retriever orchestrator.Retriever, generator orchestrator.Generator, streaming StreamConfig) (*restful.Container, *metrics.Collector) {
	t.Helper()

	engine, err := guardrails.NewEngine(guardrails.Extensions{})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	collector := metrics.NewCollector()
	logger := zerolog.Nop()
	orch := orchestrator.New(engine, retriever, generator, collector, nil, &logger)

	container := restful.NewContainer()
	RegisterRoutes(container, NewHandler(orch, collector, streaming, &logger))
	return container, collector
}

func postJSON(t *testing.T, container *restful.Container, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, request)
	return recorder
}

func TestHealthEndpoint(t *testing.T) {
	container, _ := newTestContainer(t, &stubRetriever{}, &stubGenerator{}, StreamConfig{})

	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var health HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if health.Status != "healthy" || health.Service != "aven-support-api" {
		t.Errorf("Unexpected health payload: %+v", health)
	}
}

func TestQueryEndpoint_Success(t *testing.T) {
	retriever := &stubRetriever{result: retrieval.Result{
		Context: "Aven cards have no annual fee.",
		Sources: []models.SourceInfo{{Title: "Support", SourceReference: "https://www.aven.com/support"}},
	}}
	generator := &stubGenerator{answer: "There is no annual fee."}

	container, _ := newTestContainer(t, retriever, generator, StreamConfig{})

	recorder := postJSON(t, container, "/query", models.QueryRequest{Question: "Is there an annual fee?"})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response models.QueryResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Answer != "There is no annual fee." || len(response.Sources) != 1 {
		t.Errorf("Unexpected response: %+v", response)
	}
	if response.GuardrailTriggered != "" {
		t.Errorf("Expected no guardrail field, got %q", response.GuardrailTriggered)
	}
}

// A guardrail block is a normal 200 response, not an error status.
func TestQueryEndpoint_Blocked(t *testing.T) {
	container, collector := newTestContainer(t, &stubRetriever{}, &stubGenerator{}, StreamConfig{})

	recorder := postJSON(t, container, "/query", models.QueryRequest{Question: "My SSN is 123-45-6789"})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200 on a blocked query, got %d", recorder.Code)
	}

	var response models.QueryResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.GuardrailTriggered != "personal_data" {
		t.Errorf("Expected personal_data, got %q", response.GuardrailTriggered)
	}

	snap := collector.Snapshot()
	if snap.BlockedQueries != 1 {
		t.Errorf("Expected the block to be recorded: %+v", snap)
	}
}

func TestQueryEndpoint_PipelineFailure(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("index unreachable")}
	container, _ := newTestContainer(t, retriever, &stubGenerator{}, StreamConfig{})

	recorder := postJSON(t, container, "/query", models.QueryRequest{Question: "Is there an annual fee?"})

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", recorder.Code)
	}

	var errorResponse models.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &errorResponse); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if errorResponse.Error != "Failed to process query" || errorResponse.Message == "" {
		t.Errorf("Unexpected error payload: %+v", errorResponse)
	}
}

func TestQueryEndpoint_BadBody(t *testing.T) {
	container, _ := newTestContainer(t, &stubRetriever{}, &stubGenerator{}, StreamConfig{})

	request := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader("{not json"))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 on malformed JSON, got %d", recorder.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	container, _ := newTestContainer(t, &stubRetriever{}, &stubGenerator{}, StreamConfig{})

	postJSON(t, container, "/query", models.QueryRequest{Question: "My SSN is 123-45-6789"})

	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}

	var response MetricsResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode metrics response: %v", err)
	}
	if response.Metrics.TotalQueries != 1 || response.Metrics.BlockedQueries != 1 {
		t.Errorf("Unexpected metrics: %+v", response.Metrics)
	}
	if response.Metrics.ViolationsByType["personal_data"] != 1 {
		t.Errorf("Expected a personal_data violation: %+v", response.Metrics.ViolationsByType)
	}
	if !strings.Contains(response.Summary, "Total Queries: 1") {
		t.Errorf("Unexpected summary: %s", response.Summary)
	}
}

func parseSSEEvents(t *testing.T, body string) []string {
	t.Helper()

	var events []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "event: ") {
			events = append(events, strings.TrimPrefix(line, "event: "))
		}
	}
	return events
}

func TestQueryStreamEndpoint(t *testing.T) {
	retriever := &stubRetriever{result: retrieval.Result{Context: "ctx"}}
	generator := &stubGenerator{answer: "one two three four five"}

	container, _ := newTestContainer(t, retriever, generator, StreamConfig{ChunkWords: 2})

	recorder := postJSON(t, container, "/query/stream", models.QueryRequest{Question: "Is there an annual fee?"})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", recorder.Code)
	}
	if contentType := recorder.Header().Get("Content-Type"); contentType != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", contentType)
	}

	events := parseSSEEvents(t, recorder.Body.String())
	expected := []string{"start", "chunk", "chunk", "chunk", "complete", "end"}
	if len(events) != len(expected) {
		t.Fatalf("Expected events %v, got %v", expected, events)
	}
	for i, event := range expected {
		if events[i] != event {
			t.Errorf("Event %d: expected %s, got %s", i, event, events[i])
		}
	}

	// The chunks reassemble into the full answer.
	var answer strings.Builder
	for _, line := range strings.Split(recorder.Body.String(), "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var chunk models.StreamChunkEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &chunk); err != nil {
			continue
		}
		answer.WriteString(chunk.Chunk)
	}
	if answer.String() != "one two three four five" {
		t.Errorf("Chunks did not reassemble: %q", answer.String())
	}
}

func TestQueryStreamEndpoint_PipelineFailure(t *testing.T) {
	retriever := &stubRetriever{err: errors.New("index unreachable")}
	container, _ := newTestContainer(t, retriever, &stubGenerator{}, StreamConfig{})

	recorder := postJSON(t, container, "/query/stream", models.QueryRequest{Question: "Is there an annual fee?"})

	if recorder.Code != http.StatusOK {
		t.Fatalf("SSE failures stay on the stream, expected 200, got %d", recorder.Code)
	}

	events := parseSSEEvents(t, recorder.Body.String())
	expected := []string{"start", "error", "end"}
	if len(events) != len(expected) {
		t.Fatalf("Expected events %v, got %v", expected, events)
	}
	for i, event := range expected {
		if events[i] != event {
			t.Errorf("Event %d: expected %s, got %s", i, event, events[i])
		}
	}
	if !strings.Contains(recorder.Body.String(), `"message":"Failed to process query"`) {
		t.Errorf("Expected an error message payload: %s", recorder.Body.String())
	}
}

func TestChunkAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		words  int
		chunks []string
	}{
		{"even split", "a b c d", 2, []string{"a b ", "c d"}},
		{"remainder", "a b c d e", 2, []string{"a b ", "c d ", "e"}},
		{"single chunk", "a b", 5, []string{"a b"}},
		{"empty answer", "", 3, nil},
		{"zero falls back to default", "a b c d", 0, []string{"a b c ", "d"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunks := chunkAnswer(tc.answer, tc.words)
			if len(chunks) != len(tc.chunks) {
				t.Fatalf("Expected %v, got %v", tc.chunks, chunks)
			}
			for i := range chunks {
				if chunks[i] != tc.chunks[i] {
					t.Errorf("Chunk %d: expected %q, got %q", i, tc.chunks[i], chunks[i])
				}
			}
		})
	}
}
