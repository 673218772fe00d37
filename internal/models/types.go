package models

import (
	"encoding/json"
	"fmt"
)

// Input message
type QueryRequest struct {
	Question string `json:"question" description:"The user's question about Aven's products"`
}

// SourceInfo identifies a document a retrieved passage came from.
type SourceInfo struct {
	SourceReference string `json:"source_reference"`
	Title           string `json:"title"`
}

// QueryResponse is the final answer returned to the caller.
// GuardrailTriggered carries the violation metric name (e.g. "personal_data",
// "output_financial_advice") when a guardrail replaced the answer; it stays
// empty for clean responses.
type QueryResponse struct {
	Answer             string       `json:"answer"`
	Sources            []SourceInfo `json:"sources"`
	Context            string       `json:"context"`
	GuardrailTriggered string       `json:"guardrail_triggered,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Message string `json:"message" description:"Additional error details"`
}

type SSEEvent struct {
	Event string      `json:"-"`
	Data  interface{} `json:"-"`
}

// SSE Event data structures
type StreamStartEvent struct {
	Question string `json:"question"`
}

type StreamChunkEvent struct {
	Chunk string `json:"chunk"`
}

type StreamErrorEvent struct {
	Message string `json:"message"`
}

func (e SSEEvent) Format() (string, error) {
	jsonData, err := json.Marshal(e.Data)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Event, string(jsonData)), nil
}
