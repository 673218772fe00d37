package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aven-ai/support-agent/internal/models"
	"github.com/emicklei/go-restful/v3"
)

// StreamConfig controls how a finished answer is framed into SSE chunks.
// The delay is purely cosmetic pacing for the frontend and may be zero.
type StreamConfig struct {
	ChunkWords int
	ChunkDelay time.Duration
}

// POST /query/stream
// Runs the same pipeline as /query, then delivers the answer progressively:
// start, repeated chunk events, complete (full QueryResponse), end. A
// pipeline failure becomes an error event instead of an HTTP error status.
func (h *Handler) QueryStream(req *restful.Request, resp *restful.Response) {
	var queryRequest models.QueryRequest
	if err := req.ReadEntity(&queryRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		resp.WriteHeader(http.StatusBadRequest)
		return
	}

	flusher, ok := resp.ResponseWriter.(http.Flusher)
	if !ok {
		h.logger.Error().Msg("Streaming unsupported by response writer")
		resp.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp.Header().Set("Content-Type", "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	h.writeEvent(resp, flusher, models.SSEEvent{
		Event: "start",
		Data:  models.StreamStartEvent{Question: queryRequest.Question},
	})

	ctx := req.Request.Context()
	response, err := h.orchestrator.Query(ctx, queryRequest)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to process streaming query")
		h.writeEvent(resp, flusher, models.SSEEvent{
			Event: "error",
			Data:  models.StreamErrorEvent{Message: "Failed to process query"},
		})
		h.writeEnd(resp, flusher)
		return
	}

	for _, chunk := range chunkAnswer(response.Answer, h.streaming.ChunkWords) {
		h.writeEvent(resp, flusher, models.SSEEvent{
			Event: "chunk",
			Data:  models.StreamChunkEvent{Chunk: chunk},
		})

		if h.streaming.ChunkDelay > 0 {
			select {
			case <-ctx.Done():
				h.writeEnd(resp, flusher)
				return
			case <-time.After(h.streaming.ChunkDelay):
			}
		}
	}

	h.writeEvent(resp, flusher, models.SSEEvent{Event: "complete", Data: response})
	h.writeEnd(resp, flusher)
}

func (h *Handler) writeEvent(resp *restful.Response, flusher http.Flusher, event models.SSEEvent) {
	formatted, err := event.Format()
	if err != nil {
		h.logger.Error().Err(err).Str("event", event.Event).Msg("Failed to format SSE event")
		return
	}

	fmt.Fprint(resp.ResponseWriter, formatted)
	flusher.Flush()
}

func (h *Handler) writeEnd(resp *restful.Response, flusher http.Flusher) {
	fmt.Fprint(resp.ResponseWriter, "event: end\ndata: {}\n\n")
	flusher.Flush()
}

// chunkAnswer splits a finished answer into fixed-size word groups. Word
// boundaries only; the last chunk carries the remainder.
func chunkAnswer(answer string, wordsPerChunk int) []string {
	if wordsPerChunk <= 0 {
		wordsPerChunk = 3
	}

	words := strings.Fields(answer)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, len(words)/wordsPerChunk+1)
	for start := 0; start < len(words); start += wordsPerChunk {
		end := start + wordsPerChunk
		if end > len(words) {
			end = len(words)
		}

		chunk := strings.Join(words[start:end], " ")
		if end < len(words) {
			chunk += " "
		}
		chunks = append(chunks, chunk)
	}

	return chunks
}
