package api

import (
	"iter"
	"log/slog"
	"net/http"

	"mentor-ai/backend/internal/interfaces"
	"mentor-ai/backend/internal/model"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages    []model.ChatMessage `json:"messages" validate:"required,min=1,dive"`
	Model       string              `json:"model,omitempty" example:"gpt-4o-mini"`
	Provider    model.Provider      `json:"provider,omitempty" example:"openai"`
	Temperature *float64            `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2" example:"0.7"`
	MaxTokens   int                 `json:"maxTokens,omitempty" validate:"omitempty,gt=0" example:"1024"`
	System      string              `json:"system,omitempty"`
	Stream      bool                `json:"stream"`
}

func (r ChatRequest) options() model.ChatOptions {
	return model.ChatOptions{
		Provider:    r.Provider,
		Model:       r.Model,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
		System:      r.System,
	}
}

type ChatHandler struct {
	chat interfaces.ChatService
}

func NewChatHandler(chat interfaces.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// HandleChat godoc
// @Summary      Chat with an AI provider
// @Description  Sends messages to the selected provider. With "stream": true the reply is a server-sent-event stream of chunks terminated by "data: [DONE]".
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Produce      text/event-stream
// @Param        request  body      ChatRequest  true  "Messages and options"
// @Success      200      {object}  SuccessResponse{data=model.ChatResult}
// @Failure      400      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	if req.Stream {
		chunks, err := h.chat.StreamCompletion(r.Context(), req.Messages, req.options())
		if err != nil {
			respondWithError(w, err)
			return
		}
		relayStream(w, r, chunks)
		return
	}

	result, err := h.chat.Complete(r.Context(), req.Messages, req.options())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, result)
}

// relayStream writes chunks as server-sent events followed by [DONE]. A
// failed write stops iteration, which closes the upstream request.
func relayStream(w http.ResponseWriter, r *http.Request, chunks iter.Seq[model.StreamChunk]) {
	setStreamHeaders(w)
	w.WriteHeader(http.StatusOK)

	for chunk := range chunks {
		if chunk.Error != "" {
			slog.Warn("Stream ended with provider error", "error", chunk.Error)
		}
		if err := writeStreamEvent(w, chunk); err != nil {
			slog.Info("Client disconnected during stream", "error", err)
			return
		}
	}
	if err := writeStreamDone(w); err != nil {
		slog.Info("Client disconnected before end of stream", "error", err)
	}
	slog.Debug("Finished streaming response", "path", r.URL.Path)
}
