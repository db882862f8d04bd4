package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/interfaces"
	"mentor-ai/backend/internal/model"
)

type CreateConversationRequest struct {
	Title string `json:"title" example:"Refactoring the parser"`
}

type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required" example:"Parser refactor"`
}

type AddMessageRequest struct {
	Role     model.Role `json:"role" validate:"required,oneof=user assistant" example:"user"`
	Content  string     `json:"content" validate:"required" example:"How do I split this function?"`
	BranchID string     `json:"branchId,omitempty"`
}

type CreateBranchRequest struct {
	ParentMessageID string `json:"parentMessageId" validate:"required"`
}

// ConversationChatRequest sends one user turn within a conversation.
type ConversationChatRequest struct {
	Content     string         `json:"content" validate:"required" example:"Explain the last change"`
	BranchID    string         `json:"branchId,omitempty"`
	Model       string         `json:"model,omitempty" example:"gpt-4o-mini"`
	Provider    model.Provider `json:"provider,omitempty" example:"openai"`
	Temperature *float64       `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens   int            `json:"maxTokens,omitempty" validate:"omitempty,gt=0"`
	System      string         `json:"system,omitempty"`
	Stream      bool           `json:"stream"`
}

func (r ConversationChatRequest) options() model.ChatOptions {
	return model.ChatOptions{
		Provider:    r.Provider,
		Model:       r.Model,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
		System:      r.System,
	}
}

type ConversationHandler struct {
	conversations interfaces.ConversationService
	chat          interfaces.ChatService
}

func NewConversationHandler(conversations interfaces.ConversationService, chat interfaces.ChatService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, chat: chat}
}

// CreateConversation godoc
// @Summary      Create a conversation
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        request  body      CreateConversationRequest  false  "Optional title"
// @Success      201      {object}  SuccessResponse{data=model.Conversation}
// @Failure      400      {object}  ErrorResponse
// @Router       /conversations [post]
func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(w, r, &req); err != nil {
			respondWithError(w, err)
			return
		}
	}
	conv, err := h.conversations.CreateConversation(r.Context(), req.Title)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, conv)
}

// ListConversations godoc
// @Summary      List conversations
// @Description  Returns conversation summaries, most recently updated first.
// @Tags         Conversations
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=[]model.ConversationSummary}
// @Router       /conversations [get]
func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, h.conversations.ListConversations(r.Context()))
}

// GetConversation godoc
// @Summary      Get a conversation
// @Tags         Conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  SuccessResponse{data=model.Conversation}
// @Failure      404  {object}  ErrorResponse
// @Router       /conversations/{id} [get]
func (h *ConversationHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.conversations.GetConversation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, conv)
}

// UpdateTitle godoc
// @Summary      Rename a conversation
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Conversation ID"
// @Param        request  body      UpdateTitleRequest  true  "New title"
// @Success      200      {object}  SuccessResponse{data=model.Conversation}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /conversations/{id} [patch]
func (h *ConversationHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	var req UpdateTitleRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	conv, err := h.conversations.UpdateTitle(r.Context(), chi.URLParam(r, "id"), req.Title)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, conv)
}

// DeleteConversation godoc
// @Summary      Delete a conversation
// @Description  Deleting an unknown conversation succeeds.
// @Tags         Conversations
// @Produce      json
// @Param        id   path      string  true  "Conversation ID"
// @Success      200  {object}  SuccessResponse{data=StatusResponse}
// @Failure      500  {object}  ErrorResponse
// @Router       /conversations/{id} [delete]
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.conversations.DeleteConversation(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// AddMessage godoc
// @Summary      Append a message
// @Description  Appends a message to a branch (the main branch when branchId is empty). Long branches are compressed into a summary.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "Conversation ID"
// @Param        request  body      AddMessageRequest  true  "Message"
// @Success      201      {object}  SuccessResponse{data=model.Message}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /conversations/{id}/messages [post]
func (h *ConversationHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var req AddMessageRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	msg, err := h.conversations.AddMessage(r.Context(), chi.URLParam(r, "id"), req.Role, req.Content, req.BranchID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, msg)
}

// CreateBranch godoc
// @Summary      Fork a branch
// @Description  Creates a branch holding copies of the main branch messages up to and including the parent message.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Conversation ID"
// @Param        request  body      CreateBranchRequest  true  "Fork point"
// @Success      201      {object}  SuccessResponse{data=model.Branch}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /conversations/{id}/branches [post]
func (h *ConversationHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req CreateBranchRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	branch, err := h.conversations.CreateBranch(r.Context(), chi.URLParam(r, "id"), req.ParentMessageID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, branch)
}

// SwitchBranch godoc
// @Summary      Get a branch
// @Tags         Conversations
// @Produce      json
// @Param        id        path      string  true  "Conversation ID"
// @Param        branchID  path      string  true  "Branch ID"
// @Success      200       {object}  SuccessResponse{data=model.Branch}
// @Failure      404       {object}  ErrorResponse
// @Router       /conversations/{id}/branches/{branchID} [get]
func (h *ConversationHandler) SwitchBranch(w http.ResponseWriter, r *http.Request) {
	branch, err := h.conversations.SwitchToBranch(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "branchID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, branch)
}

// GetContext godoc
// @Summary      Get the context window
// @Description  Returns the newest messages of a branch that fit the token budget, oldest first.
// @Tags         Conversations
// @Produce      json
// @Param        id         path      string  true   "Conversation ID"
// @Param        branchId   query     string  false  "Branch ID (default: main)"
// @Param        maxTokens  query     int     false  "Token budget (default: the conversation's limit)"
// @Success      200        {object}  SuccessResponse{data=[]model.Message}
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /conversations/{id}/context [get]
func (h *ConversationHandler) GetContext(w http.ResponseWriter, r *http.Request) {
	maxTokens := 0
	if raw := r.URL.Query().Get("maxTokens"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondWithError(w, fmt.Errorf("%w: maxTokens must be a non-negative integer", apperrors.ErrValidation))
			return
		}
		maxTokens = n
	}
	msgs, err := h.conversations.GetContext(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("branchId"), maxTokens)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, msgs)
}

// ExportConversation godoc
// @Summary      Export a conversation
// @Description  Renders the conversation as a downloadable document.
// @Tags         Conversations
// @Produce      json
// @Produce      text/markdown
// @Produce      text/html
// @Produce      application/yaml
// @Param        id      path      string  true   "Conversation ID"
// @Param        format  query     string  false  "json (default), md, yaml or html"
// @Success      200     {file}    file
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /conversations/{id}/export [get]
func (h *ConversationHandler) ExportConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, exporter, err := h.conversations.Export(r.Context(), id, r.URL.Query().Get("format"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+"."+exporter.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportConversation godoc
// @Summary      Import a conversation
// @Description  Imports a JSON export. Every conversation, branch and message receives a new ID.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversation  body      model.Conversation  true  "Exported conversation"
// @Success      201           {object}  SuccessResponse{data=model.Conversation}
// @Failure      400           {object}  ErrorResponse
// @Router       /conversations/import [post]
func (h *ConversationHandler) ImportConversation(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: could not read request body: %v", apperrors.ErrValidation, err))
		return
	}
	conv, err := h.conversations.ImportFromJSON(r.Context(), data)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, conv)
}

// Chat godoc
// @Summary      Continue a conversation
// @Description  Appends the user message, sends the branch context to the provider and appends the reply. With "stream": true the reply is a server-sent-event stream.
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Produce      text/event-stream
// @Param        id       path      string                   true  "Conversation ID"
// @Param        request  body      ConversationChatRequest  true  "User turn"
// @Success      200      {object}  SuccessResponse{data=service.ConverseResult}
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse
// @Router       /conversations/{id}/chat [post]
func (h *ConversationHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ConversationChatRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	id := chi.URLParam(r, "id")

	if req.Stream {
		chunks, err := h.chat.ConverseStream(r.Context(), id, req.BranchID, req.Content, req.options())
		if err != nil {
			respondWithError(w, err)
			return
		}
		relayStream(w, r, chunks)
		return
	}

	result, err := h.chat.Converse(r.Context(), id, req.BranchID, req.Content, req.options())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, result)
}
