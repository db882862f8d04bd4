package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "mentor-ai/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RequestTimeout bounds every non-streaming route.
const RequestTimeout = 60 * time.Second

// NewRouter creates the chi router with every route of the service.
func NewRouter(chatHandler *ChatHandler, conversationHandler *ConversationHandler, versionHandler *VersionHandler, modelHandler *ModelHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness only. Provider reachability is reported by /readyz.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", modelHandler.HandleReadiness)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(RequestTimeout))

			// --- Models, settings and keys ---
			r.Get("/models", modelHandler.HandleListModels)
			r.Get("/settings", modelHandler.GetSettings)
			r.Put("/settings", modelHandler.UpdateSettings)
			r.Get("/keys", modelHandler.ListKeys)
			r.Put("/keys/{provider}", modelHandler.SetKey)
			r.Delete("/keys/{provider}", modelHandler.DeleteKey)

			// --- Conversations ---
			r.Post("/conversations", conversationHandler.CreateConversation)
			r.Get("/conversations", conversationHandler.ListConversations)
			r.Post("/conversations/import", conversationHandler.ImportConversation)
			r.Get("/conversations/{id}", conversationHandler.GetConversation)
			r.Patch("/conversations/{id}", conversationHandler.UpdateTitle)
			r.Delete("/conversations/{id}", conversationHandler.DeleteConversation)
			r.Post("/conversations/{id}/messages", conversationHandler.AddMessage)
			r.Post("/conversations/{id}/branches", conversationHandler.CreateBranch)
			r.Get("/conversations/{id}/branches/{branchID}", conversationHandler.SwitchBranch)
			r.Get("/conversations/{id}/context", conversationHandler.GetContext)
			r.Get("/conversations/{id}/export", conversationHandler.ExportConversation)

			// --- File versions ---
			r.Post("/files/{fileID}/versions", versionHandler.SaveVersion)
			r.Get("/files/{fileID}/versions", versionHandler.ListVersions)
			r.Delete("/files/{fileID}/versions", versionHandler.DeleteHistory)
			r.Get("/files/{fileID}/versions/{versionID}", versionHandler.GetVersion)
			r.Post("/files/{fileID}/versions/{versionID}/restore", versionHandler.RestoreVersion)
			r.Post("/diff", versionHandler.Diff)
		})

		// Provider calls may stream for longer than any fixed timeout; they are
		// bounded by the client connection instead.
		r.Group(func(r chi.Router) {
			r.Post("/chat", chatHandler.HandleChat)
			r.Post("/conversations/{id}/chat", conversationHandler.Chat)
		})
	})

	return r
}
