package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mentor-ai/backend/internal/api"
	"mentor-ai/backend/internal/interfaces/mocks"
	"mentor-ai/backend/internal/model"
)

func TestRouter(t *testing.T) {
	convSvc := mocks.NewMockConversationService(t)
	chatSvc := mocks.NewMockChatService(t)
	versionSvc := mocks.NewMockVersionService(t)
	modelSvc := mocks.NewMockModelService(t)

	router := api.NewRouter(
		api.NewChatHandler(chatSvc),
		api.NewConversationHandler(convSvc, chatSvc),
		api.NewVersionHandler(versionSvc),
		api.NewModelHandler(modelSvc, mocks.NewMockSettingsService(t), mocks.NewMockKeyService(t)),
	)

	t.Run("Success - healthz", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Success - escaped file id reaches the handler unescaped", func(t *testing.T) {
		versionSvc.On("GetVersions", mock.Anything, "src/app.ts").Return([]*model.Revision{}).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/files/src%2Fapp.ts/versions", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Success - import is not routed as a conversation id", func(t *testing.T) {
		convSvc.On("ImportFromJSON", mock.Anything, mock.Anything).Return(&model.Conversation{ID: "n"}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/conversations/import", nil))

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - unknown route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
