package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mentor-ai/backend/internal/interfaces"
	"mentor-ai/backend/internal/model"
)

// SetKeyRequest is the body of PUT /api/keys/{provider}.
type SetKeyRequest struct {
	Key string `json:"key" validate:"required" example:"sk-..."`
}

// ReadinessResponse reports which providers answered a probe.
type ReadinessResponse struct {
	Ready     bool                    `json:"ready"`
	Providers map[model.Provider]bool `json:"providers"`
}

// ModelHandler serves the provider catalog, the default AI settings and the
// stored API keys.
type ModelHandler struct {
	models   interfaces.ModelService
	settings interfaces.SettingsService
	keys     interfaces.KeyService
}

func NewModelHandler(models interfaces.ModelService, settings interfaces.SettingsService, keys interfaces.KeyService) *ModelHandler {
	return &ModelHandler{models: models, settings: settings, keys: keys}
}

// HandleListModels godoc
// @Summary      List models
// @Description  Lists every catalog model. A model is available when its provider has an API key or needs none.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=[]service.ModelInfo}
// @Router       /models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, h.models.List(r.Context()))
}

// GetSettings godoc
// @Summary      Get AI settings
// @Description  Returns the default provider configuration. The API key is never returned.
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=model.ServiceConfig}
// @Router       /settings [get]
func (h *ModelHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, h.settings.Get())
}

// UpdateSettings godoc
// @Summary      Update AI settings
// @Description  Merges the given fields into the default provider configuration.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        settings  body      model.ServiceConfigPatch  true  "Fields to change"
// @Success      200       {object}  SuccessResponse{data=model.ServiceConfig}
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /settings [put]
func (h *ModelHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch model.ServiceConfigPatch
	if err := decodeAndValidate(w, r, &patch); err != nil {
		respondWithError(w, err)
		return
	}
	cfg, err := h.settings.Save(r.Context(), patch)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, cfg)
}

// ListKeys godoc
// @Summary      List stored API keys
// @Description  Returns the providers that have a stored key. Key values are never returned.
// @Tags         Keys
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=[]model.Provider}
// @Router       /keys [get]
func (h *ModelHandler) ListKeys(w http.ResponseWriter, r *http.Request) {
	respondWithData(w, http.StatusOK, h.keys.Providers(r.Context()))
}

// SetKey godoc
// @Summary      Store an API key
// @Tags         Keys
// @Accept       json
// @Produce      json
// @Param        provider  path      string         true  "Provider name"
// @Param        request   body      SetKeyRequest  true  "API key"
// @Success      200       {object}  SuccessResponse{data=StatusResponse}
// @Failure      400       {object}  ErrorResponse
// @Router       /keys/{provider} [put]
func (h *ModelHandler) SetKey(w http.ResponseWriter, r *http.Request) {
	var req SetKeyRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	provider := model.Provider(chi.URLParam(r, "provider"))
	if err := h.keys.Set(r.Context(), provider, req.Key); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// DeleteKey godoc
// @Summary      Delete an API key
// @Tags         Keys
// @Produce      json
// @Param        provider  path      string  true  "Provider name"
// @Success      200       {object}  SuccessResponse{data=StatusResponse}
// @Failure      500       {object}  ErrorResponse
// @Router       /keys/{provider} [delete]
func (h *ModelHandler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	provider := model.Provider(chi.URLParam(r, "provider"))
	if err := h.keys.Delete(r.Context(), provider); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// HandleReadiness godoc
// @Summary      Provider readiness
// @Description  Probes every provider. Ready is true when at least one provider answered.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse{data=ReadinessResponse}
// @Failure      503  {object}  SuccessResponse{data=ReadinessResponse}
// @Router       /readyz [get]
func (h *ModelHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	providers := h.models.Connectivity(r.Context())
	resp := ReadinessResponse{Providers: providers}
	for _, ok := range providers {
		resp.Ready = resp.Ready || ok
	}
	code := http.StatusOK
	if !resp.Ready {
		code = http.StatusServiceUnavailable
	}
	respondWithData(w, code, resp)
}
