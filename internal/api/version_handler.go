package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mentor-ai/backend/internal/diff"
	apperrors "mentor-ai/backend/internal/errors"
	"mentor-ai/backend/internal/interfaces"
	"mentor-ai/backend/internal/model"
)

type SaveVersionRequest struct {
	Content string `json:"content" example:"package main\n"`
	Message string `json:"message" example:"Extract helper"`
	Author  string `json:"author,omitempty" validate:"omitempty,oneof=user assistant" example:"user"`
}

type DiffRequest struct {
	OldContent string `json:"oldContent"`
	NewContent string `json:"newContent"`
}

type DiffResponse struct {
	Lines []model.DiffLine  `json:"lines"`
	Stats model.ChangeStats `json:"stats"`
}

type VersionHandler struct {
	versions interfaces.VersionService
}

func NewVersionHandler(versions interfaces.VersionService) *VersionHandler {
	return &VersionHandler{versions: versions}
}

// fileID returns the unescaped {fileID} route parameter. File ids are paths,
// so clients escape the slashes.
func fileID(r *http.Request) (string, error) {
	id, err := url.PathUnescape(chi.URLParam(r, "fileID"))
	if err != nil {
		return "", fmt.Errorf("%w: malformed file id: %v", apperrors.ErrValidation, err)
	}
	return id, nil
}

// SaveVersion godoc
// @Summary      Save a file revision
// @Description  Records content as the newest revision. Saving content identical to the newest revision returns it unchanged.
// @Tags         Versions
// @Accept       json
// @Produce      json
// @Param        fileID   path      string              true  "URL-escaped file id"
// @Param        request  body      SaveVersionRequest  true  "Revision"
// @Success      201      {object}  SuccessResponse{data=model.Revision}
// @Failure      400      {object}  ErrorResponse
// @Router       /files/{fileID}/versions [post]
func (h *VersionHandler) SaveVersion(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	var req SaveVersionRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	rev, err := h.versions.SaveVersionBy(r.Context(), id, req.Content, req.Message, req.Author)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, rev)
}

// ListVersions godoc
// @Summary      List file revisions
// @Description  Returns the revision history, newest first.
// @Tags         Versions
// @Produce      json
// @Param        fileID  path      string  true  "URL-escaped file id"
// @Success      200     {object}  SuccessResponse{data=[]model.Revision}
// @Router       /files/{fileID}/versions [get]
func (h *VersionHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, h.versions.GetVersions(r.Context(), id))
}

// GetVersion godoc
// @Summary      Get a file revision
// @Tags         Versions
// @Produce      json
// @Param        fileID     path      string  true  "URL-escaped file id"
// @Param        versionID  path      string  true  "Revision ID"
// @Success      200        {object}  SuccessResponse{data=model.Revision}
// @Failure      404        {object}  ErrorResponse
// @Router       /files/{fileID}/versions/{versionID} [get]
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	rev, err := h.versions.GetVersion(r.Context(), id, chi.URLParam(r, "versionID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, rev)
}

// RestoreVersion godoc
// @Summary      Restore a file revision
// @Description  Saves the content of an earlier revision as a new revision.
// @Tags         Versions
// @Produce      json
// @Param        fileID     path      string  true  "URL-escaped file id"
// @Param        versionID  path      string  true  "Revision ID"
// @Success      201        {object}  SuccessResponse{data=model.Revision}
// @Failure      404        {object}  ErrorResponse
// @Router       /files/{fileID}/versions/{versionID}/restore [post]
func (h *VersionHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	rev, err := h.versions.RestoreVersion(r.Context(), id, chi.URLParam(r, "versionID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusCreated, rev)
}

// DeleteHistory godoc
// @Summary      Delete a file's history
// @Tags         Versions
// @Produce      json
// @Param        fileID  path      string  true  "URL-escaped file id"
// @Success      200     {object}  SuccessResponse{data=StatusResponse}
// @Router       /files/{fileID}/versions [delete]
func (h *VersionHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id, err := fileID(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.versions.DeleteHistory(r.Context(), id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithData(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// Diff godoc
// @Summary      Compare two texts
// @Description  Line diff of two texts with addition, deletion and modification counts.
// @Tags         Versions
// @Accept       json
// @Produce      json
// @Param        request  body      DiffRequest  true  "Texts to compare"
// @Success      200      {object}  SuccessResponse{data=DiffResponse}
// @Failure      400      {object}  ErrorResponse
// @Router       /diff [post]
func (h *VersionHandler) Diff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	lines := h.versions.CompareVersions(req.OldContent, req.NewContent)
	respondWithData(w, http.StatusOK, DiffResponse{Lines: lines, Stats: diff.Stats(lines)})
}
