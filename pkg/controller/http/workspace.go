package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/interfaces"
	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

// WorkspaceHandler exposes the workspace state to the presentation shell
type WorkspaceHandler struct {
	workspaceUC interfaces.WorkspaceUseCase
}

// NewWorkspaceHandler creates a new WorkspaceHandler
func NewWorkspaceHandler(workspaceUC interfaces.WorkspaceUseCase) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceUC: workspaceUC,
	}
}

type folderRequest struct {
	Path string `json:"path"`
}

type clickTagRequest struct {
	URL string `json:"url"`
}

type convertRequest struct {
	Location string `json:"location"`
}

type apiKeyRequest struct {
	APIKey string `json:"api_key" masq:"secret"`
}

// GetState returns the current workspace snapshot
func (h *WorkspaceHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.workspaceUC.Snapshot(), http.StatusOK)
}

// SelectFolder starts a scan of the requested folder
func (h *WorkspaceHandler) SelectFolder(w http.ResponseWriter, r *http.Request) {
	var req folderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, goerr.New("path is required"), http.StatusBadRequest)
		return
	}

	// The scan must outlive this request.
	h.workspaceUC.SelectFolder(r.Context(), req.Path)
	writeJSON(w, r, h.workspaceUC.Snapshot(), http.StatusAccepted)
}

// SetClickTag validates and stores the click-through URL
func (h *WorkspaceHandler) SetClickTag(w http.ResponseWriter, r *http.Request) {
	var req clickTagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	normalized, err := h.workspaceUC.SetClickTag(r.Context(), req.URL)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, map[string]string{"url": normalized}, http.StatusOK)
}

// Convert rewrites one creative and starts compressing its images
func (h *WorkspaceHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	conv, err := h.workspaceUC.Convert(r.Context(), req.Location)
	if err != nil {
		ctxlog.From(r.Context()).Error("Failed to convert creative", "location", req.Location, "error", err)
		writeError(w, err, convertErrorStatus(err))
		return
	}

	writeJSON(w, r, map[string]any{
		"conversion_id": conv.ID,
		"creative":      conv.Creative,
		"compressing":   conv.Compression != nil,
	}, http.StatusOK)
}

// Preview writes the preview page for the selected folder
func (h *WorkspaceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	path, err := h.workspaceUC.GeneratePreview(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrNoBanners) {
			status = http.StatusNotFound
		}
		writeError(w, err, status)
		return
	}
	writeJSON(w, r, map[string]string{"path": path}, http.StatusOK)
}

// SetAPIKey stores the compression service credential
func (h *WorkspaceHandler) SetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req apiKeyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.workspaceUC.SetAPIKey(r.Context(), req.APIKey); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAPIKey removes the stored credential
func (h *WorkspaceHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := h.workspaceUC.DeleteAPIKey(r.Context()); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func convertErrorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrCreativeNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrMissingCredential),
		errors.Is(err, model.ErrMissingClickTag),
		errors.Is(err, model.ErrInvalidClickTag):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return false
	}
	return true
}
