package collab

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/snapkit/internal/designer"
	"github.com/inamate/snapkit/internal/geometry"
	"github.com/inamate/snapkit/internal/store"
	"github.com/inamate/snapkit/internal/typeid"
)

// GuideHandler serves the REST guide API. Changes reach live sessions
// through the hub.
type GuideHandler struct {
	hub *Hub
}

func NewGuideHandler(hub *Hub) *GuideHandler {
	return &GuideHandler{hub: hub}
}

func (h *GuideHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID := mux.Vars(r)["workspaceId"]
	guides, err := h.hub.Guides(r.Context(), workspaceID)
	if err != nil {
		slog.Error("list guides failed", "error", err, "workspace", workspaceID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if guides == nil {
		guides = []designer.Guide{}
	}
	writeJSON(w, http.StatusOK, guides)
}

func (h *GuideHandler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID := mux.Vars(r)["workspaceId"]

	var g designer.Guide
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if !geometry.IsLineSegment(geometry.LineSegment{Start: g.Start, End: g.End}) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "guide must be horizontal or vertical"})
		return
	}
	if g.ID == "" {
		g.ID = typeid.NewGuideID()
	}

	if err := h.hub.AddGuide(r.Context(), workspaceID, nil, g); err != nil {
		slog.Error("create guide failed", "error", err, "workspace", workspaceID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *GuideHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	workspaceID, guideID := vars["workspaceId"], vars["guideId"]

	if err := h.hub.RemoveGuide(r.Context(), workspaceID, nil, guideID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "guide not found"})
			return
		}
		slog.Error("delete guide failed", "error", err, "workspace", workspaceID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
