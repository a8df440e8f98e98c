package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"melodex/logger"
	"melodex/model"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

// CreateTrackHandler creates a track record directly, without provider
// involvement.
func (h *APIHandler) CreateTrackHandler(w http.ResponseWriter, r *http.Request) {
	var track model.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if track.Name == "" {
		writeError(w, http.StatusBadRequest, "Track name is required")
		return
	}
	track.ID = 0
	if track.Type == "" {
		track.Type = model.TypeSong
	}

	if err := h.tracks.Create(r.Context(), &track); err != nil {
		logger.Error("track creation failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, track)
}

// GetTrackHandler returns a single track by its numeric id.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	track, err := h.tracks.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("track lookup failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	writeJSON(w, http.StatusOK, track)
}

// UpdateTrackHandler replaces a track's mutable fields.
func (h *APIHandler) UpdateTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	existing, err := h.tracks.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("track lookup failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	var track model.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	track.ID = id
	track.RefID = existing.RefID
	track.CreatedAt = existing.CreatedAt

	if err := h.tracks.Update(r.Context(), &track); err != nil {
		logger.Error("track update failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, track)
}

// DeleteTrackHandler removes a track by its numeric id.
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	if err := h.tracks.Delete(r.Context(), id); err != nil {
		logger.Error("track deletion failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Track deleted"})
}
