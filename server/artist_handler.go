package server

import (
	"encoding/json"
	"net/http"

	"melodex/logger"
	"melodex/model"
)

// CreateArtistHandler creates an artist record directly.
func (h *APIHandler) CreateArtistHandler(w http.ResponseWriter, r *http.Request) {
	var artist model.Artist
	if err := json.NewDecoder(r.Body).Decode(&artist); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if artist.Name == "" {
		writeError(w, http.StatusBadRequest, "Artist name is required")
		return
	}
	artist.ID = 0

	if err := h.artists.Create(r.Context(), &artist); err != nil {
		logger.Error("artist creation failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, artist)
}

// GetArtistHandler returns a single artist by its numeric id.
func (h *APIHandler) GetArtistHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}

	artist, err := h.artists.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("artist lookup failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if artist == nil {
		writeError(w, http.StatusNotFound, "Artist not found")
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

// UpdateArtistHandler replaces an artist's mutable fields.
func (h *APIHandler) UpdateArtistHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}

	existing, err := h.artists.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("artist lookup failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Artist not found")
		return
	}

	var artist model.Artist
	if err := json.NewDecoder(r.Body).Decode(&artist); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	artist.ID = id
	artist.RefID = existing.RefID
	artist.CreatedAt = existing.CreatedAt

	if err := h.artists.Update(r.Context(), &artist); err != nil {
		logger.Error("artist update failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

// DeleteArtistHandler removes an artist by its numeric id.
func (h *APIHandler) DeleteArtistHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid artist id")
		return
	}

	if err := h.artists.Delete(r.Context(), id); err != nil {
		logger.Error("artist deletion failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Artist deleted"})
}
