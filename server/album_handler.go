package server

import (
	"encoding/json"
	"net/http"

	"melodex/logger"
	"melodex/model"
)

// CreateAlbumHandler creates an album record directly.
func (h *APIHandler) CreateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	var album model.Album
	if err := json.NewDecoder(r.Body).Decode(&album); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if album.Name == "" {
		writeError(w, http.StatusBadRequest, "Album name is required")
		return
	}
	album.ID = 0

	if err := h.albums.Create(r.Context(), &album); err != nil {
		logger.Error("album creation failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, album)
}

// GetAlbumHandler returns a single album by its numeric id.
func (h *APIHandler) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid album id")
		return
	}

	album, err := h.albums.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("album lookup failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if album == nil {
		writeError(w, http.StatusNotFound, "Album not found")
		return
	}

	writeJSON(w, http.StatusOK, album)
}

// UpdateAlbumHandler replaces an album's mutable fields.
func (h *APIHandler) UpdateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid album id")
		return
	}

	existing, err := h.albums.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("album lookup failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Album not found")
		return
	}

	var album model.Album
	if err := json.NewDecoder(r.Body).Decode(&album); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	album.ID = id
	album.RefID = existing.RefID
	album.CreatedAt = existing.CreatedAt

	if err := h.albums.Update(r.Context(), &album); err != nil {
		logger.Error("album update failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, album)
}

// DeleteAlbumHandler removes an album by its numeric id.
func (h *APIHandler) DeleteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid album id")
		return
	}

	if err := h.albums.Delete(r.Context(), id); err != nil {
		logger.Error("album deletion failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Album deleted"})
}
