package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"melodex/logger"
	"melodex/model"

	"github.com/gorilla/mux"
)

// CreatePlaylistHandler creates a playlist for the authenticated user.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist := &model.Playlist{UserID: userID, Name: req.Name, Description: req.Description}
	if err := h.playlists.Create(r.Context(), playlist); err != nil {
		logger.Error("playlist creation failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, playlist)
}

// ListPlaylistsHandler lists the authenticated user's playlists.
func (h *APIHandler) ListPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlists, err := h.playlists.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("playlist listing failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, playlists)
}

// GetPlaylistHandler returns a playlist with its track ids. Only the owner
// may read it.
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	trackIDs, err := h.playlists.TrackIDs(r.Context(), playlist.ID)
	if err != nil {
		logger.Error("playlist tracks lookup failed",
			logger.Int64("playlistId", playlist.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"playlist": playlist,
		"trackIds": trackIDs,
	})
}

// DeletePlaylistHandler removes a playlist and its track entries.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	if err := h.playlists.Delete(r.Context(), playlist.ID); err != nil {
		logger.Error("playlist deletion failed",
			logger.Int64("playlistId", playlist.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Playlist deleted"})
}

// AddPlaylistTrackHandler appends a track to a playlist.
func (h *APIHandler) AddPlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	var req struct {
		TrackID int64 `json:"trackId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TrackID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	track, err := h.tracks.GetByID(r.Context(), req.TrackID)
	if err != nil {
		logger.Error("track lookup failed", logger.Int64("id", req.TrackID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	if err := h.playlists.AddTrack(r.Context(), playlist.ID, req.TrackID); err != nil {
		logger.Error("playlist track add failed",
			logger.Int64("playlistId", playlist.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Track added"})
}

// RemovePlaylistTrackHandler removes a track from a playlist.
func (h *APIHandler) RemovePlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	playlist, ok := h.ownedPlaylist(w, r)
	if !ok {
		return
	}

	trackID, err := strconv.ParseInt(mux.Vars(r)["trackId"], 10, 64)
	if err != nil || trackID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	if err := h.playlists.RemoveTrack(r.Context(), playlist.ID, trackID); err != nil {
		logger.Error("playlist track removal failed",
			logger.Int64("playlistId", playlist.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Track removed"})
}

// ownedPlaylist loads the playlist from the path and checks that it belongs
// to the authenticated user. Writes the error response itself on failure.
func (h *APIHandler) ownedPlaylist(w http.ResponseWriter, r *http.Request) (*model.Playlist, bool) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid playlist id")
		return nil, false
	}

	playlist, err := h.playlists.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("playlist lookup failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	if playlist == nil || playlist.UserID != userID {
		writeError(w, http.StatusNotFound, "Playlist not found")
		return nil, false
	}
	return playlist, true
}
