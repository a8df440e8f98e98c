package server

import (
	"net/http"
	"strconv"

	"melodex/logger"

	"github.com/gorilla/mux"
)

// AddFavoriteHandler marks a track as a favorite of the authenticated user.
// Re-favoriting an already favorited track is a no-op.
func (h *APIHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	trackID, err := strconv.ParseInt(mux.Vars(r)["trackId"], 10, 64)
	if err != nil || trackID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	track, err := h.tracks.GetByID(r.Context(), trackID)
	if err != nil {
		logger.Error("track lookup failed", logger.Int64("id", trackID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	if err := h.users.AddFavorite(r.Context(), userID, trackID); err != nil {
		logger.Error("favorite add failed",
			logger.Int64("userId", userID), logger.Int64("trackId", trackID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Favorite added"})
}

// RemoveFavoriteHandler removes a track from the user's favorites.
func (h *APIHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	trackID, err := strconv.ParseInt(mux.Vars(r)["trackId"], 10, 64)
	if err != nil || trackID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid track id")
		return
	}

	if err := h.users.RemoveFavorite(r.Context(), userID, trackID); err != nil {
		logger.Error("favorite removal failed",
			logger.Int64("userId", userID), logger.Int64("trackId", trackID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Favorite removed"})
}

// ListFavoritesHandler returns the ids of the user's favorite tracks, most
// recently favorited first.
func (h *APIHandler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ids, err := h.users.FavoriteTrackIDs(r.Context(), userID)
	if err != nil {
		logger.Error("favorite listing failed",
			logger.Int64("userId", userID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trackIds": ids})
}
