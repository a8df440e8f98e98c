package server

import (
	"net/http"
	"strconv"

	"melodex/logger"

	"github.com/gorilla/mux"
)

func skipParam(r *http.Request) int {
	skip, err := strconv.Atoi(r.URL.Query().Get("skip"))
	if err != nil || skip < 0 {
		return 0
	}
	return skip
}

// SearchTracksHandler searches tracks by name, topping up from the provider
// when the local store cannot fill a page.
func (h *APIHandler) SearchTracksHandler(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		writeError(w, http.StatusBadRequest, "Missing filter parameter")
		return
	}

	tracks, err := h.catalog.SearchTracks(r.Context(), filter, skipParam(r))
	if err != nil {
		logger.Error("track search failed",
			logger.String("filter", filter), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	writeJSON(w, http.StatusOK, tracks)
}

// TracksByAlbumHandler lists the tracks of an album by the album's provider id.
func (h *APIHandler) TracksByAlbumHandler(w http.ResponseWriter, r *http.Request) {
	albumRefID := mux.Vars(r)["albumRefId"]
	if albumRefID == "" {
		writeError(w, http.StatusBadRequest, "Missing album id")
		return
	}

	tracks, err := h.catalog.TracksByAlbum(r.Context(), albumRefID, skipParam(r))
	if err != nil {
		logger.Error("album tracks lookup failed",
			logger.String("albumRefId", albumRefID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, tracks)
}

// SearchAlbumsHandler searches albums by name.
func (h *APIHandler) SearchAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		writeError(w, http.StatusBadRequest, "Missing filter parameter")
		return
	}

	albums, err := h.catalog.SearchAlbums(r.Context(), filter, skipParam(r))
	if err != nil {
		logger.Error("album search failed",
			logger.String("filter", filter), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	writeJSON(w, http.StatusOK, albums)
}

// AlbumsByArtistHandler lists an artist's albums by the artist's provider id.
func (h *APIHandler) AlbumsByArtistHandler(w http.ResponseWriter, r *http.Request) {
	artistRefID := mux.Vars(r)["artistRefId"]
	if artistRefID == "" {
		writeError(w, http.StatusBadRequest, "Missing artist id")
		return
	}

	albums, err := h.catalog.AlbumsByArtist(r.Context(), artistRefID, skipParam(r))
	if err != nil {
		logger.Error("artist albums lookup failed",
			logger.String("artistRefId", artistRefID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, albums)
}

// SearchArtistsHandler searches artists by name.
func (h *APIHandler) SearchArtistsHandler(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		writeError(w, http.StatusBadRequest, "Missing filter parameter")
		return
	}

	artists, err := h.catalog.SearchArtists(r.Context(), filter, skipParam(r))
	if err != nil {
		logger.Error("artist search failed",
			logger.String("filter", filter), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	writeJSON(w, http.StatusOK, artists)
}
