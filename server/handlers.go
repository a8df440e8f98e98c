package server

import (
	"encoding/json"
	"net/http"

	"melodex/config"
	"melodex/core/catalog"
	"melodex/repository"
	"melodex/storage"
)

// APIHandler handles all API requests.
type APIHandler struct {
	catalog   *catalog.Service
	tracks    repository.TrackRepository
	albums    repository.AlbumRepository
	artists   repository.ArtistRepository
	users     repository.UserRepository
	playlists repository.PlaylistRepository
	files     *storage.Store
	cfg       *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	catalogSvc *catalog.Service,
	tracks repository.TrackRepository,
	albums repository.AlbumRepository,
	artists repository.ArtistRepository,
	users repository.UserRepository,
	playlists repository.PlaylistRepository,
	files *storage.Store,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		catalog:   catalogSvc,
		tracks:    tracks,
		albums:    albums,
		artists:   artists,
		users:     users,
		playlists: playlists,
		files:     files,
		cfg:       cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
