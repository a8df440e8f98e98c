package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"melodex/cache"
	"melodex/config"
	"melodex/core/auth"
	"melodex/core/catalog"
	"melodex/core/spotify"
	"melodex/db"
	"melodex/logger"
	"melodex/repository"
	"melodex/storage"

	"github.com/gorilla/mux"
)

// Start wires every component together and runs the HTTP server until an
// interrupt arrives.
func Start() error {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogPath,
		MaxSize:    cfg.LogMaxMB,
		MaxAge:     cfg.LogMaxAge,
	})
	defer logger.Sync()

	auth.SetSecret(cfg.JWTSecret)

	if err := db.ConnectDB(cfg); err != nil {
		logger.Error("database connection failed", logger.ErrorField(err))
		return err
	}
	defer db.CloseDB()

	if err := db.InitDB(); err != nil {
		logger.Error("database migration failed", logger.ErrorField(err))
		return err
	}

	if err := db.ConnectRedis(cfg); err != nil {
		logger.Error("redis connection failed", logger.ErrorField(err))
		return err
	}
	defer db.CloseRedis()

	files, err := storage.NewStore(cfg)
	if err != nil {
		logger.Error("object storage setup failed", logger.ErrorField(err))
		return err
	}

	tracks := repository.NewTrackRepository(db.DB)
	albums := repository.NewAlbumRepository(db.DB)
	artists := repository.NewArtistRepository(db.DB)
	users := repository.NewUserRepository(db.DB)
	playlists := repository.NewPlaylistRepository(db.DB)

	provider := spotify.NewClient(
		cfg.SpotifyAPIURL, cfg.SpotifyTokenURL,
		cfg.SpotifyClientID, cfg.SpotifyClientSecret,
	).WithTokenStore(cache.NewTokenCache(db.RedisClient, "spotify"))

	catalogSvc := catalog.NewService(tracks, albums, artists, provider, cfg.SearchPageSize)

	handler := NewAPIHandler(catalogSvc, tracks, albums, artists, users, playlists, files, cfg)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	registerRoutes(router, handler)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", logger.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("http server failed", logger.ErrorField(err))
		return err
	case sig := <-quit:
		logger.Info("shutting down", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", logger.ErrorField(err))
	}

	// Let in-flight catalog persistence finish before the database goes away.
	catalogSvc.Flush()
	logger.Info("server stopped")
	return nil
}

func registerRoutes(router *mux.Router, h *APIHandler) {
	api := router.PathPrefix("/api").Subrouter()

	// auth
	api.HandleFunc("/auth/register", h.RegisterHandler).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", h.LoginHandler).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/session", h.AuthMiddleware(h.SessionHandler)).Methods("GET", "OPTIONS")

	// catalog search (fetch-through)
	api.HandleFunc("/tracks/search", h.SearchTracksHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/albums/{albumRefId}/tracks", h.TracksByAlbumHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/albums/search", h.SearchAlbumsHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/artists/{artistRefId}/albums", h.AlbumsByArtistHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/artists/search", h.SearchArtistsHandler).Methods("GET", "OPTIONS")

	// track CRUD and streaming
	api.HandleFunc("/tracks", h.AuthMiddleware(h.CreateTrackHandler)).Methods("POST", "OPTIONS")
	api.HandleFunc("/tracks/upload", h.AuthMiddleware(h.UploadTrackHandler)).Methods("POST", "OPTIONS")
	api.HandleFunc("/tracks/{id:[0-9]+}", h.GetTrackHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/tracks/{id:[0-9]+}/stream", h.TrackStreamURLHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/tracks/{id:[0-9]+}", h.AuthMiddleware(h.UpdateTrackHandler)).Methods("PUT", "OPTIONS")
	api.HandleFunc("/tracks/{id:[0-9]+}", h.AuthMiddleware(h.DeleteTrackHandler)).Methods("DELETE", "OPTIONS")

	// album CRUD
	api.HandleFunc("/albums", h.AuthMiddleware(h.CreateAlbumHandler)).Methods("POST", "OPTIONS")
	api.HandleFunc("/albums/{id:[0-9]+}", h.GetAlbumHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/albums/{id:[0-9]+}", h.AuthMiddleware(h.UpdateAlbumHandler)).Methods("PUT", "OPTIONS")
	api.HandleFunc("/albums/{id:[0-9]+}", h.AuthMiddleware(h.DeleteAlbumHandler)).Methods("DELETE", "OPTIONS")

	// artist CRUD
	api.HandleFunc("/artists", h.AuthMiddleware(h.CreateArtistHandler)).Methods("POST", "OPTIONS")
	api.HandleFunc("/artists/{id:[0-9]+}", h.GetArtistHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/artists/{id:[0-9]+}", h.AuthMiddleware(h.UpdateArtistHandler)).Methods("PUT", "OPTIONS")
	api.HandleFunc("/artists/{id:[0-9]+}", h.AuthMiddleware(h.DeleteArtistHandler)).Methods("DELETE", "OPTIONS")

	// playlists
	api.HandleFunc("/playlists", h.AuthMiddleware(h.CreatePlaylistHandler)).Methods("POST", "OPTIONS")
	api.HandleFunc("/playlists", h.AuthMiddleware(h.ListPlaylistsHandler)).Methods("GET", "OPTIONS")
	api.HandleFunc("/playlists/{id:[0-9]+}", h.AuthMiddleware(h.GetPlaylistHandler)).Methods("GET", "OPTIONS")
	api.HandleFunc("/playlists/{id:[0-9]+}", h.AuthMiddleware(h.DeletePlaylistHandler)).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/playlists/{id:[0-9]+}/tracks", h.AuthMiddleware(h.AddPlaylistTrackHandler)).Methods("POST", "OPTIONS")
	api.HandleFunc("/playlists/{id:[0-9]+}/tracks/{trackId:[0-9]+}", h.AuthMiddleware(h.RemovePlaylistTrackHandler)).Methods("DELETE", "OPTIONS")

	// favorites
	api.HandleFunc("/favorites", h.AuthMiddleware(h.ListFavoritesHandler)).Methods("GET", "OPTIONS")
	api.HandleFunc("/favorites/{trackId:[0-9]+}", h.AuthMiddleware(h.AddFavoriteHandler)).Methods("POST", "OPTIONS")
	api.HandleFunc("/favorites/{trackId:[0-9]+}", h.AuthMiddleware(h.RemoveFavoriteHandler)).Methods("DELETE", "OPTIONS")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
