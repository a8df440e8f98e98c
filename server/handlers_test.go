package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"melodex/core/auth"
	"melodex/core/catalog"
	"melodex/core/spotify"
	"melodex/model"
	"melodex/repository"
)

// fixedTrackRepo serves a canned page; the provider side is never reached
// when the page is already full.
type fixedTrackRepo struct {
	page []model.Track
	err  error
}

func (r *fixedTrackRepo) Search(ctx context.Context, q repository.TrackQuery) ([]model.Track, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.page, nil
}
func (r *fixedTrackRepo) FindByRefIDs(ctx context.Context, refIDs []string) ([]model.Track, error) {
	return nil, nil
}
func (r *fixedTrackRepo) InsertBatch(ctx context.Context, tracks []model.Track) error { return nil }
func (r *fixedTrackRepo) Create(ctx context.Context, track *model.Track) error        { return nil }
func (r *fixedTrackRepo) GetByID(ctx context.Context, id int64) (*model.Track, error) {
	return nil, nil
}
func (r *fixedTrackRepo) Update(ctx context.Context, track *model.Track) error { return nil }
func (r *fixedTrackRepo) Delete(ctx context.Context, id int64) error           { return nil }

type neverProvider struct{}

func (neverProvider) Search(ctx context.Context, query string, kinds []string, offset, limit int) (*spotify.SearchResult, error) {
	return &spotify.SearchResult{}, nil
}
func (neverProvider) Artists(ctx context.Context, ids []string) ([]spotify.Artist, error) {
	return nil, nil
}
func (neverProvider) Album(ctx context.Context, id string) (*spotify.Album, error) {
	return nil, errors.New("not implemented")
}
func (neverProvider) AlbumsByArtist(ctx context.Context, artistID string, offset, limit int) (*spotify.AlbumPage, error) {
	return &spotify.AlbumPage{}, nil
}
func (neverProvider) AlbumTracks(ctx context.Context, albumID string, offset, limit int) (*spotify.TrackPage, error) {
	return &spotify.TrackPage{}, nil
}

func searchHandler(tracks repository.TrackRepository, pageSize int) *APIHandler {
	svc := catalog.NewService(tracks, nil, nil, neverProvider{}, pageSize)
	return &APIHandler{catalog: svc, tracks: tracks}
}

func TestSearchTracksHandlerServesPage(t *testing.T) {
	refID := "tr-1"
	h := searchHandler(&fixedTrackRepo{page: []model.Track{
		{ID: 1, RefID: &refID, Name: "Says"},
	}}, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/tracks/search?filter=say", nil)
	rec := httptest.NewRecorder()
	h.SearchTracksHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []model.Track
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Says" {
		t.Errorf("body = %v, want the served page", got)
	}
}

func TestSearchTracksHandlerEmptyIsOK(t *testing.T) {
	h := searchHandler(&fixedTrackRepo{}, 1)

	// Local empty, provider empty: an empty page is a valid result.
	req := httptest.NewRequest(http.MethodGet, "/api/tracks/search?filter=nothing", nil)
	rec := httptest.NewRecorder()
	h.SearchTracksHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for an empty result", rec.Code)
	}
	var got []model.Track
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("body = %v, want empty array", got)
	}
}

func TestSearchTracksHandlerMissingFilter(t *testing.T) {
	h := searchHandler(&fixedTrackRepo{}, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/tracks/search", nil)
	rec := httptest.NewRecorder()
	h.SearchTracksHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchTracksHandlerStorageFailure(t *testing.T) {
	h := searchHandler(&fixedTrackRepo{err: errors.New("db down")}, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/tracks/search?filter=x", nil)
	rec := httptest.NewRecorder()
	h.SearchTracksHandler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500; a failure is not an empty result", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	auth.SetSecret("test-secret")
	h := &APIHandler{}

	var gotUserID int64
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader func() string
		wantCode   int
	}{
		{"missing header", func() string { return "" }, http.StatusUnauthorized},
		{"malformed header", func() string { return "Token abc" }, http.StatusUnauthorized},
		{"garbage token", func() string { return "Bearer nope" }, http.StatusUnauthorized},
		{"valid token", func() string {
			token, err := auth.GenerateToken(7, "ada")
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			return "Bearer " + token
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
			if header := tt.authHeader(); header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			protected(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}

	if gotUserID != 7 {
		t.Errorf("user id from context = %d, want 7", gotUserID)
	}
}
