package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"melodex/model"
)

type fakeTokenEndpoint struct {
	mu      sync.Mutex
	grants  int
	token   string
	status  int
	lastReq *http.Request
}

func (f *fakeTokenEndpoint) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.grants++
		f.lastReq = r
		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": f.token,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}
}

func (f *fakeTokenEndpoint) grantCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.grants
}

type memTokenStore struct {
	mu    sync.Mutex
	token model.ProviderToken
	has   bool
	saves int
}

func (s *memTokenStore) Load(ctx context.Context) (model.ProviderToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.has
}

func (s *memTokenStore) Save(ctx context.Context, token model.ProviderToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.has = true
	s.saves++
}

func TestSearchAuthenticatesAndPaginates(t *testing.T) {
	tokens := &fakeTokenEndpoint{token: "tok-1"}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	var gotAuth, gotQuery string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(SearchResult{
			Tracks: &TrackPage{Items: []Track{{ID: "tr-1", Name: "Says"}}, Total: 1},
		})
	}))
	defer apiSrv.Close()

	client := NewClient(apiSrv.URL, tokenSrv.URL, "id", "secret")

	result, err := client.Search(context.Background(), "track:says", []string{KindTrack}, 10, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want bearer token from grant", gotAuth)
	}
	for _, fragment := range []string{"q=track%3Asays", "type=track", "offset=10", "limit=5"} {
		if !strings.Contains(gotQuery, fragment) {
			t.Errorf("query %q missing %q", gotQuery, fragment)
		}
	}
	if result.Tracks == nil || len(result.Tracks.Items) != 1 || result.Tracks.Items[0].ID != "tr-1" {
		t.Errorf("result = %+v, want the decoded track page", result)
	}
}

func TestAccessTokenIsReusedUntilExpiry(t *testing.T) {
	tokens := &fakeTokenEndpoint{token: "tok-1"}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(SearchResult{})
	}))
	defer apiSrv.Close()

	client := NewClient(apiSrv.URL, tokenSrv.URL, "id", "secret")

	for i := 0; i < 3; i++ {
		if _, err := client.Search(context.Background(), "q", []string{KindTrack}, 0, 10); err != nil {
			t.Fatalf("Search() #%d error = %v", i, err)
		}
	}

	if n := tokens.grantCount(); n != 1 {
		t.Errorf("token grants = %d, want 1 across repeated requests", n)
	}
}

func TestAccessTokenRefreshesNearExpiry(t *testing.T) {
	tokens := &fakeTokenEndpoint{token: "tok-2"}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	client := NewClient("http://unused", tokenSrv.URL, "id", "secret")
	// Inside the expiry margin: must not be handed out.
	client.token = model.ProviderToken{
		Name:        "spotify",
		AccessToken: "stale",
		ExpiresAt:   time.Now().Add(10 * time.Second),
	}

	got, err := client.accessToken(context.Background())
	if err != nil {
		t.Fatalf("accessToken() error = %v", err)
	}
	if got != "tok-2" {
		t.Errorf("accessToken() = %q, want refreshed token", got)
	}
	if n := tokens.grantCount(); n != 1 {
		t.Errorf("token grants = %d, want 1", n)
	}
}

func TestAccessTokenPrefersStoreOverGrant(t *testing.T) {
	tokens := &fakeTokenEndpoint{token: "fresh"}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	store := &memTokenStore{
		token: model.ProviderToken{
			Name:        "spotify",
			AccessToken: "mirrored",
			ExpiresAt:   time.Now().Add(30 * time.Minute),
		},
		has: true,
	}
	client := NewClient("http://unused", tokenSrv.URL, "id", "secret").WithTokenStore(store)

	got, err := client.accessToken(context.Background())
	if err != nil {
		t.Fatalf("accessToken() error = %v", err)
	}
	if got != "mirrored" {
		t.Errorf("accessToken() = %q, want the mirrored token", got)
	}
	if n := tokens.grantCount(); n != 0 {
		t.Errorf("token grants = %d, want 0 when the store has a live token", n)
	}
}

func TestAccessTokenMirrorsNewTokenToStore(t *testing.T) {
	tokens := &fakeTokenEndpoint{token: "tok-3"}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	store := &memTokenStore{}
	client := NewClient("http://unused", tokenSrv.URL, "id", "secret").WithTokenStore(store)

	if _, err := client.accessToken(context.Background()); err != nil {
		t.Fatalf("accessToken() error = %v", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.saves != 1 || store.token.AccessToken != "tok-3" {
		t.Errorf("store = %+v, want the granted token mirrored once", store.token)
	}
}

func TestGrantFailureIsAuthError(t *testing.T) {
	tokens := &fakeTokenEndpoint{status: http.StatusBadRequest}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	client := NewClient("http://unused", tokenSrv.URL, "id", "secret")

	_, err := client.Search(context.Background(), "q", []string{KindTrack}, 0, 10)
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("Search() error = %v, want ErrAuthFailed", err)
	}
}

func TestUnauthorizedDropsCachedToken(t *testing.T) {
	tokens := &fakeTokenEndpoint{token: "tok-4"}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer apiSrv.Close()

	client := NewClient(apiSrv.URL, tokenSrv.URL, "id", "secret")

	_, err := client.Search(context.Background(), "q", []string{KindTrack}, 0, 10)
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("Search() error = %v, want ErrAuthFailed", err)
	}

	// Next call must re-authenticate rather than reuse the revoked token.
	if _, err := client.Search(context.Background(), "q", []string{KindTrack}, 0, 10); !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("second Search() error = %v", err)
	}
	if n := tokens.grantCount(); n != 2 {
		t.Errorf("token grants = %d, want a fresh grant per revoked token", n)
	}
}

func TestServerErrorIsRequestError(t *testing.T) {
	tokens := &fakeTokenEndpoint{token: "tok-5"}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer apiSrv.Close()

	client := NewClient(apiSrv.URL, tokenSrv.URL, "id", "secret")

	_, err := client.Search(context.Background(), "q", []string{KindTrack}, 0, 10)
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("Search() error = %v, want ErrRequestFailed", err)
	}
	if errors.Is(err, ErrAuthFailed) {
		t.Errorf("Search() error = %v, must not be tagged as auth failure", err)
	}
}

func TestArtistsBatchLookup(t *testing.T) {
	tokens := &fakeTokenEndpoint{token: "tok-6"}
	tokenSrv := httptest.NewServer(tokens.handler())
	defer tokenSrv.Close()

	var gotPath, gotIDs string
	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotIDs = r.URL.Query().Get("ids")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"artists": []Artist{
				{ID: "a1", Name: "One", Genres: []string{"jazz"}},
				{ID: "a2", Name: "Two"},
			},
		})
	}))
	defer apiSrv.Close()

	client := NewClient(apiSrv.URL, tokenSrv.URL, "id", "secret")

	got, err := client.Artists(context.Background(), []string{"a1", "a2"})
	if err != nil {
		t.Fatalf("Artists() error = %v", err)
	}
	if gotPath != "/artists" {
		t.Errorf("path = %q, want /artists", gotPath)
	}
	if gotIDs != "a1,a2" {
		t.Errorf("ids = %q, want comma-joined batch", gotIDs)
	}
	if len(got) != 2 || got[0].Genres[0] != "jazz" {
		t.Errorf("Artists() = %+v, want both decoded artists", got)
	}
}
