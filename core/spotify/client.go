package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"melodex/model"
)

// Provider failure classes.
var (
	// ErrAuthFailed means a bearer token could not be obtained.
	ErrAuthFailed = errors.New("provider auth failed")
	// ErrRequestFailed means the provider rejected or failed a catalog request.
	ErrRequestFailed = errors.New("provider request failed")
)

// tokenExpiryMargin keeps a token from being used moments before it expires.
const tokenExpiryMargin = 60 * time.Second

// TokenStore mirrors the cached provider token to shared storage so a
// restarted process can reuse a live token. Implementations must treat a
// missing record as a miss, not an error.
type TokenStore interface {
	Load(ctx context.Context) (model.ProviderToken, bool)
	Save(ctx context.Context, token model.ProviderToken)
}

// Client is a Spotify Web API client. The bearer token lives inside the
// client instance, guarded by a mutex; there is no package-level token state.
type Client struct {
	apiURL       string
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu     sync.Mutex
	token  model.ProviderToken
	tokens TokenStore // optional mirror
}

// NewClient creates a new Spotify API client.
func NewClient(apiURL, tokenURL, clientID, clientSecret string) *Client {
	return &Client{
		apiURL:       apiURL,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithTokenStore attaches a shared token mirror.
func (c *Client) WithTokenStore(store TokenStore) *Client {
	c.tokens = store
	return c
}

// get issues an authenticated GET against the API and decodes the JSON body
// into dst.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Token revoked on the provider side; drop the cached copy so the
		// next call re-authenticates.
		c.mu.Lock()
		c.token = model.ProviderToken{}
		c.mu.Unlock()
		return fmt.Errorf("%w: unauthorized", ErrAuthFailed)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d on %s", ErrRequestFailed, resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}
	return nil
}
