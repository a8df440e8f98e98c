package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"melodex/model"
)

// accessToken returns a bearer token, refreshing through the client
// credentials grant when the cached one is missing or near expiry. A cached
// token is never handed out past its recorded expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.token.Valid(now, tokenExpiryMargin) {
		return c.token.AccessToken, nil
	}

	if c.tokens != nil {
		if token, ok := c.tokens.Load(ctx); ok && token.Valid(now, tokenExpiryMargin) {
			c.token = token
			return token.AccessToken, nil
		}
	}

	token, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	if c.tokens != nil {
		c.tokens.Save(ctx, token)
	}
	return token.AccessToken, nil
}

func (c *Client) requestToken(ctx context.Context) (model.ProviderToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return model.ProviderToken{}, fmt.Errorf("%w: create token request: %v", ErrAuthFailed, err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.ProviderToken{}, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.ProviderToken{}, fmt.Errorf("%w: token endpoint status %d", ErrAuthFailed, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.ProviderToken{}, fmt.Errorf("%w: decode token response: %v", ErrAuthFailed, err)
	}
	if body.AccessToken == "" {
		return model.ProviderToken{}, fmt.Errorf("%w: empty access token", ErrAuthFailed)
	}

	return model.ProviderToken{
		Name:        "spotify",
		AccessToken: body.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
