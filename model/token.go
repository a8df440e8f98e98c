package model

import "time"

// ProviderToken is the cached bearer credential for an external catalog
// provider. One record per provider, keyed by Name.
type ProviderToken struct {
	Name        string    `json:"name"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Valid reports whether the token can still be used at the given instant.
// A margin keeps a token from being handed out moments before it expires.
func (t ProviderToken) Valid(now time.Time, margin time.Duration) bool {
	return t.AccessToken != "" && now.Add(margin).Before(t.ExpiresAt)
}
