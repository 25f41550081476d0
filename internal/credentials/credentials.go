// internal/credentials/credentials.go
// Package credentials writes and reads the Twitch application credentials
// used by the FauxChat tooling.
package credentials

import (
	"fmt"
	"os"
	"strings"
)

// DefaultFileName is the file written by the credentials command
const DefaultFileName = "credentials.toml"

// Environment variables the credentials are sourced from
const (
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvUserID       = "USER_ID"
	EnvAuthToken    = "AUTH_TOKEN"
	EnvRefreshToken = "REFRESH_TOKEN"
)

// Credentials is the flat record stored in credentials.toml.
// Field order is the order keys are written in.
type Credentials struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	UserID       string `toml:"user_id"`
	AuthToken    string `toml:"auth_token"`
	RefreshToken string `toml:"refresh_token"`
}

// LookupFunc resolves an environment variable. It has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv builds Credentials from the process environment
func FromEnv() (*Credentials, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds Credentials using lookup. Every variable must be set;
// an empty value counts as set. The first missing variable is reported.
func FromLookup(lookup LookupFunc) (*Credentials, error) {
	var creds Credentials
	fields := []struct {
		env string
		dst *string
	}{
		{EnvClientID, &creds.ClientID},
		{EnvClientSecret, &creds.ClientSecret},
		{EnvUserID, &creds.UserID},
		{EnvAuthToken, &creds.AuthToken},
		{EnvRefreshToken, &creds.RefreshToken},
	}

	for _, f := range fields {
		value, ok := lookup(f.env)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingEnv, f.env)
		}
		*f.dst = value
	}

	return &creds, nil
}

// Masked returns a copy with the secret fields masked for display
func (c *Credentials) Masked() Credentials {
	return Credentials{
		ClientID:     c.ClientID,
		ClientSecret: mask(c.ClientSecret),
		UserID:       c.UserID,
		AuthToken:    mask(c.AuthToken),
		RefreshToken: mask(c.RefreshToken),
	}
}

// mask hides all but the last four characters of s
func mask(s string) string {
	const visible = 4
	runes := []rune(s)
	if len(runes) <= visible {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-visible) + string(runes[len(runes)-visible:])
}
