// Package auth keeps the Videoflix access and refresh tokens in the system keyring.
package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service    = "videoflix-cli"
	accessKey  = "access-token"
	refreshKey = "refresh-token"
)

// ErrNotLoggedIn is returned when no access token is stored.
var ErrNotLoggedIn = errors.New("not logged in, run `videoflix login`")

// Tokens is a JWT pair issued by the API.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// SaveTokens persists both tokens. An empty refresh token is skipped.
func SaveTokens(t Tokens) error {
	if err := keyring.Set(service, accessKey, t.Access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if t.Refresh == "" {
		return nil
	}
	if err := keyring.Set(service, refreshKey, t.Refresh); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// LoadTokens returns the stored pair. A missing refresh token is not an error.
func LoadTokens() (Tokens, error) {
	access, err := keyring.Get(service, accessKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return Tokens{}, ErrNotLoggedIn
	}
	if err != nil {
		return Tokens{}, fmt.Errorf("read access token: %w", err)
	}

	refresh, err := keyring.Get(service, refreshKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return Tokens{}, fmt.Errorf("read refresh token: %w", err)
	}

	return Tokens{Access: access, Refresh: refresh}, nil
}

// DeleteTokens forgets both tokens. Tokens that are already gone are ignored.
func DeleteTokens() error {
	for _, k := range []string{accessKey, refreshKey} {
		if err := keyring.Delete(service, k); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}
	return nil
}

// Keyring is the token store backed by the functions above.
type Keyring struct{}

func (Keyring) Load() (Tokens, error) { return LoadTokens() }
func (Keyring) Save(t Tokens) error   { return SaveTokens(t) }
func (Keyring) Delete() error         { return DeleteTokens() }
