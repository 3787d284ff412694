// Package store is the client-local persisted state: the authentication
// tokens, the wishlist and the preferred display currency. It is the only
// place these are read or written; everything else goes through the
// accessors. State survives across runs in a small JSON file, the same
// role browser localStorage plays for the web storefront.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// DefaultCurrency is the canonical backend currency, used until the user
// picks another one.
const DefaultCurrency = "THB"

type state struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	WishlistIDs  []int  `json:"wishlist_ids,omitempty"`
	Currency     string `json:"currency,omitempty"`
}

// Store is safe for concurrent use within one process. Nothing
// synchronizes concurrent processes; last write wins, like two tabs
// sharing localStorage.
type Store struct {
	mu    sync.Mutex
	path  string
	state state
}

// Open loads the state file at path, treating a missing file as empty
// state.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.state); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}

	return s, nil
}

// save writes through to disk. Caller must hold the lock.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	raw, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	// Tokens live in here, keep it private to the user.
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken
}

func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = token
	return s.save()
}

func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RefreshToken
}

func (s *Store) SetRefreshToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.RefreshToken = token
	return s.save()
}

// ClearTokens drops both tokens, ending the session.
func (s *Store) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = ""
	s.state.RefreshToken = ""
	return s.save()
}

// Wishlist returns a copy of the wishlisted package IDs.
func (s *Store) Wishlist() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, len(s.state.WishlistIDs))
	copy(ids, s.state.WishlistIDs)
	return ids
}

func (s *Store) InWishlist(packageID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.state.WishlistIDs {
		if id == packageID {
			return true
		}
	}
	return false
}

// ToggleWishlist adds the package when absent and removes it when present.
// Returns whether the package is wishlisted afterwards.
func (s *Store) ToggleWishlist(packageID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.state.WishlistIDs {
		if id == packageID {
			s.state.WishlistIDs = append(s.state.WishlistIDs[:i], s.state.WishlistIDs[i+1:]...)
			return false, s.save()
		}
	}

	s.state.WishlistIDs = append(s.state.WishlistIDs, packageID)
	sort.Ints(s.state.WishlistIDs)
	return true, s.save()
}

// Currency returns the preferred display currency, defaulting to the
// canonical one.
func (s *Store) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Currency == "" {
		return DefaultCurrency
	}
	return s.state.Currency
}

func (s *Store) SetCurrency(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Currency = code
	return s.save()
}
