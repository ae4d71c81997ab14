package session

import (
	"context"
	"encoding/json"
	"fmt"

	"pulseralux/internal/kv"
	"pulseralux/internal/model"
)

const sessionKeyPrefix = "session:"

// Store persists the token-to-profile mapping in the KV store.
type Store struct {
	kv kv.Store
}

// NewStore creates a session store over the given KV backend.
func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

// Save persists the cached profile under the session token.
func (s *Store) Save(ctx context.Context, token string, profile model.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.kv.Set(ctx, sessionKeyPrefix+token, payload)
}

// Load returns the cached profile for a token. The second return value is
// false when no session is persisted for the token.
func (s *Store) Load(ctx context.Context, token string) (model.Profile, bool, error) {
	data, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return model.Profile{}, false, err
	}
	if data == nil {
		return model.Profile{}, false, nil
	}
	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.Profile{}, false, fmt.Errorf("unmarshal profile: %w", err)
	}
	return profile, true, nil
}

// Delete removes the persisted session for a token.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.kv.Delete(ctx, sessionKeyPrefix+token)
}
