package session

import (
	"context"
	"errors"
	"time"

	"smartslot/pkg/cache"
)

const keyPrefix = "smartslot:session:"

// Store persists one record per browser session: the upstream bearer token
// and the cached user profile, written and cleared together. This is the
// portal-side equivalent of the two local-storage keys the browser used to
// hold, collapsed into a single record so a half-written pair cannot be
// observed.
type Store struct {
	cache cache.Service
	ttl   time.Duration
}

// NewStore creates a session store with the given record TTL
func NewStore(c cache.Service, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

// Get reads the session for id. It fails soft: a missing, malformed, or
// partial record is normalized to signed-out, and anything malformed or
// partial is deleted so later reads agree.
func (s *Store) Get(ctx context.Context, id string) Session {
	var sess Session
	err := s.cache.Get(ctx, keyPrefix+id, &sess)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			// Corrupt record: clear it rather than propagate.
			_ = s.cache.Delete(ctx, keyPrefix+id)
		}
		return Session{}
	}

	if !sess.SignedIn() {
		// A record with only one of token/user present violates the session
		// invariant; normalize to signed-out.
		_ = s.cache.Delete(ctx, keyPrefix+id)
		return Session{}
	}

	return sess
}

// Set persists token and user as one record
func (s *Store) Set(ctx context.Context, id, token string, user *User) error {
	return s.cache.Set(ctx, keyPrefix+id, Session{Token: token, User: user}, s.ttl)
}

// Clear removes the session record
func (s *Store) Clear(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, keyPrefix+id)
}
