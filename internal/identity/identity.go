// Package identity manages the anonymous per-client identity used to
// correlate prediction history.
//
// The identity is created exactly once, written to durable storage before
// it is first returned, and read-only thereafter. Storage failures are
// never fatal: the client degrades to a session-scoped identity.
package identity

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/logger"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/metrics"
)

// identityKey is the durable storage key holding the identity token.
const identityKey = "identity"

// KV is the durable storage contract the identity store needs. A nil KV is
// allowed and yields a session-scoped identity.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Store owns the anonymous identity lifecycle: init-once, read-many.
type Store struct {
	mu     sync.Mutex
	kv     KV
	cached string
	log    logger.Logger
}

// New creates an identity store backed by kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate returns the durable identity for this client, generating and
// persisting one on first use. It is idempotent: repeated calls against the
// same storage return the identical token. It never fails; when storage is
// unavailable the token lives only for this process.
func (s *Store) GetOrCreate(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached
	}

	if s.kv != nil {
		if v, err := s.kv.Get(ctx, identityKey); err == nil && v != "" {
			s.cached = v
			return v
		}
	}

	id := newToken()
	metrics.RecordIdentityCreated()

	if s.kv == nil {
		s.warn(ctx, "no identity storage configured; using session-scoped identity")
	} else if err := s.kv.Put(ctx, identityKey, id); err != nil {
		s.warn(ctx, "identity not persisted; using session-scoped identity", logger.Error(err))
	}

	s.cached = id
	return id
}

func (s *Store) warn(ctx context.Context, msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Warn(ctx, msg, fields...)
	}
}

// newToken generates a UUID-v4 token, falling back to a pseudo-random
// UUID-v4-shaped token if the secure source is unavailable.
func newToken() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return pseudoV4()
	}
	return id.String()
}

// pseudoV4 builds a UUID-v4 textual shape from math/rand: version nibble
// fixed to 4 and variant bits fixed to the 10xx pattern.
func pseudoV4() string {
	var b [16]byte
	for i := range b {
		b[i] = byte(rand.Intn(256)) //nolint:gosec // explicit weak-source fallback
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
