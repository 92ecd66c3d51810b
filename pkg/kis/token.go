package kis

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/stockbot/kmcp/pkg/logger"
	"github.com/stockbot/kmcp/pkg/persistence"
)

// tokenTTL is a conservative margin below the gateway's actual 24h token
// lifetime.
const tokenTTL = 23 * time.Hour

// tokenRecord is the persisted single-slot token file layout.
type tokenRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenManager owns the bearer-token lifecycle: load from the on-disk slot,
// validity check, network refresh, persist. The mutex covers the whole
// load-check-refresh-save sequence so concurrent callers cannot race into
// duplicate refreshes.
type TokenManager struct {
	mu    sync.Mutex
	store persistence.Store
	fetch func(ctx context.Context) (string, error)
	now   func() time.Time
}

// NewTokenManager creates a manager over the given slot. fetch performs the
// credential-grant network call and returns the raw token value.
func NewTokenManager(store persistence.Store, fetch func(ctx context.Context) (string, error)) *TokenManager {
	return &TokenManager{
		store: store,
		fetch: fetch,
		now:   time.Now,
	}
}

// Token returns a valid bearer token, refreshing over the network only when
// the cached one is absent or expired. A token is usable iff now is strictly
// before its expiry.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rec tokenRecord
	if err := m.store.Load(&rec); err == nil {
		if rec.Token != "" && m.now().Before(rec.ExpiresAt) {
			return rec.Token, nil
		}
	} else if err != persistence.ErrNotExists {
		// A corrupt slot is the same as an empty one.
		logger.Warnf("[kis] ignoring unreadable token slot: %v", err)
	}

	token, err := m.fetch(ctx)
	if err != nil {
		return "", errors.Wrapf(ErrAuth, "%v", err)
	}

	rec = tokenRecord{Token: token, ExpiresAt: m.now().Add(tokenTTL)}
	if err := m.store.Save(rec); err != nil {
		// The token is still good for this call; only the cache is lost.
		logger.Warnf("[kis] failed to persist token: %v", err)
	}
	return token, nil
}
