// Package google exposes Calendar and Gmail tools backed by the Google
// APIs. Authorization relies on a pre-provisioned token slot; the
// interactive OAuth consent flow is not part of this server.
package google

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/stockbot/kmcp/pkg/persistence"
)

// Scopes is the access the persisted token must carry.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.readonly",
}

// tokenRecord is the persisted token slot layout, shared with the external
// authorization helper that writes it.
type tokenRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Auth loads the bearer token from the slot. Unlike the brokerage token
// manager it cannot refresh: a missing or expired slot is a hard error that
// tells the operator to re-run authorization.
type Auth struct {
	store persistence.Store
	now   func() time.Time
}

func NewAuth(store persistence.Store) *Auth {
	return &Auth{store: store, now: time.Now}
}

// TokenSource returns a static token source for the persisted token.
func (a *Auth) TokenSource() (oauth2.TokenSource, error) {
	var rec tokenRecord
	if err := a.store.Load(&rec); err != nil {
		return nil, errors.Wrap(err, "no Google token slot; run the authorization flow first")
	}
	if rec.Token == "" || !a.now().Before(rec.ExpiresAt) {
		return nil, errors.New("Google token is missing or expired; run the authorization flow again")
	}
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: rec.Token}), nil
}
