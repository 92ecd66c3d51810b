package kis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
)

// fakeGateway is an in-process stand-in for a KIS deployment. Handlers are
// registered per path; unregistered paths 404. The token and hashkey
// endpoints are pre-wired with canned responses and call counters; a test
// can swap hashFn for custom hashing behavior.
type fakeGateway struct {
	mux        *http.ServeMux
	srv        *httptest.Server
	hashFn     http.HandlerFunc
	tokenCalls atomic.Int64
	hashCalls  atomic.Int64
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	g := &fakeGateway{mux: http.NewServeMux()}
	g.hashFn = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"HASH": "h-abc123"})
	}
	g.mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls.Add(1)
		writeJSON(w, map[string]any{"access_token": "tok-live"})
	})
	g.mux.HandleFunc(hashkeyPath, func(w http.ResponseWriter, r *http.Request) {
		g.hashCalls.Add(1)
		g.hashFn(w, r)
	})
	g.srv = httptest.NewServer(g.mux)
	t.Cleanup(g.srv.Close)
	return g
}

func (g *fakeGateway) handle(path string, fn http.HandlerFunc) {
	g.mux.HandleFunc(path, fn)
}

func (g *fakeGateway) client(t *testing.T, mode Mode) *Client {
	t.Helper()
	c, err := New(Config{
		Mode: mode,
		Credentials: Credentials{
			AppKey:    "app-key",
			AppSecret: "app-secret",
			AccountNo: "12345678",
		},
		TokenFile: filepath.Join(t.TempDir(), "token.json"),
		BaseURL:   g.srv.URL,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewRejectsMissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"no app key", Credentials{AppSecret: "s", AccountNo: "1"}},
		{"no app secret", Credentials{AppKey: "k", AccountNo: "1"}},
		{"no account", Credentials{AppKey: "k", AppSecret: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(Config{Mode: ModeLive, Credentials: tt.creds}); err == nil {
				t.Fatal("expected error for incomplete credentials")
			}
		})
	}
}

func TestRequestHeadersCarryAuthAndTRCode(t *testing.T) {
	g := newFakeGateway(t)
	var gotHeaders http.Header
	g.handle(pricePath, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		writeJSON(w, map[string]any{"output": map[string]any{"stck_prpr": "70000"}})
	})

	c := g.client(t, ModeLive)
	if _, err := c.CurrentPrice(context.Background(), "005930"); err != nil {
		t.Fatalf("CurrentPrice: %v", err)
	}

	want := map[string]string{
		"Authorization": "Bearer tok-live",
		"Appkey":        "app-key",
		"Appsecret":     "app-secret",
		"Tr_id":         "FHKST01010100",
	}
	for k, v := range want {
		if got := gotHeaders.Get(k); got != v {
			t.Errorf("header %s = %q, want %q", k, got, v)
		}
	}
}

func TestUpstreamFailureIsTyped(t *testing.T) {
	g := newFakeGateway(t)
	g.handle(pricePath, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	c := g.client(t, ModeLive)
	_, err := c.CurrentPrice(context.Background(), "005930")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
}
