package kis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/pkg/errors"
)

func TestHashkeyDeterministicPerBody(t *testing.T) {
	g := newFakeGateway(t)
	// Hash the payload so equal bodies yield equal hashes and distinct
	// bodies do not.
	g.hashFn = func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		sum := sha256.Sum256(raw)
		writeJSON(w, map[string]any{"HASH": hex.EncodeToString(sum[:])})
	}

	c := g.client(t, ModeLive)
	body1 := map[string]string{"PDNO": "005930", "ORD_QTY": "3"}
	body2 := map[string]string{"PDNO": "005930", "ORD_QTY": "4"}

	h1a, err := c.Hashkey(context.Background(), body1)
	if err != nil {
		t.Fatalf("Hashkey: %v", err)
	}
	h1b, err := c.Hashkey(context.Background(), body1)
	if err != nil {
		t.Fatalf("Hashkey: %v", err)
	}
	h2, err := c.Hashkey(context.Background(), body2)
	if err != nil {
		t.Fatalf("Hashkey: %v", err)
	}
	if h1a != h1b {
		t.Errorf("same body hashed differently: %s vs %s", h1a, h1b)
	}
	if h1a == h2 {
		t.Errorf("distinct bodies share hash %s", h1a)
	}
}

func TestHashkeySendsJSONBody(t *testing.T) {
	g := newFakeGateway(t)
	var captured map[string]string
	g.hashFn = func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != contentType {
			t.Errorf("content-type = %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		writeJSON(w, map[string]any{"HASH": "h"})
	}

	c := g.client(t, ModeLive)
	if _, err := c.Hashkey(context.Background(), map[string]string{"PDNO": "005930"}); err != nil {
		t.Fatalf("Hashkey: %v", err)
	}
	if captured["PDNO"] != "005930" {
		t.Errorf("captured body = %v", captured)
	}
}

func TestHashkeyMissingHashIsTyped(t *testing.T) {
	g := newFakeGateway(t)
	g.hashFn = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{})
	}

	c := g.client(t, ModeLive)
	if _, err := c.Hashkey(context.Background(), map[string]string{"PDNO": "005930"}); !errors.Is(err, ErrSign) {
		t.Fatalf("err = %v, want ErrSign", err)
	}
}

func TestHashkeyUpstreamFailureIsTyped(t *testing.T) {
	g := newFakeGateway(t)
	g.hashFn = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}

	c := g.client(t, ModeLive)
	if _, err := c.Hashkey(context.Background(), map[string]string{"PDNO": "005930"}); !errors.Is(err, ErrSign) {
		t.Fatalf("err = %v, want ErrSign", err)
	}
}
