package google

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stockbot/kmcp/pkg/persistence"
)

func TestAuthTokenSource(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     *tokenRecord
		wantErr bool
	}{
		{"valid", &tokenRecord{Token: "g-tok", ExpiresAt: now.Add(time.Hour)}, false},
		{"expired", &tokenRecord{Token: "g-tok", ExpiresAt: now.Add(-time.Hour)}, true},
		{"expiring now", &tokenRecord{Token: "g-tok", ExpiresAt: now}, true},
		{"empty token", &tokenRecord{ExpiresAt: now.Add(time.Hour)}, true},
		{"missing slot", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := persistence.NewJSONFileStore(filepath.Join(t.TempDir(), "google_token.json"))
			if tt.rec != nil {
				if err := store.Save(tt.rec); err != nil {
					t.Fatal(err)
				}
			}
			a := NewAuth(store)
			a.now = func() time.Time { return now }

			ts, err := a.TokenSource()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("TokenSource: %v", err)
			}
			tok, err := ts.Token()
			if err != nil {
				t.Fatal(err)
			}
			if tok.AccessToken != "g-tok" {
				t.Fatalf("token = %q", tok.AccessToken)
			}
		})
	}
}

func TestEncodeMessage(t *testing.T) {
	raw := encodeMessage("dev@example.com", "hello", "first line\nsecond line")
	decoded, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	msg := string(decoded)
	for _, want := range []string{
		"To: dev@example.com",
		"From: me",
		"Subject: hello",
		"first line\nsecond line",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if !strings.Contains(msg, "\r\n\r\n") {
		t.Error("missing header/body separator")
	}
}

func TestBuildSearchQuery(t *testing.T) {
	q, err := buildSearchQuery("report", "2026-01-02", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(q, "subject:report after:") {
		t.Fatalf("query = %q", q)
	}

	q, err = buildSearchQuery("report", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if q != "subject:report" {
		t.Fatalf("query = %q", q)
	}

	if _, err := buildSearchQuery("x", "Jan 2", ""); err == nil {
		t.Fatal("bad date accepted")
	}
	if _, err := buildSearchQuery("x", "", "02/01/2026"); err == nil {
		t.Fatal("bad date accepted")
	}
}

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-09-01T10:00:00+09:00", false},
		{"2026-09-01 10:00:00", false},
		{"tomorrow at ten", true},
		{"", true},
	}
	for _, tt := range tests {
		if _, err := parseEventTime(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("parseEventTime(%q) err = %v", tt.in, err)
		}
	}
}

func TestToolsFailCleanlyWithoutToken(t *testing.T) {
	svc := NewService(filepath.Join(t.TempDir(), "google_token.json"))
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"event_id": "abc"}

	res, err := deleteEventTool{svc}.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := res.Content[0].(mcp.TextContent).Text
	if !strings.Contains(text, "error") || !strings.Contains(text, "authorization") {
		t.Fatalf("result = %q", text)
	}
}
