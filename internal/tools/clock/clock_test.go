package clock

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T", res.Content[0])
	}
	return tc.Text
}

func TestDatetimeFormat(t *testing.T) {
	frozen := time.Date(2026, 8, 30, 9, 5, 7, 0, time.UTC)
	ts := Tools(func() time.Time { return frozen })

	res, err := ts[0].Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if got := text(t, res); got != "2026-08-30 09:05:07" {
		t.Fatalf("got %q", got)
	}
}

func TestHello(t *testing.T) {
	ts := Tools(nil)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"name": "Jisoo"}

	res, err := ts[1].Handle(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if got := text(t, res); got != "Hello Jisoo" {
		t.Fatalf("got %q", got)
	}
}

func TestWelcomePrompt(t *testing.T) {
	ps := Prompts()
	if len(ps) != 1 || ps[0].Definition.Name != "generate_welcome" {
		t.Fatalf("prompts = %v", ps)
	}

	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"name": "Jisoo"}
	res, err := ps[0].Handle(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("messages = %v", res.Messages)
	}
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T", res.Messages[0].Content)
	}
	if tc.Text != "Welcome, Jisoo! How can I assist you today?" {
		t.Fatalf("got %q", tc.Text)
	}
}

func TestWelcomePromptRequiresName(t *testing.T) {
	req := mcp.GetPromptRequest{}
	if _, err := Prompts()[0].Handle(context.Background(), req); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestUserInfoResource(t *testing.T) {
	rs := Resources()
	if len(rs) != 1 || rs[0].Definition.URI != "resource://user-info" {
		t.Fatalf("resources = %v", rs)
	}

	contents, err := rs[0].Handle(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %v", contents)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type %T", contents[0])
	}
	if tc.MIMEType != "application/json" || tc.Text != `{"username": "guest", "level": "basic"}` {
		t.Fatalf("got %q (%s)", tc.Text, tc.MIMEType)
	}
}
