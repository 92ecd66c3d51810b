package calculator

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func callTool(t *testing.T, name string, args map[string]any) string {
	t.Helper()
	for _, tool := range Tools() {
		if tool.Definition().Name != name {
			continue
		}
		req := mcp.CallToolRequest{}
		req.Params.Name = name
		req.Params.Arguments = args
		res, err := tool.Handle(context.Background(), req)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		tc, ok := res.Content[0].(mcp.TextContent)
		if !ok {
			t.Fatalf("content type %T", res.Content[0])
		}
		return tc.Text
	}
	t.Fatalf("tool %s not registered", name)
	return ""
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		tool string
		a, b float64
		want string
	}{
		{"add", 2, 3, "5"},
		{"add", 0.1, 0.2, "0.3"},
		{"sub", 10, 4, "6"},
		{"sub", 1, 2, "-1"},
		{"mul", 6, 7, "42"},
		{"mul", 0.5, 0.2, "0.1"},
		{"div", 10, 4, "2.5"},
		{"div", 1, 3, "0.3333333333333333"},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			got := callTool(t, tt.tool, map[string]any{"a": tt.a, "b": tt.b})
			if got != tt.want {
				t.Errorf("%s(%v, %v) = %q, want %q", tt.tool, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDivideByZero(t *testing.T) {
	got := callTool(t, "div", map[string]any{"a": 1.0, "b": 0.0})
	if !strings.Contains(got, "cannot divide by zero") {
		t.Fatalf("got %q", got)
	}
}

func TestMissingArgument(t *testing.T) {
	got := callTool(t, "add", map[string]any{"a": 1.0})
	if !strings.Contains(got, "error") {
		t.Fatalf("got %q", got)
	}
}
