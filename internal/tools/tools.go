// Package tools defines the tool abstraction shared by every adapter and
// the registry that installs them on an MCP server.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stockbot/kmcp/pkg/logger"
)

// Tool is a single MCP tool: its wire definition plus its handler.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Prompt pairs a prompt definition with its handler.
type Prompt struct {
	Definition mcp.Prompt
	Handle     server.PromptHandlerFunc
}

// Resource pairs a resource definition with its handler.
type Resource struct {
	Definition mcp.Resource
	Handle     server.ResourceHandlerFunc
}

// Registry collects tools, prompts, and resources from the enabled adapter
// groups and installs them on a server. Registration happens once at
// startup; the registry is read-only afterwards.
type Registry struct {
	tools     []Tool
	prompts   []Prompt
	resources []Resource
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends tools to the registry.
func (r *Registry) Add(ts ...Tool) {
	r.tools = append(r.tools, ts...)
}

// AddPrompts appends prompts to the registry.
func (r *Registry) AddPrompts(ps ...Prompt) {
	r.prompts = append(r.prompts, ps...)
}

// AddResources appends resources to the registry.
func (r *Registry) AddResources(rs ...Resource) {
	r.resources = append(r.resources, rs...)
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Install registers every tool, prompt, and resource on s, wrapping each
// tool handler with invocation logging and panic recovery.
func (r *Registry) Install(s *server.MCPServer) {
	for _, t := range r.tools {
		def := t.Definition()
		s.AddTool(def, server.ToolHandlerFunc(wrap(def.Name, t.Handle)))
		logger.Debugf("[tools] registered %s", def.Name)
	}
	for _, p := range r.prompts {
		s.AddPrompt(p.Definition, p.Handle)
		logger.Debugf("[tools] registered prompt %s", p.Definition.Name)
	}
	for _, res := range r.resources {
		s.AddResource(res.Definition, res.Handle)
		logger.Debugf("[tools] registered resource %s", res.Definition.URI)
	}
	logger.Infof("[tools] %d tools, %d prompts, %d resources registered",
		len(r.tools), len(r.prompts), len(r.resources))
}

type handlerFunc func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// wrap gives each invocation an id, logs start/end with duration, and turns
// a handler panic into an error result instead of killing the transport.
func wrap(name string, h handlerFunc) handlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (res *mcp.CallToolResult, err error) {
		id := uuid.NewString()[:8]
		start := time.Now()
		log := logger.WithFields(map[string]interface{}{
			"tool": name,
			"call": id,
		})
		log.Debug("invocation start")

		defer func() {
			if rec := recover(); rec != nil {
				log.Errorf("handler panicked: %v", rec)
				res = mcp.NewToolResultError(fmt.Sprintf("internal error: %v", rec))
				err = nil
			}
			log.Debugf("invocation done in %s", time.Since(start))
		}()

		res, err = h(ctx, req)
		if err != nil {
			log.Warnf("invocation error: %v", err)
		}
		return res, err
	}
}

// JSONResult marshals v into an indented text result. Marshal failures come
// back as an error result rather than a protocol error.
func JSONResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(raw))
}

// ErrorResult reports a tool-level failure as a structured payload. The tool
// call itself still succeeds at the protocol level.
func ErrorResult(err error) *mcp.CallToolResult {
	return JSONResult(map[string]any{"error": err.Error()})
}
