// Package clock exposes the datetime and greeting tools, along with the
// greeting prompt and the sample user-info resource.
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"github.com/stockbot/kmcp/internal/tools"
)

const datetimeLayout = "2006-01-02 15:04:05"

// Tools returns the clock tools. now is injectable for tests; nil means
// time.Now.
func Tools(now func() time.Time) []tools.Tool {
	if now == nil {
		now = time.Now
	}
	return []tools.Tool{
		datetimeTool{now: now},
		helloTool{},
	}
}

type datetimeTool struct {
	now func() time.Time
}

func (datetimeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_current_datetime",
		mcp.WithDescription("Return the current date and time."),
	)
}

func (t datetimeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.now().Format(datetimeLayout)), nil
}

type helloTool struct{}

func (helloTool) Definition() mcp.Tool {
	return mcp.NewTool("hello_world",
		mcp.WithDescription("Greets the provided name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name to greet")),
	)
}

func (helloTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Hello %s", name)), nil
}

// Prompts returns the greeting prompt.
func Prompts() []tools.Prompt {
	return []tools.Prompt{
		{
			Definition: mcp.NewPrompt("generate_welcome",
				mcp.WithPromptDescription("Generates a welcome message for the provided name."),
				mcp.WithArgument("name",
					mcp.ArgumentDescription("Name to welcome"),
					mcp.RequiredArgument(),
				),
			),
			Handle: welcomePrompt,
		},
	}
}

func welcomePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := req.Params.Arguments["name"]
	if name == "" {
		return nil, errors.New("name is required")
	}
	return mcp.NewGetPromptResult(
		"Welcome message",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser,
				mcp.NewTextContent(fmt.Sprintf("Welcome, %s! How can I assist you today?", name))),
		},
	), nil
}

const userInfoURI = "resource://user-info"

// Resources returns the sample user-info resource.
func Resources() []tools.Resource {
	return []tools.Resource{
		{
			Definition: mcp.NewResource(userInfoURI, "user-info",
				mcp.WithResourceDescription("Provides sample user information."),
				mcp.WithMIMEType("application/json"),
			),
			Handle: userInfoResource,
		},
	}
}

func userInfoResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      userInfoURI,
			MIMEType: "application/json",
			Text:     `{"username": "guest", "level": "basic"}`,
		},
	}, nil
}
