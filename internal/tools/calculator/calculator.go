// Package calculator exposes basic arithmetic tools. Decimal arithmetic
// avoids binary float artifacts in tool output.
package calculator

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/stockbot/kmcp/internal/tools"
)

// Tools returns the four arithmetic tools.
func Tools() []tools.Tool {
	return []tools.Tool{
		op{"add", "Add two numbers and return the sum.", func(a, b decimal.Decimal) (decimal.Decimal, error) {
			return a.Add(b), nil
		}},
		op{"sub", "Subtract the second number from the first.", func(a, b decimal.Decimal) (decimal.Decimal, error) {
			return a.Sub(b), nil
		}},
		op{"mul", "Multiply two numbers and return the product.", func(a, b decimal.Decimal) (decimal.Decimal, error) {
			return a.Mul(b), nil
		}},
		op{"div", "Divide the first number by the second.", func(a, b decimal.Decimal) (decimal.Decimal, error) {
			if b.IsZero() {
				return decimal.Zero, errors.New("cannot divide by zero")
			}
			return a.Div(b), nil
		}},
	}
}

type op struct {
	name string
	desc string
	eval func(a, b decimal.Decimal) (decimal.Decimal, error)
}

func (o op) Definition() mcp.Tool {
	return mcp.NewTool(o.name,
		mcp.WithDescription(o.desc),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("First operand")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Second operand")),
	)
}

func (o op) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := req.RequireFloat("a")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	b, err := req.RequireFloat("b")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	res, err := o.eval(decimal.NewFromFloat(a), decimal.NewFromFloat(b))
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return mcp.NewToolResultText(res.String()), nil
}
