// Package kis exposes the brokerage gateway operations as tools.
package kis

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stockbot/kmcp/internal/tools"
	kisclient "github.com/stockbot/kmcp/pkg/kis"
)

// Gateway is the brokerage surface the tools need. *kis.Client implements
// it; tests substitute a fake.
type Gateway interface {
	CurrentPrice(ctx context.Context, symbol string) (map[string]any, error)
	Balance(ctx context.Context) (map[string]any, error)
	PlaceOrder(ctx context.Context, req kisclient.OrderRequest) (map[string]any, error)
	OrderList(ctx context.Context, startDate, endDate string) (map[string]any, error)
	AskPrice(ctx context.Context, symbol string) (map[string]any, error)
	DailyPrices(ctx context.Context, symbol, startDate, endDate string, adjusted bool) ([]map[string]any, error)
}

// Tools returns the six trading tools over gw.
func Tools(gw Gateway) []tools.Tool {
	return []tools.Tool{
		priceTool{gw},
		balanceTool{gw},
		orderTool{gw},
		orderListTool{gw},
		askPriceTool{gw},
		dailyPriceTool{gw},
	}
}

type priceTool struct{ gw Gateway }

func (priceTool) Definition() mcp.Tool {
	return mcp.NewTool("get_stock_price",
		mcp.WithDescription("Fetch the current price information for a given stock symbol."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol (6 digits)")),
	)
}

func (t priceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	out, err := t.gw.CurrentPrice(ctx, symbol)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(out), nil
}

type balanceTool struct{ gw Gateway }

func (balanceTool) Definition() mcp.Tool {
	return mcp.NewTool("get_account_balance",
		mcp.WithDescription("Fetch the current account balance."),
	)
}

func (t balanceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := t.gw.Balance(ctx)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(out), nil
}

type orderTool struct{ gw Gateway }

func (orderTool) Definition() mcp.Tool {
	return mcp.NewTool("place_order",
		mcp.WithDescription("Place a buy or sell order for a stock."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol (6 digits)")),
		mcp.WithNumber("quantity", mcp.Required(), mcp.Description("Order quantity")),
		mcp.WithNumber("price", mcp.Required(), mcp.Description("Order price (0 for market order)")),
		mcp.WithString("order_type", mcp.Required(), mcp.Description("'buy' or 'sell'")),
	)
}

func (t orderTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	quantity, err := req.RequireInt("quantity")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	price, err := req.RequireInt("price")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	orderType, err := req.RequireString("order_type")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	side, err := kisclient.ParseSide(orderType)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	out, err := t.gw.PlaceOrder(ctx, kisclient.OrderRequest{
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Side:     side,
	})
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(out), nil
}

type orderListTool struct{ gw Gateway }

func (orderListTool) Definition() mcp.Tool {
	return mcp.NewTool("get_order_list",
		mcp.WithDescription("Fetch the order history for a given date range."),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date (YYYYMMDD)")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("End date (YYYYMMDD)")),
	)
}

func (t orderListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := req.RequireString("start_date")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	end, err := req.RequireString("end_date")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	out, err := t.gw.OrderList(ctx, start, end)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(out), nil
}

type askPriceTool struct{ gw Gateway }

func (askPriceTool) Definition() mcp.Tool {
	return mcp.NewTool("get_stock_ask_price",
		mcp.WithDescription("Fetch the ask/bid price for a stock."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol (6 digits)")),
	)
}

func (t askPriceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	out, err := t.gw.AskPrice(ctx, symbol)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(out), nil
}

type dailyPriceTool struct{ gw Gateway }

func (dailyPriceTool) Definition() mcp.Tool {
	return mcp.NewTool("get_daily_price",
		mcp.WithDescription("Fetch daily price data for a stock."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Stock symbol (6 digits)")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date (YYYYMMDD)")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("End date (YYYYMMDD)")),
		mcp.WithString("adj", mcp.Description("Adjusted price (0: no, 1: yes), default 0")),
	)
}

func (t dailyPriceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := req.RequireString("symbol")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	start, err := req.RequireString("start_date")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	end, err := req.RequireString("end_date")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	adjusted := req.GetString("adj", "0") == "1"

	rows, err := t.gw.DailyPrices(ctx, symbol, start, end, adjusted)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(rows), nil
}
