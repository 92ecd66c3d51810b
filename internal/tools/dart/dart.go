package dart

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stockbot/kmcp/internal/tools"
)

const noDataMessage = "No data found for the given parameters."

// Tools returns the five disclosure tools backed by c.
func Tools(c *Client) []tools.Tool {
	return []tools.Tool{
		corpCodeTool{c},
		companyTool{c},
		finStatementTool{c},
		reportTool{c},
		eventTool{c},
	}
}

type corpCodeTool struct{ c *Client }

func (corpCodeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_corp_code",
		mcp.WithDescription("Fetch the corporate code of a company."),
		mcp.WithString("corp_name", mcp.Required(),
			mcp.Description("Corporate name of the company.")),
	)
}

func (t corpCodeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("corp_name")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	code, err := t.c.FindCorpCode(ctx, name)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return mcp.NewToolResultText(code), nil
}

type companyTool struct{ c *Client }

func (companyTool) Definition() mcp.Tool {
	return mcp.NewTool("get_company_overview",
		mcp.WithDescription("Fetch the general overview information of a company."),
		mcp.WithString("corp_code", mcp.Required(),
			mcp.Description("Corporate code of the company.")),
	)
}

func (t companyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("corp_code")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	overview, err := t.c.Company(ctx, code)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(overview), nil
}

type finStatementTool struct{ c *Client }

func (finStatementTool) Definition() mcp.Tool {
	return mcp.NewTool("get_financial_statement",
		mcp.WithDescription("Fetch the company's main financial statement items (Balance Sheet or Income Statement)."),
		mcp.WithString("corp_code", mcp.Required(),
			mcp.Description("Corporate code of the company.")),
		mcp.WithString("date", mcp.Required(),
			mcp.Description("Year in 'yyyy' format.")),
		mcp.WithString("report_code", mcp.Required(),
			mcp.Description("Report code: '11011' for Annual, '11012' for Semi-Annual, '11014' for Q3, '11013' for Q1.")),
		mcp.WithString("sj_div", mcp.Required(),
			mcp.Description("Statement type: 'BS' for Balance Sheet, 'IS' for Income Statement.")),
	)
}

func (t finStatementTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	corpCode, err := req.RequireString("corp_code")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	year, err := req.RequireString("date")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	reportCode, err := req.RequireString("report_code")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	sjDiv, err := req.RequireString("sj_div")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	rows, err := t.c.FinancialStatement(ctx, corpCode, year, reportCode, sjDiv)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if len(rows) == 0 {
		return tools.JSONResult(map[string]string{"message": noDataMessage}), nil
	}
	return tools.JSONResult(rows), nil
}

type reportTool struct{ c *Client }

func (reportTool) Definition() mcp.Tool {
	return mcp.NewTool("get_specific_business_report",
		mcp.WithDescription("Fetch a specific type of business report for a company."),
		mcp.WithString("corp_code", mcp.Required(),
			mcp.Description("Corporate code of the company.")),
		mcp.WithString("report_code", mcp.Required(),
			mcp.Description("Korean report section name, e.g. 배당, 증자, 최대주주.")),
		mcp.WithString("date", mcp.Required(),
			mcp.Description("Year in 'yyyy' format.")),
	)
}

func (t reportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	corpCode, err := req.RequireString("corp_code")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	reportCode, err := req.RequireString("report_code")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	year, err := req.RequireString("date")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	rows, err := t.c.Report(ctx, corpCode, reportCode, year)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if len(rows) == 0 {
		return tools.JSONResult(map[string]string{"message": noDataMessage}), nil
	}
	return tools.JSONResult(rows), nil
}

type eventTool struct{ c *Client }

func (eventTool) Definition() mcp.Tool {
	return mcp.NewTool("get_major_event_report",
		mcp.WithDescription("Fetch a major event report for a company."),
		mcp.WithString("corp_code", mcp.Required(),
			mcp.Description("Corporate code of the company.")),
		mcp.WithString("event", mcp.Required(),
			mcp.Description("Korean event name, e.g. 유상증자, 소송, 회사합병.")),
		mcp.WithString("date", mcp.Required(),
			mcp.Description("Year in 'yyyy' format.")),
	)
}

func (t eventTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	corpCode, err := req.RequireString("corp_code")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	event, err := req.RequireString("event")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	year, err := req.RequireString("date")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	rows, err := t.c.Event(ctx, corpCode, event, year)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if len(rows) == 0 {
		return tools.JSONResult(map[string]string{"message": noDataMessage}), nil
	}
	return tools.JSONResult(rows), nil
}
