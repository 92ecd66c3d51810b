package analytics

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"

	"github.com/stockbot/kmcp/internal/tools"
)

// Tools returns the six analysis tools over ds.
func Tools(ds *Dataset) []tools.Tool {
	return []tools.Tool{
		loadTool{ds},
		basicCheckTool{ds},
		columnCheckTool{ds},
		preprocessTool{ds},
		filterTool{ds},
		groupTool{ds},
	}
}

type loadTool struct{ ds *Dataset }

func (loadTool) Definition() mcp.Tool {
	return mcp.NewTool("load_df",
		mcp.WithDescription("Load the cached dataset."),
	)
}

func (t loadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := t.ds.Rows()
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(rows), nil
}

type basicCheckTool struct{ ds *Dataset }

func (basicCheckTool) Definition() mcp.Tool {
	return mcp.NewTool("basic_data_check",
		mcp.WithDescription("Run a basic data check operation on the cached dataset. Supported operations: shape, dtypes, missing, columns, describe"),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("The kind of basic data check to perform (shape, dtypes, missing, columns, describe).")),
	)
}

func (t basicCheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op, err := req.RequireString("operation")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	var result any
	switch op {
	case "shape":
		rows, cols, serr := t.ds.Shape()
		if serr != nil {
			return tools.ErrorResult(serr), nil
		}
		result = map[string]int{"rows": rows, "columns": cols}
	case "dtypes":
		result = t.ds.Dtypes()
	case "missing":
		result, err = t.ds.Missing()
	case "columns":
		result = t.ds.Columns()
	case "describe":
		result, err = t.ds.Describe()
	default:
		return tools.ErrorResult(errUnsupported(op)), nil
	}
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

type columnCheckTool struct{ ds *Dataset }

func (columnCheckTool) Definition() mcp.Tool {
	return mcp.NewTool("column_data_check",
		mcp.WithDescription("Run a column-specific data check operation on the cached dataset. Supported operations: unique, value_counts"),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("The kind of column data check to perform (unique, value_counts).")),
		mcp.WithString("column", mcp.Required(),
			mcp.Description("The name of the column to operate on.")),
	)
}

func (t columnCheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op, err := req.RequireString("operation")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	col, err := req.RequireString("column")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	var result any
	switch op {
	case "unique":
		result, err = t.ds.Unique(col)
	case "value_counts":
		result, err = t.ds.ValueCounts(col)
	default:
		return tools.ErrorResult(errUnsupported(op)), nil
	}
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

type preprocessTool struct{ ds *Dataset }

func (preprocessTool) Definition() mcp.Tool {
	return mcp.NewTool("data_preprocess",
		mcp.WithDescription("Run a basic data preprocessing operation on the cached dataset and update the cache. Supported operations: dropna, drop_duplicates"),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("The preprocessing operation to perform (dropna, drop_duplicates).")),
	)
}

func (t preprocessTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op, err := req.RequireString("operation")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	var rows []map[string]any
	switch op {
	case "dropna":
		rows, err = t.ds.DropNA()
	case "drop_duplicates":
		rows, err = t.ds.DropDuplicates()
	default:
		return tools.ErrorResult(errUnsupported(op)), nil
	}
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(rows), nil
}

type filterTool struct{ ds *Dataset }

func (filterTool) Definition() mcp.Tool {
	return mcp.NewTool("col_data_analysis",
		mcp.WithDescription("Column-based data analysis. Supported operations: filter_gt (greater than), filter_eq (equal to), filter_lt (less than)"),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("The filtering operation to perform (filter_gt, filter_eq, filter_lt).")),
		mcp.WithString("column", mcp.Required(),
			mcp.Description("The name of the column to filter.")),
		mcp.WithNumber("condition_value", mcp.Required(),
			mcp.Description("The value to compare against.")),
	)
}

func (t filterTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op, err := req.RequireString("operation")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	col, err := req.RequireString("column")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	value, err := req.RequireFloat("condition_value")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	rows, err := t.ds.Filter(op, col, value)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(rows), nil
}

type groupTool struct{ ds *Dataset }

func (groupTool) Definition() mcp.Tool {
	return mcp.NewTool("group_data_analysis",
		mcp.WithDescription("Group-based data analysis. Supported operations: mean, max, sum, count"),
		mcp.WithString("operation", mcp.Required(),
			mcp.Description("The aggregation operation to perform (mean, max, sum, count).")),
		mcp.WithString("group_column", mcp.Required(),
			mcp.Description("The name of the column to group by.")),
		mcp.WithString("target_column", mcp.Required(),
			mcp.Description("The name of the column to aggregate.")),
	)
}

func (t groupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	op, err := req.RequireString("operation")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	group, err := req.RequireString("group_column")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	target, err := req.RequireString("target_column")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	result, err := t.ds.GroupAgg(op, group, target)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	return tools.JSONResult(result), nil
}

func errUnsupported(op string) error {
	return errors.Errorf("unsupported operation: %s", op)
}
