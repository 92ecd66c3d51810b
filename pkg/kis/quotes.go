package kis

import "context"

const (
	pricePath    = "/uapi/domestic-stock/v1/quotations/inquire-price"
	askPricePath = "/uapi/domestic-stock/v1/quotations/inquire-asking-price-exp-ccn"
	dailyPath    = "/uapi/domestic-stock/v1/quotations/inquire-daily-price"
)

// CurrentPrice fetches the current quote for symbol, projected to the stable
// 18-field subset. A well-formed response with no data yields a message
// result, not an error.
func (c *Client) CurrentPrice(ctx context.Context, symbol string) (map[string]any, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	var out struct {
		Output map[string]any `json:"output"`
	}
	err := c.get(ctx, pricePath, OpPrice, map[string]string{
		"fid_cond_mrkt_div_code": "J",
		"fid_input_iscd":         symbol,
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Output) == 0 {
		return map[string]any{"message": "No data found for the given symbol."}, nil
	}
	return project(out.Output, currentPriceKeys), nil
}

// AskPrice fetches the top-of-book ask/bid and reference OHLC fields for
// symbol.
func (c *Client) AskPrice(ctx context.Context, symbol string) (map[string]any, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}

	var out struct {
		Output1 map[string]any `json:"output1"`
		Output2 map[string]any `json:"output2"`
	}
	err := c.get(ctx, askPricePath, OpAskPrice, map[string]string{
		"FID_COND_MRKT_DIV_CODE": "J",
		"FID_INPUT_ISCD":         symbol,
	}, &out)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"output1": project(out.Output1, askTopOfBookKeys),
		"output2": project(out.Output2, askReferenceKeys),
	}, nil
}

// DailyPrices fetches the daily OHLC series for symbol over the inclusive
// date range, ordered as the gateway returns it.
func (c *Client) DailyPrices(ctx context.Context, symbol, startDate, endDate string, adjusted bool) ([]map[string]any, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}
	if err := validateDate("start_date", startDate); err != nil {
		return nil, err
	}
	if err := validateDate("end_date", endDate); err != nil {
		return nil, err
	}

	adj := "0"
	if adjusted {
		adj = "1"
	}

	var out struct {
		Output []map[string]any `json:"output"`
	}
	err := c.get(ctx, dailyPath, OpDailyPrice, map[string]string{
		"fid_cond_mrkt_div_code": "J",
		"fid_input_iscd":         symbol,
		"fid_org_adj_prc":        adj,
		"fid_period_div_code":    "D",
		"fid_begin_date":         startDate,
		"fid_end_date":           endDate,
	}, &out)
	if err != nil {
		return nil, err
	}
	return projectRows(out.Output, dailyPriceKeys), nil
}
