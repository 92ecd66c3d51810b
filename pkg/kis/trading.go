package kis

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

const (
	balancePath   = "/uapi/domestic-stock/v1/trading/inquire-balance"
	orderCashPath = "/uapi/domestic-stock/v1/trading/order-cash"
	orderListPath = "/uapi/domestic-stock/v1/trading/inquire-daily-ccld"
)

// Balance fetches the account holdings and evaluation summary. An empty
// holdings list yields the no-data message even when the gateway still
// returns a summary record.
func (c *Client) Balance(ctx context.Context) (map[string]any, error) {
	var out struct {
		Output1 []map[string]any `json:"output1"`
		Output2 []map[string]any `json:"output2"`
	}
	err := c.get(ctx, balancePath, OpBalance, map[string]string{
		"CANO":                  c.creds.AccountNo,
		"ACNT_PRDT_CD":          accountProductCode,
		"AFHR_FLPR_YN":          "N",
		"INQR_DVSN":             "01",
		"UNPR_DVSN":             "01",
		"FUND_STTL_ICLD_YN":     "N",
		"FNCG_AMT_AUTO_RDPT_YN": "N",
		"PRCS_DVSN":             "00",
		"CTX_AREA_FK100":        "",
		"CTX_AREA_NK100":        "",
		"OFL_YN":                "",
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Output1) == 0 {
		return map[string]any{"message": "No balance data found."}, nil
	}
	return map[string]any{
		"holdings": projectRows(out.Output1, balanceHoldingKeys),
		"summary":  projectRows(out.Output2, balanceSummaryKeys),
	}, nil
}

// PlaceOrder submits a cash order. Price 0 places a market order. The body
// is signed with the hashkey endpoint before submission; a request that
// fails local validation never reaches the network.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (map[string]any, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// ORD_DVSN 01 is market, 00 is limit.
	ordDvsn := "00"
	if req.Price == 0 {
		ordDvsn = "01"
	}
	body := map[string]string{
		"CANO":         c.creds.AccountNo,
		"ACNT_PRDT_CD": accountProductCode,
		"PDNO":         req.Symbol,
		"ORD_DVSN":     ordDvsn,
		"ORD_QTY":      strconv.Itoa(req.Quantity),
		"ORD_UNPR":     strconv.Itoa(req.Price),
	}

	hash, err := c.Hashkey(ctx, body)
	if err != nil {
		return nil, err
	}

	op := OpBuy
	if req.Side == SideSell {
		op = OpSell
	}

	var out map[string]any
	if err := c.post(ctx, orderCashPath, op, hash, body, &out); err != nil {
		return nil, err
	}
	if _, ok := out["output"]; !ok {
		return map[string]any{"message": "Order failed or no response."}, nil
	}
	return out, nil
}

// OrderList fetches the daily order/execution history over the inclusive
// date range.
func (c *Client) OrderList(ctx context.Context, startDate, endDate string) (map[string]any, error) {
	if err := validateDate("start_date", startDate); err != nil {
		return nil, err
	}
	if err := validateDate("end_date", endDate); err != nil {
		return nil, err
	}
	if startDate > endDate {
		return nil, errors.Wrapf(ErrBadInput, "start_date %s is after end_date %s", startDate, endDate)
	}

	var out struct {
		Output1 []map[string]any `json:"output1"`
		Output2 map[string]any   `json:"output2"`
		RtCd    string           `json:"rt_cd"`
		MsgCd   string           `json:"msg_cd"`
		Msg1    string           `json:"msg1"`
	}
	err := c.get(ctx, orderListPath, OpOrderList, map[string]string{
		"CANO":            c.creds.AccountNo,
		"ACNT_PRDT_CD":    accountProductCode,
		"INQR_STRT_DT":    startDate,
		"INQR_END_DT":     endDate,
		"SLL_BUY_DVSN_CD": "00",
		"INQR_DVSN":       "00",
		"PDNO":            "",
		"CCLD_DVSN":       "00",
		"ORD_GNO_BRNO":    "",
		"ODNO":            "",
		"INQR_DVSN_3":     "00",
		"INQR_DVSN_1":     "",
		"CTX_AREA_FK100":  "",
		"CTX_AREA_NK100":  "",
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Output1) == 0 {
		return map[string]any{"message": "No order history found for the given period."}, nil
	}

	orders := make([]map[string]any, 0, len(out.Output1))
	for _, row := range out.Output1 {
		orders = append(orders, projectPresent(row, orderHistoryKeys))
	}
	return map[string]any{
		"orders":  orders,
		"summary": out.Output2,
		"rt_cd":   out.RtCd,
		"msg_cd":  out.MsgCd,
		"msg1":    out.Msg1,
	}, nil
}
