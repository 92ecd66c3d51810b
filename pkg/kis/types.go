package kis

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Side is the order direction.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide normalizes a user-supplied side string.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case string(SideBuy):
		return SideBuy, nil
	case string(SideSell):
		return SideSell, nil
	default:
		return "", errors.Wrapf(ErrInvalidOrder, "order_type must be either 'buy' or 'sell', got %q", s)
	}
}

// OrderRequest describes a cash order. Transient: built per call, never
// persisted.
type OrderRequest struct {
	Symbol   string
	Quantity int
	Price    int // 0 means market order
	Side     Side
}

// Validate checks the request locally. Failures here never reach the
// network.
func (r OrderRequest) Validate() error {
	if r.Side != SideBuy && r.Side != SideSell {
		return errors.Wrapf(ErrInvalidOrder, "order_type must be either 'buy' or 'sell', got %q", r.Side)
	}
	if err := validateSymbol(r.Symbol); err != nil {
		return errors.Wrapf(ErrInvalidOrder, "%v", err)
	}
	if r.Quantity <= 0 {
		return errors.Wrapf(ErrInvalidOrder, "quantity must be positive, got %d", r.Quantity)
	}
	if r.Price < 0 {
		return errors.Wrapf(ErrInvalidOrder, "price must be non-negative, got %d", r.Price)
	}
	return nil
}

var (
	symbolPattern = regexp.MustCompile(`^\d{6}$`)
	datePattern   = regexp.MustCompile(`^\d{8}$`)
)

func validateSymbol(symbol string) error {
	if !symbolPattern.MatchString(symbol) {
		return errors.Wrapf(ErrBadInput, "symbol must be a 6-digit code, got %q", symbol)
	}
	return nil
}

func validateDate(name, date string) error {
	if !datePattern.MatchString(date) {
		return errors.Wrapf(ErrBadInput, "%s must be a YYYYMMDD date, got %q", name, date)
	}
	return nil
}

// Field subsets projected out of raw gateway responses. Projection selects
// fields only; it never fabricates values beyond null for a missing key.
var (
	currentPriceKeys = []string{
		"stck_shrn_iscd", "rprs_mrkt_kor_name", "bstp_kor_isnm", "stck_prpr",
		"prdy_vrss", "prdy_ctrt", "stck_oprc", "stck_hgpr", "stck_lwpr",
		"acml_vol", "acml_tr_pbmn", "per", "pbr", "eps", "bps",
		"hts_frgn_ehrt", "frgn_ntby_qty", "pgtr_ntby_qty",
	}

	balanceHoldingKeys = []string{
		"pdno", "prdt_name", "hldg_qty", "ord_psbl_qty", "pchs_avg_pric",
		"prpr", "evlu_amt", "evlu_pfls_amt", "evlu_pfls_rt",
	}
	balanceSummaryKeys = []string{
		"dnca_tot_amt", "scts_evlu_amt", "tot_evlu_amt", "nass_amt",
		"evlu_pfls_smtl_amt", "asst_icdc_amt", "asst_icdc_erng_rt",
	}

	orderHistoryKeys = []string{
		"ord_dt", "odno", "ord_dvsn_name", "sll_buy_dvsn_cd_name",
		"pdno", "prdt_name", "ord_qty", "ord_unpr",
		"tot_ccld_qty", "avg_prvs", "tot_ccld_amt",
		"cncl_yn", "rmn_qty", "rjct_qty",
	}

	askTopOfBookKeys = []string{
		"askp1", "askp_rsqn1", "bidp1", "bidp_rsqn1",
		"total_askp_rsqn", "total_bidp_rsqn",
	}
	askReferenceKeys = []string{
		"stck_prpr", "stck_oprc", "stck_hgpr", "stck_lwpr",
		"stck_sdpr", "stck_shrn_iscd",
	}

	dailyPriceKeys = []string{
		"stck_bsop_date", "stck_oprc", "stck_hgpr", "stck_lwpr", "stck_clpr",
	}
)

// project selects keys from src. A key missing upstream is carried as nil,
// matching the gateway's own null semantics.
func project(src map[string]any, keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[k] = src[k]
	}
	return out
}

// projectPresent selects keys from src, keeping only keys the gateway
// actually returned.
func projectPresent(src map[string]any, keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := src[k]; ok {
			out[k] = v
		}
	}
	return out
}

func projectRows(rows []map[string]any, keys []string) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, project(row, keys))
	}
	return out
}
