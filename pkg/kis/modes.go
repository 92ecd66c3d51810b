package kis

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects between the two parallel KIS deployments. It is fixed for the
// process lifetime; nothing in this package mutates it after construction.
type Mode string

const (
	// ModeLive is the real-money deployment.
	ModeLive Mode = "REAL"
	// ModePaper is the simulated (virtual) deployment.
	ModePaper Mode = "VIRTUAL"
)

const (
	liveBaseURL  = "https://openapi.koreainvestment.com:9443"
	paperBaseURL = "https://openapivts.koreainvestment.com:29443"
)

// ParseMode maps the KIS_ACCOUNT_TYPE value to a Mode. "REAL" (any case) or
// an empty value selects live; anything else selects paper.
func ParseMode(s string) Mode {
	if s == "" || strings.EqualFold(s, string(ModeLive)) {
		return ModeLive
	}
	return ModePaper
}

// BaseURL returns the deployment's gateway base URL.
func (m Mode) BaseURL() string {
	if m == ModePaper {
		return paperBaseURL
	}
	return liveBaseURL
}

// Op names a logical gateway operation.
type Op string

const (
	OpPrice      Op = "price"
	OpBalance    Op = "balance"
	OpBuy        Op = "buy"
	OpSell       Op = "sell"
	OpOrderList  Op = "order_list"
	OpAskPrice   Op = "stock_ask"
	OpDailyPrice Op = "stock_info"
)

// Transaction code tables, one per deployment. The quote lookups share codes
// across modes; account and order operations do not. Static data, never
// mutated at runtime.
var (
	liveTRCodes = map[Op]string{
		OpPrice:      "FHKST01010100",
		OpBalance:    "TTTC8434R",
		OpBuy:        "TTTC0802U",
		OpSell:       "TTTC0801U",
		OpOrderList:  "TTTC8001R",
		OpAskPrice:   "FHKST01010200",
		OpDailyPrice: "FHKST01010400",
	}
	paperTRCodes = map[Op]string{
		OpPrice:      "FHKST01010100",
		OpBalance:    "VTTC8434R",
		OpBuy:        "VTTC0802U",
		OpSell:       "VTTC0801U",
		OpOrderList:  "VTTC8001R",
		OpAskPrice:   "FHKST01010200",
		OpDailyPrice: "FHKST01010400",
	}
)

// TRCode resolves the transaction code for op under this deployment. An
// unknown op fails loudly rather than defaulting.
func (m Mode) TRCode(op Op) (string, error) {
	table := liveTRCodes
	if m == ModePaper {
		table = paperTRCodes
	}
	code, ok := table[op]
	if !ok {
		return "", errors.Wrapf(ErrUnknownOp, "%q has no transaction code for mode %s", op, m)
	}
	return code, nil
}
