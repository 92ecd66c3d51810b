package kis

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/pkg/errors"
)

func TestCurrentPriceProjection(t *testing.T) {
	g := newFakeGateway(t)
	g.handle(pricePath, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fid_input_iscd"); got != "005930" {
			t.Errorf("fid_input_iscd = %q", got)
		}
		writeJSON(w, map[string]any{
			"rt_cd": "0",
			"output": map[string]any{
				"stck_shrn_iscd":     "005930",
				"rprs_mrkt_kor_name": "KOSPI200",
				"bstp_kor_isnm":      "전기.전자",
				"stck_prpr":          "71200",
				"prdy_vrss":          "-800",
				"prdy_ctrt":          "-1.11",
				"stck_oprc":          "72000",
				"stck_hgpr":          "72100",
				"stck_lwpr":          "71000",
				"acml_vol":           "9433021",
				"acml_tr_pbmn":       "672110402100",
				"per":                "13.22",
				"pbr":                "1.31",
				"eps":                "5385",
				"bps":                "54365",
				"hts_frgn_ehrt":      "54.13",
				"frgn_ntby_qty":      "-120034",
				"pgtr_ntby_qty":      "35120",
				// Fields outside the stable subset must be dropped.
				"mrkt_warn_cls_code": "00",
				"invt_caful_yn":      "N",
			},
		})
	})

	got, err := g.client(t, ModeLive).CurrentPrice(context.Background(), "005930")
	if err != nil {
		t.Fatalf("CurrentPrice: %v", err)
	}
	if len(got) != len(currentPriceKeys) {
		keys := make([]string, 0, len(got))
		for k := range got {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t.Fatalf("got %d fields %v, want %d", len(got), keys, len(currentPriceKeys))
	}
	if got["stck_prpr"] != "71200" {
		t.Errorf("stck_prpr = %v", got["stck_prpr"])
	}
	if _, ok := got["mrkt_warn_cls_code"]; ok {
		t.Error("projection leaked a field outside the stable subset")
	}
}

func TestCurrentPriceNoData(t *testing.T) {
	g := newFakeGateway(t)
	g.handle(pricePath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"rt_cd": "0", "output": map[string]any{}})
	})

	got, err := g.client(t, ModeLive).CurrentPrice(context.Background(), "000001")
	if err != nil {
		t.Fatalf("CurrentPrice: %v", err)
	}
	if got["message"] != "No data found for the given symbol." {
		t.Fatalf("got %v", got)
	}
}

func TestCurrentPriceRejectsBadSymbol(t *testing.T) {
	g := newFakeGateway(t)
	for _, sym := range []string{"", "SAMSUNG", "12345", "1234567"} {
		if _, err := g.client(t, ModeLive).CurrentPrice(context.Background(), sym); !errors.Is(err, ErrBadInput) {
			t.Errorf("symbol %q: err = %v, want ErrBadInput", sym, err)
		}
	}
}

func TestAskPriceSplitsBookAndReference(t *testing.T) {
	g := newFakeGateway(t)
	g.handle(askPricePath, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("FID_INPUT_ISCD"); got != "005930" {
			t.Errorf("FID_INPUT_ISCD = %q", got)
		}
		writeJSON(w, map[string]any{
			"output1": map[string]any{
				"askp1": "71300", "askp_rsqn1": "1200",
				"bidp1": "71200", "bidp_rsqn1": "900",
				"total_askp_rsqn": "54000", "total_bidp_rsqn": "61000",
				"askp2": "71400",
			},
			"output2": map[string]any{
				"stck_prpr": "71200", "stck_oprc": "72000",
				"stck_hgpr": "72100", "stck_lwpr": "71000",
				"stck_sdpr": "72000", "stck_shrn_iscd": "005930",
				"antc_cnpr": "71250",
			},
		})
	})

	got, err := g.client(t, ModeLive).AskPrice(context.Background(), "005930")
	if err != nil {
		t.Fatalf("AskPrice: %v", err)
	}
	book, ok := got["output1"].(map[string]any)
	if !ok {
		t.Fatalf("output1 type %T", got["output1"])
	}
	if book["askp1"] != "71300" || len(book) != len(askTopOfBookKeys) {
		t.Fatalf("output1 = %v", book)
	}
	ref, ok := got["output2"].(map[string]any)
	if !ok {
		t.Fatalf("output2 type %T", got["output2"])
	}
	if ref["stck_sdpr"] != "72000" || len(ref) != len(askReferenceKeys) {
		t.Fatalf("output2 = %v", ref)
	}
}

func TestDailyPrices(t *testing.T) {
	g := newFakeGateway(t)
	g.handle(dailyPath, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("fid_org_adj_prc") != "1" {
			t.Errorf("fid_org_adj_prc = %q, want 1", q.Get("fid_org_adj_prc"))
		}
		if q.Get("fid_begin_date") != "20250801" || q.Get("fid_end_date") != "20250805" {
			t.Errorf("date range = %q..%q", q.Get("fid_begin_date"), q.Get("fid_end_date"))
		}
		writeJSON(w, map[string]any{
			"output": []map[string]any{
				{"stck_bsop_date": "20250805", "stck_oprc": "71000", "stck_hgpr": "71900", "stck_lwpr": "70800", "stck_clpr": "71500", "acml_vol": "8000000"},
				{"stck_bsop_date": "20250804", "stck_oprc": "70500", "stck_hgpr": "71200", "stck_lwpr": "70400", "stck_clpr": "71000", "acml_vol": "7400000"},
			},
		})
	})

	rows, err := g.client(t, ModeLive).DailyPrices(context.Background(), "005930", "20250801", "20250805", true)
	if err != nil {
		t.Fatalf("DailyPrices: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0]["stck_bsop_date"] != "20250805" || rows[0]["stck_clpr"] != "71500" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if _, ok := rows[0]["acml_vol"]; ok {
		t.Error("daily rows must carry OHLC fields only")
	}
}

func TestDailyPricesRejectsBadDates(t *testing.T) {
	g := newFakeGateway(t)
	c := g.client(t, ModeLive)
	if _, err := c.DailyPrices(context.Background(), "005930", "2025-08-01", "20250805", false); !errors.Is(err, ErrBadInput) {
		t.Fatalf("err = %v, want ErrBadInput", err)
	}
	if _, err := c.DailyPrices(context.Background(), "005930", "20250801", "Aug 5", false); !errors.Is(err, ErrBadInput) {
		t.Fatalf("err = %v, want ErrBadInput", err)
	}
}
