// Package dart exposes OpenDART corporate-disclosure lookups as tools.
package dart

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/stockbot/kmcp/pkg/cache"
)

const (
	defaultBaseURL = "https://opendart.fss.or.kr/api"

	// The corp-code table is a bulk download; refresh it daily at most.
	corpCodeTTL = 24 * time.Hour
)

// Client talks to the OpenDART REST API.
type Client struct {
	http      *resty.Client
	apiKey    string
	corpCodes *cache.InMemoryCache[string, map[string]string]
}

// Option overrides a Client default.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint; tests use it.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.http.SetBaseURL(url) }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:      resty.New().SetBaseURL(defaultBaseURL).SetTimeout(15 * time.Second),
		apiKey:    apiKey,
		corpCodes: cache.NewInMemoryCache[string, map[string]string](corpCodeTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the common OpenDART envelope. Status "000" is success;
// "013" is the documented empty-result status.
type apiResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	List    []map[string]any `json:"list"`
}

func (r apiResponse) empty() bool {
	return r.Status == "013" || len(r.List) == 0
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params map[string]string, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("crtfc_key", c.apiKey).
		SetQueryParams(params).
		SetResult(out)
	resp, err := req.Get("/" + endpoint + ".json")
	if err != nil {
		return errors.Wrapf(err, "dart %s", endpoint)
	}
	if !resp.IsSuccess() {
		return errors.Errorf("dart %s: status %d: %s", endpoint, resp.StatusCode(), resp.String())
	}
	return nil
}

// corpCodeXML mirrors the bulk corpCode.xml document.
type corpCodeXML struct {
	List []struct {
		CorpCode string `xml:"corp_code"`
		CorpName string `xml:"corp_name"`
	} `xml:"list"`
}

// corpCodeTable downloads and caches the full company-name to corp-code
// mapping. The download is a zip archive holding a single XML file.
func (c *Client) corpCodeTable(ctx context.Context) (map[string]string, error) {
	if table, ok := c.corpCodes.Get("table"); ok {
		return table, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("crtfc_key", c.apiKey).
		Get("/corpCode.xml")
	if err != nil {
		return nil, errors.Wrap(err, "download corp codes")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("corp code download: status %d", resp.StatusCode())
	}

	table, err := parseCorpCodeZip(resp.Body())
	if err != nil {
		return nil, err
	}
	c.corpCodes.Set("table", table, corpCodeTTL)
	return table, nil
}

func parseCorpCodeZip(raw []byte) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, errors.Wrap(err, "open corp code archive")
	}
	if len(zr.File) == 0 {
		return nil, errors.New("corp code archive is empty")
	}

	f, err := zr.File[0].Open()
	if err != nil {
		return nil, errors.Wrap(err, "open corp code entry")
	}
	defer f.Close()

	raw, err = io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "read corp code entry")
	}
	var doc corpCodeXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "parse corp code xml")
	}

	table := make(map[string]string, len(doc.List))
	for _, e := range doc.List {
		table[e.CorpName] = e.CorpCode
	}
	return table, nil
}

// FindCorpCode resolves a company name to its 8-digit corp code.
func (c *Client) FindCorpCode(ctx context.Context, corpName string) (string, error) {
	table, err := c.corpCodeTable(ctx)
	if err != nil {
		return "", err
	}
	code, ok := table[corpName]
	if !ok {
		return "", errors.Errorf("no corp code found for %q", corpName)
	}
	return code, nil
}

// Company fetches the general overview record for a corp code.
func (c *Client) Company(ctx context.Context, corpCode string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "company", map[string]string{"corp_code": corpCode}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FinancialStatement fetches the single-company major accounts and filters
// them to one statement type. Consolidated (CFS) figures are preferred;
// separate (OFS) figures are the fallback when no consolidated rows exist.
func (c *Client) FinancialStatement(ctx context.Context, corpCode, year, reportCode, sjDiv string) ([]map[string]any, error) {
	if sjDiv != "BS" && sjDiv != "IS" {
		return nil, errors.Errorf("sj_div must be 'BS' or 'IS', got %q", sjDiv)
	}

	var out apiResponse
	err := c.getJSON(ctx, "fnlttSinglAcnt", map[string]string{
		"corp_code":  corpCode,
		"bsns_year":  year,
		"reprt_code": reportCode,
	}, &out)
	if err != nil {
		return nil, err
	}

	rows := filterStatement(out.List, "CFS", sjDiv)
	if len(rows) == 0 {
		rows = filterStatement(out.List, "OFS", sjDiv)
	}
	return rows, nil
}

var statementFields = []string{"corp_code", "bsns_year", "reprt_code", "account_nm", "thstrm_amount"}

func filterStatement(list []map[string]any, fsDiv, sjDiv string) []map[string]any {
	out := []map[string]any{}
	for _, row := range list {
		if row["fs_div"] != fsDiv || row["sj_div"] != sjDiv {
			continue
		}
		slim := make(map[string]any, len(statementFields))
		for _, k := range statementFields {
			slim[k] = row[k]
		}
		out = append(out, slim)
	}
	return out
}

// Report fetches one business-report section for a year. reportCode is a
// Korean section name from the fixed table.
func (c *Client) Report(ctx context.Context, corpCode, reportCode, year string) ([]map[string]any, error) {
	endpoint, ok := reportEndpoints[reportCode]
	if !ok {
		return nil, errors.Errorf("report_code must be one of the supported section names, got %q", reportCode)
	}

	var out apiResponse
	err := c.getJSON(ctx, endpoint, map[string]string{
		"corp_code":  corpCode,
		"bsns_year":  year,
		"reprt_code": "11011",
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.empty() {
		return nil, nil
	}
	return out.List, nil
}

// Event fetches one major-event report type over a calendar year. event is a
// Korean event name from the fixed table.
func (c *Client) Event(ctx context.Context, corpCode, event, year string) ([]map[string]any, error) {
	endpoint, ok := eventEndpoints[event]
	if !ok {
		return nil, errors.Errorf("event must be one of the supported event names, got %q", event)
	}

	var out apiResponse
	err := c.getJSON(ctx, endpoint, map[string]string{
		"corp_code": corpCode,
		"bgn_de":    year + "0101",
		"end_de":    year + "1231",
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.empty() {
		return nil, nil
	}
	return out.List, nil
}
