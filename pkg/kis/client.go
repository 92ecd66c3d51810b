package kis

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/stockbot/kmcp/pkg/persistence"
)

const (
	tokenPath   = "/oauth2/tokenP"
	hashkeyPath = "/uapi/hashkey"

	contentType = "application/json"
	authType    = "Bearer"

	// Every account uses the fixed product code.
	accountProductCode = "01"

	defaultTimeout = 10 * time.Second
)

// Credentials identifies the API application and the trading account.
type Credentials struct {
	AppKey    string
	AppSecret string
	AccountNo string
}

// Config configures a Client.
type Config struct {
	Mode        Mode
	Credentials Credentials
	// TokenFile is the single-slot token cache path. Defaults to token.json.
	TokenFile string
	// BaseURL overrides the mode's gateway URL; tests point it at a local
	// server.
	BaseURL string
	// Timeout bounds each gateway call. Defaults to 10s.
	Timeout time.Duration
}

// Client is the KIS trading gateway client. All operations resolve the
// deployment mode, obtain a valid token, and project the raw gateway
// response down to a stable field subset.
type Client struct {
	mode   Mode
	creds  Credentials
	http   *resty.Client
	tokens *TokenManager
}

// New validates credentials and builds a Client for the configured
// deployment.
func New(cfg Config) (*Client, error) {
	if cfg.Credentials.AppKey == "" || cfg.Credentials.AppSecret == "" {
		return nil, errors.New("kis: app key and secret are required")
	}
	if cfg.Credentials.AccountNo == "" {
		return nil, errors.New("kis: account number is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = cfg.Mode.BaseURL()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tokenFile := cfg.TokenFile
	if tokenFile == "" {
		tokenFile = "token.json"
	}

	c := &Client{
		mode:  cfg.Mode,
		creds: cfg.Credentials,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
	c.tokens = NewTokenManager(persistence.NewJSONFileStore(tokenFile), c.requestToken)
	return c, nil
}

// Mode returns the deployment the client was built for.
func (c *Client) Mode() Mode {
	return c.mode
}

// requestToken performs the credential-grant call. Called by the token
// manager only when the cached token is unusable.
func (c *Client) requestToken(ctx context.Context) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("content-type", contentType).
		SetBody(map[string]string{
			"grant_type": "client_credentials",
			"appkey":     c.creds.AppKey,
			"appsecret":  c.creds.AppSecret,
		}).
		SetResult(&out).
		Post(tokenPath)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", errors.Errorf("token endpoint status %d: %s", resp.StatusCode(), resp.String())
	}
	if out.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}
	return out.AccessToken, nil
}

func (c *Client) authHeaders(token, trID string) map[string]string {
	return map[string]string{
		"content-type":  contentType,
		"authorization": authType + " " + token,
		"appkey":        c.creds.AppKey,
		"appsecret":     c.creds.AppSecret,
		"tr_id":         trID,
	}
}

// get issues an authenticated quote/inquiry call and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, path string, op Op, params map[string]string, out any) error {
	trID, err := c.mode.TRCode(op)
	if err != nil {
		return err
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(c.authHeaders(token, trID)).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return errors.Wrapf(ErrUpstream, "GET %s: %v", path, err)
	}
	if !resp.IsSuccess() {
		return errors.Wrapf(ErrUpstream, "GET %s: status %d: %s", path, resp.StatusCode(), resp.String())
	}
	return nil
}

// post issues an authenticated mutating call. hashkey must already be
// computed for the exact body being sent.
func (c *Client) post(ctx context.Context, path string, op Op, hashkey string, body, out any) error {
	trID, err := c.mode.TRCode(op)
	if err != nil {
		return err
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	headers := c.authHeaders(token, trID)
	headers["hashkey"] = hashkey

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		SetResult(out).
		Post(path)
	if err != nil {
		return errors.Wrapf(ErrUpstream, "POST %s: %v", path, err)
	}
	if !resp.IsSuccess() {
		return errors.Wrapf(ErrUpstream, "POST %s: status %d: %s", path, resp.StatusCode(), resp.String())
	}
	return nil
}
