package kis

import (
	"context"

	"github.com/pkg/errors"
)

// Hashkey sends body to the gateway's hashing endpoint and returns the
// integrity hash the gateway computed over it. The hash is specific to the
// exact payload: it must be recomputed for every distinct outgoing body and
// is never cached here.
func (c *Client) Hashkey(ctx context.Context, body any) (string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", err
	}

	var out struct {
		Hash string `json:"HASH"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"content-type":  contentType,
			"authorization": authType + " " + token,
			"appkey":        c.creds.AppKey,
			"appsecret":     c.creds.AppSecret,
		}).
		SetBody(body).
		SetResult(&out).
		Post(hashkeyPath)
	if err != nil {
		return "", errors.Wrapf(ErrSign, "%v", err)
	}
	if !resp.IsSuccess() {
		return "", errors.Wrapf(ErrSign, "status %d: %s", resp.StatusCode(), resp.String())
	}
	if out.Hash == "" {
		return "", errors.Wrap(ErrSign, "response missing HASH")
	}
	return out.Hash, nil
}
