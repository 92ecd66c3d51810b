package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	"google.golang.org/api/gmail/v1"

	"github.com/stockbot/kmcp/internal/tools"
)

// encodeMessage builds a base64url MIME message the Gmail send endpoint
// accepts.
func encodeMessage(to, subject, body string) string {
	msg := strings.Join([]string{
		"To: " + to,
		"From: me",
		"Subject: " + subject,
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")
	return base64.URLEncoding.EncodeToString([]byte(msg))
}

// buildSearchQuery assembles a Gmail search expression. Date bounds are
// interpreted in US/Pacific, the timezone Gmail's timestamp filters assume.
func buildSearchQuery(subject, after, before string) (string, error) {
	loc, err := time.LoadLocation("US/Pacific")
	if err != nil {
		loc = time.UTC
	}

	parts := []string{}
	if subject != "" {
		parts = append(parts, "subject:"+subject)
	}
	for _, bound := range []struct {
		name  string
		value string
	}{{"after", after}, {"before", before}} {
		if bound.value == "" {
			continue
		}
		t, err := time.ParseInLocation("2006-01-02", bound.value, loc)
		if err != nil {
			return "", errors.Errorf("%s must be a YYYY-MM-DD date, got %q", bound.name, bound.value)
		}
		parts = append(parts, fmt.Sprintf("%s:%d", bound.name, t.Unix()))
	}
	return strings.Join(parts, " "), nil
}

func headerValue(msg *gmail.Message, name string) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

type sendMailTool struct{ svc *Service }

func (sendMailTool) Definition() mcp.Tool {
	return mcp.NewTool("send_gmail_api",
		mcp.WithDescription("Send an email via Gmail API (not SMTP)."),
		mcp.WithString("to_email", mcp.Required(), mcp.Description("Recipient email address")),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Email subject")),
		mcp.WithString("body", mcp.Required(), mcp.Description("Plain text email body")),
	)
}

func (t sendMailTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	to, err := req.RequireString("to_email")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	subject, err := req.RequireString("subject")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	body, err := req.RequireString("body")
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	gm, err := t.svc.gmail(ctx)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	sent, err := gm.Users.Messages.Send("me", &gmail.Message{Raw: encodeMessage(to, subject, body)}).
		Context(ctx).Do()
	if err != nil {
		return tools.ErrorResult(errors.Wrap(err, "send email")), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Email sent successfully to %s. Message Id: %s", to, sent.Id)), nil
}

type searchMailTool struct{ svc *Service }

func (searchMailTool) Definition() mcp.Tool {
	return mcp.NewTool("search_gmail_api",
		mcp.WithDescription("Search emails in Gmail via Gmail API using subject, date range, and mailbox (INBOX or SENT)."),
		mcp.WithString("subject", mcp.Required(), mcp.Description("Subject keyword to search for")),
		mcp.WithString("after", mcp.Description("Start date (YYYY-MM-DD)")),
		mcp.WithString("before", mcp.Description("End date (YYYY-MM-DD)")),
		mcp.WithString("inbox_or_sent", mcp.Description("Mailbox to search: 'INBOX' (received) or 'SENT' (sent)")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of emails to retrieve (default 5)")),
	)
}

func (t searchMailTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject, err := req.RequireString("subject")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	query, err := buildSearchQuery(subject, req.GetString("after", ""), req.GetString("before", ""))
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	label := "INBOX"
	if !strings.EqualFold(req.GetString("inbox_or_sent", "INBOX"), "INBOX") {
		label = "SENT"
	}
	maxResults := req.GetInt("max_results", 5)

	gm, err := t.svc.gmail(ctx)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	list, err := gm.Users.Messages.List("me").
		Q(query).
		LabelIds(label).
		MaxResults(int64(maxResults)).
		Context(ctx).Do()
	if err != nil {
		return tools.ErrorResult(errors.Wrap(err, "search email")), nil
	}

	details := make([]map[string]any, 0, len(list.Messages))
	for _, m := range list.Messages {
		msg, err := gm.Users.Messages.Get("me", m.Id).Context(ctx).Do()
		if err != nil {
			return tools.ErrorResult(errors.Wrapf(err, "fetch message %s", m.Id)), nil
		}
		details = append(details, map[string]any{
			"id":      msg.Id,
			"snippet": msg.Snippet,
			"from":    headerValue(msg, "From"),
			"subject": headerValue(msg, "Subject"),
			"date":    headerValue(msg, "Date"),
		})
	}
	return tools.JSONResult(details), nil
}

// Tools returns the calendar and mail tools backed by svc.
func Tools(svc *Service) []tools.Tool {
	return []tools.Tool{
		createEventTool{svc},
		createMeetEventTool{svc},
		deleteEventTool{svc},
		listEventsTool{svc},
		sendMailTool{svc},
		searchMailTool{svc},
	}
}
