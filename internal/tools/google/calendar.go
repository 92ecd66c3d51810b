package google

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	"google.golang.org/api/calendar/v3"

	"github.com/stockbot/kmcp/internal/tools"
)

const eventTimeZone = "Asia/Seoul"

// parseEventTime accepts RFC 3339 or a plain "YYYY-MM-DD HH:MM:SS" local
// timestamp.
func parseEventTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	loc, err := time.LoadLocation(eventTimeZone)
	if err != nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, loc)
	if err != nil {
		return time.Time{}, errors.Errorf("cannot parse time %q; use RFC 3339 or 'YYYY-MM-DD HH:MM:SS'", s)
	}
	return t, nil
}

// stringList pulls an optional array-of-strings argument.
func stringList(req mcp.CallToolRequest, key string) []string {
	args := req.GetArguments()
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func buildEvent(summary string, start, end time.Time, attendees []string) *calendar.Event {
	ev := &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: eventTimeZone},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: eventTimeZone},
	}
	for _, email := range attendees {
		ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{Email: email})
	}
	return ev
}

func eventTimeOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("summary", mcp.Required(), mcp.Description("Event title")),
		mcp.WithString("start_time", mcp.Required(), mcp.Description("Event start time (RFC 3339 or 'YYYY-MM-DD HH:MM:SS')")),
		mcp.WithString("end_time", mcp.Required(), mcp.Description("Event end time (RFC 3339 or 'YYYY-MM-DD HH:MM:SS')")),
		mcp.WithArray("attendees", mcp.Description("List of attendee email addresses")),
	}
}

func eventArgs(req mcp.CallToolRequest) (summary string, start, end time.Time, attendees []string, err error) {
	summary, err = req.RequireString("summary")
	if err != nil {
		return
	}
	var startRaw, endRaw string
	startRaw, err = req.RequireString("start_time")
	if err != nil {
		return
	}
	endRaw, err = req.RequireString("end_time")
	if err != nil {
		return
	}
	start, err = parseEventTime(startRaw)
	if err != nil {
		return
	}
	end, err = parseEventTime(endRaw)
	if err != nil {
		return
	}
	attendees = stringList(req, "attendees")
	return
}

type createEventTool struct{ svc *Service }

func (createEventTool) Definition() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Create a Google Calendar event without a Google Meet link."),
	}, eventTimeOptions()...)
	return mcp.NewTool("create_calendar_event", opts...)
}

func (t createEventTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, start, end, attendees, err := eventArgs(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	cal, err := t.svc.calendar(ctx)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	event, err := cal.Events.Insert("primary", buildEvent(summary, start, end, attendees)).
		Context(ctx).Do()
	if err != nil {
		return tools.ErrorResult(errors.Wrap(err, "create event")), nil
	}
	return tools.JSONResult(map[string]any{
		"event_id":      event.Id,
		"calendar_link": event.HtmlLink,
		"summary":       event.Summary,
		"start":         event.Start,
		"end":           event.End,
	}), nil
}

type createMeetEventTool struct{ svc *Service }

func (createMeetEventTool) Definition() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Create a Google Calendar event with a Google Meet link."),
	}, eventTimeOptions()...)
	return mcp.NewTool("create_event_with_meet_link", opts...)
}

func (t createMeetEventTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, start, end, attendees, err := eventArgs(req)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	cal, err := t.svc.calendar(ctx)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	ev := buildEvent(summary, start, end, attendees)
	ev.ConferenceData = &calendar.ConferenceData{
		CreateRequest: &calendar.CreateConferenceRequest{
			RequestId:             fmt.Sprintf("meet-%d", time.Now().Unix()),
			ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
		},
	}
	event, err := cal.Events.Insert("primary", ev).
		ConferenceDataVersion(1).
		Context(ctx).Do()
	if err != nil {
		return tools.ErrorResult(errors.Wrap(err, "create event")), nil
	}
	return tools.JSONResult(map[string]any{
		"event_id":      event.Id,
		"meet_link":     event.HangoutLink,
		"calendar_link": event.HtmlLink,
		"summary":       event.Summary,
		"start":         event.Start,
		"end":           event.End,
	}), nil
}

type deleteEventTool struct{ svc *Service }

func (deleteEventTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_event",
		mcp.WithDescription("Delete an event from Google Calendar."),
		mcp.WithString("event_id", mcp.Required(), mcp.Description("The event_id of the event to delete")),
	)
}

func (t deleteEventTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireString("event_id")
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	cal, err := t.svc.calendar(ctx)
	if err != nil {
		return tools.ErrorResult(err), nil
	}
	if err := cal.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		return tools.ErrorResult(errors.Wrap(err, "delete event")), nil
	}
	return mcp.NewToolResultText("Event deleted: " + eventID), nil
}

type listEventsTool struct{ svc *Service }

func (listEventsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_events",
		mcp.WithDescription("List Google Calendar events within a specified time range."),
		mcp.WithString("start_time", mcp.Description("Start datetime for event search; defaults to now")),
		mcp.WithString("end_time", mcp.Description("End datetime for event search")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of events to retrieve (default 10)")),
	)
}

func (t listEventsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timeMin := time.Now().UTC()
	if raw := req.GetString("start_time", ""); raw != "" {
		parsed, err := parseEventTime(raw)
		if err != nil {
			return tools.ErrorResult(err), nil
		}
		timeMin = parsed
	}
	maxResults := req.GetInt("max_results", 10)

	cal, err := t.svc.calendar(ctx)
	if err != nil {
		return tools.ErrorResult(err), nil
	}

	call := cal.Events.List("primary").
		TimeMin(timeMin.Format(time.RFC3339)).
		MaxResults(int64(maxResults)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if raw := req.GetString("end_time", ""); raw != "" {
		timeMax, err := parseEventTime(raw)
		if err != nil {
			return tools.ErrorResult(err), nil
		}
		call = call.TimeMax(timeMax.Format(time.RFC3339))
	}

	events, err := call.Do()
	if err != nil {
		return tools.ErrorResult(errors.Wrap(err, "list events")), nil
	}

	out := make([]map[string]any, 0, len(events.Items))
	for _, event := range events.Items {
		out = append(out, map[string]any{
			"event_id":      event.Id,
			"summary":       event.Summary,
			"start":         event.Start,
			"end":           event.End,
			"calendar_link": event.HtmlLink,
			"meet_link":     event.HangoutLink,
		})
	}
	return tools.JSONResult(out), nil
}
