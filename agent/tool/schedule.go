package tool

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

// EventPayload is a persisted event augmented with its derived calendar
// deep link for rendering.
type EventPayload struct {
	statex.CalendarEvent
	GCalURL string `json:"gCalUrl,omitempty"`
}

// ScheduleHandler manages the calendar collection.
type ScheduleHandler struct {
	store statex.Store
	now   func() time.Time
}

var _ contractx.Handler = (*ScheduleHandler)(nil)

func NewScheduleHandler(store statex.Store, now func() time.Time) *ScheduleHandler {
	return &ScheduleHandler{store: store, now: now}
}

func (h *ScheduleHandler) Execute(ctx context.Context, command string, params map[string]any) (contractx.AgentResult, error) {
	switch command {
	case "create_event":
		return h.createEvent(ctx, params)
	case "list_events":
		return h.listEvents(ctx)
	case "confirm_event":
		return h.setStatus(ctx, params, statex.EventConfirmed, "confirmed")
	case "cancel_event":
		return h.setStatus(ctx, params, statex.EventCancelled, "cancelled")
	case "delete_event":
		return h.deleteEvent(ctx, params)
	default:
		return unknownCommand("schedule"), nil
	}
}

func (h *ScheduleHandler) createEvent(ctx context.Context, params map[string]any) (contractx.AgentResult, error) {
	title := stringParam(params, "title")
	eventTime := stringParam(params, "time")
	if title == "" || eventTime == "" {
		return failure("Missing title or time for event."), nil
	}

	now := h.now()
	date := stringParam(params, "date")
	if date == "" {
		date = now.UTC().Format("2006-01-02")
	}

	event := statex.CalendarEvent{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Title:       title,
		Date:        date,
		Time:        eventTime,
		Description: stringParam(params, "description"),
		Status:      statex.EventPending,
	}
	if err := h.store.AddEvent(ctx, event); err != nil {
		return contractx.AgentResult{}, err
	}

	return contractx.AgentResult{
		Success: true,
		Message: fmt.Sprintf("I've prepared an event for %q. Please confirm details below.", event.Title),
		Data:    EventPayload{CalendarEvent: event, GCalURL: GoogleCalendarURL(event)},
		Kind:    contractx.PayloadEvent,
	}, nil
}

func (h *ScheduleHandler) listEvents(ctx context.Context) (contractx.AgentResult, error) {
	events, err := h.store.Events(ctx)
	if err != nil {
		return contractx.AgentResult{}, err
	}

	active := make([]statex.CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.Status != statex.EventCancelled {
			active = append(active, e)
		}
	}
	// Most recent 3 only; creation order is append order.
	if len(active) > 3 {
		active = active[len(active)-3:]
	}

	payload := make([]EventPayload, 0, len(active))
	for _, e := range active {
		payload = append(payload, EventPayload{CalendarEvent: e, GCalURL: GoogleCalendarURL(e)})
	}

	message := "Your schedule is clear."
	if len(active) > 0 {
		message = fmt.Sprintf("You have %d upcoming events.", len(active))
	}

	return contractx.AgentResult{
		Success: true,
		Message: message,
		Data:    payload,
		Kind:    contractx.PayloadEvent,
	}, nil
}

func (h *ScheduleHandler) setStatus(ctx context.Context, params map[string]any, status statex.EventStatus, verb string) (contractx.AgentResult, error) {
	id := stringParam(params, "id")
	if id == "" {
		return failure("Missing event id."), nil
	}

	event, err := h.store.UpdateEventStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, statex.ErrNotFound) {
			return failure("I couldn't find that event in your schedule."), nil
		}
		return contractx.AgentResult{}, err
	}

	return contractx.AgentResult{
		Success: true,
		Message: fmt.Sprintf("Event %q %s.", event.Title, verb),
		Data:    EventPayload{CalendarEvent: *event, GCalURL: GoogleCalendarURL(*event)},
		Kind:    contractx.PayloadEvent,
	}, nil
}

func (h *ScheduleHandler) deleteEvent(ctx context.Context, params map[string]any) (contractx.AgentResult, error) {
	id := stringParam(params, "id")
	if id == "" {
		return failure("Missing event id."), nil
	}

	if err := h.store.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, statex.ErrNotFound) {
			return failure("I couldn't find that event in your schedule."), nil
		}
		return contractx.AgentResult{}, err
	}

	return contractx.AgentResult{
		Success: true,
		Message: "Event removed from your schedule.",
	}, nil
}
