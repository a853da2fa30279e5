package tool

import (
	"net/url"
	"strings"
	"time"

	statex "github.com/surrogate-labs/surrogate-agent/agent/state"
)

const gcalTimeLayout = "20060102T150405Z"

// GoogleCalendarURL derives a calendar-invite deep link from an event.
// Start is the event's date+time read as UTC, duration is fixed to one
// hour, and the timestamps use ISO-8601 basic format. Returns "" when the
// date/time fields do not parse.
func GoogleCalendarURL(event statex.CalendarEvent) string {
	start, err := time.Parse("2006-01-02 15:04", event.Date+" "+event.Time)
	if err != nil {
		return ""
	}
	end := start.Add(time.Hour)

	var b strings.Builder
	b.WriteString("https://calendar.google.com/calendar/render?action=TEMPLATE")
	b.WriteString("&text=")
	b.WriteString(url.QueryEscape(event.Title))
	b.WriteString("&dates=")
	b.WriteString(start.Format(gcalTimeLayout))
	b.WriteString("/")
	b.WriteString(end.Format(gcalTimeLayout))
	b.WriteString("&details=")
	b.WriteString(url.QueryEscape(event.Description))
	return b.String()
}

// MailtoURL builds a platform mail link. Newlines in the body become CRLF
// before percent-encoding; many mail clients mis-parse bare LF in mailto
// bodies.
func MailtoURL(to, subject, body string) string {
	crlfBody := strings.ReplaceAll(body, "\r\n", "\n")
	crlfBody = strings.ReplaceAll(crlfBody, "\n", "\r\n")
	return "mailto:" + to +
		"?subject=" + mailtoEscape(subject) +
		"&body=" + mailtoEscape(crlfBody)
}

// mailtoEscape percent-encodes a mailto hfield value. QueryEscape's
// form-style "+" for spaces reads as a literal plus in mailto links
// (RFC 6068 hfields), so spaces must be %20.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// GmailComposeURL builds the webmail compose-window variant of the same
// draft.
func GmailComposeURL(to, subject, body string) string {
	return "https://mail.google.com/mail/?view=cm&fs=1" +
		"&to=" + url.QueryEscape(to) +
		"&su=" + url.QueryEscape(subject) +
		"&body=" + url.QueryEscape(body)
}
