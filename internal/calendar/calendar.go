// Package calendar formats deep links into an external calendar's
// event-creation page.
package calendar

import (
	"net/url"
	"time"
)

const (
	baseURL       = "https://calendar.google.com/calendar/render"
	stampLayout   = "20060102T150405Z"
	eventDuration = time.Hour
)

// EventURL links to a one-hour event titled text starting at at.
func EventURL(text string, at time.Time) string {
	start := at.UTC()
	end := start.Add(eventDuration)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", text)
	q.Set("dates", start.Format(stampLayout)+"/"+end.Format(stampLayout))
	return baseURL + "?" + q.Encode()
}
