package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestEventURL(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2025, 3, 9, 14, 30, 0, 0, loc)

	raw := EventURL("Buy milk & eggs", at)

	if !strings.HasPrefix(raw, "https://calendar.google.com/calendar/render?") {
		t.Fatalf("unexpected base: %s", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("action") != "TEMPLATE" {
		t.Fatalf("unexpected action %q", q.Get("action"))
	}
	if q.Get("text") != "Buy milk & eggs" {
		t.Fatalf("text not escaped correctly: %q", q.Get("text"))
	}
	if q.Get("dates") != "20250309T123000Z/20250309T133000Z" {
		t.Fatalf("unexpected dates %q", q.Get("dates"))
	}
}
