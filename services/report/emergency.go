package report

import (
	"errors"
	"freeroom/lib/timezone"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/titanous/json5"
)

const noEventsHtml = "<p>今日暂无重要事件通知。</p>"

// Event is an entry of the calendar file, dates are YYYY/MM/DD.
type Event struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Content string `json:"content"`
}

// Quote is an entry of the quotes file.
type Quote struct {
	Content string `json:"content"`
}

// Active reports whether the event should be shown on day, events are shown
// from the day before they start up to and including the day they end.
func (e Event) Active(day time.Time) (bool, error) {
	start, err := timezone.ParseDisplayDate(e.Start)
	if err != nil {
		return false, err
	}
	end, err := timezone.ParseDisplayDate(e.End)
	if err != nil {
		return false, err
	}
	day = timezone.StartOfDay(day)
	return !day.Before(start.AddDate(0, 0, -1)) && !day.After(end), nil
}

func readList[T any](path, kind string) []T {
	if path == "" {
		return nil
	}
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn(kind+" file not found", "path", path)
		return nil
	}
	if err != nil {
		slog.Warn("failed to read "+kind+" file", "path", path, "err", err)
		return nil
	}
	var out []T
	err = json5.Unmarshal(contents, &out)
	if err != nil {
		slog.Warn("failed to parse "+kind+" file", "path", path, "err", err)
		return nil
	}
	return out
}

// LoadEvents reads the calendar file, a missing or broken file yields no
// events.
func LoadEvents(path string) []Event {
	return readList[Event](path, "events")
}

// LoadQuotes reads the quotes file, a missing or broken file yields no
// quotes.
func LoadQuotes(path string) []Quote {
	return readList[Quote](path, "quotes")
}

// EmergencyHtml returns the contents of the notice box for today: every
// active event, or a random quote when there is none.
func EmergencyHtml(today time.Time, events []Event, quotes []Quote, pick func(n int) int) string {
	var active strings.Builder
	for _, e := range events {
		if e.Start == "" || e.End == "" || e.Content == "" {
			slog.Warn("skipping incomplete event", "event", e)
			continue
		}
		ok, err := e.Active(today)
		if err != nil {
			slog.Warn("skipping event with invalid dates", "event", e, "err", err)
			continue
		}
		if ok {
			active.WriteString(e.Content)
		}
	}
	if active.Len() > 0 {
		return active.String()
	}
	if len(quotes) > 0 {
		return quotes[pick(len(quotes))].Content
	}
	return noEventsHtml
}
