package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/campus-copilot/backend/internal/model/calendar"
)

// LookupSchedule builds the schedule lookup tool over the academic calendar.
// With an "event" argument it answers that single entry; without one it
// returns the full key-date summary in stable order.
func LookupSchedule(cal calendar.Calendar) Func {
	return func(_ context.Context, args map[string]string) (string, error) {
		event := strings.TrimSpace(args["event"])
		if event != "" {
			entry, ok := cal.Lookup(event)
			if !ok {
				return "", fmt.Errorf("unknown schedule event %q", event)
			}
			return fmt.Sprintf("%s: %s", entry.Event, entry.Date), nil
		}

		lines := make([]string, 0, len(cal))
		for _, entry := range cal.Entries() {
			lines = append(lines, fmt.Sprintf("%s: %s", entry.Event, entry.Date))
		}
		return strings.Join(lines, "\n"), nil
	}
}
