package model

import "time"

// Display layouts for show start times.
const (
	LayoutMedium = "Mon 01, 02, 2006 3:04PM"
	LayoutFull   = "Monday January, 2, 2006 at 3:04PM"
)

// FormatDateTime renders t in loc using the "medium" (default) or "full"
// layout.  A nil loc means UTC.
func FormatDateTime(t time.Time, format string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	layout := LayoutMedium
	if format == "full" {
		layout = LayoutFull
	}
	return t.In(loc).Format(layout)
}
