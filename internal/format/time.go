package format

import (
	"fmt"
	"time"
)

// RelativeTime formats t relative to the current time.
func RelativeTime(t time.Time) string {
	return RelativeTimeFrom(t, time.Now())
}

// RelativeTimeFrom formats t relative to now. Times under ten seconds old
// read "just now", times within a day use compact s/m/h units, times
// within a week use days (one day reads "yesterday"), and older times
// show the date.
func RelativeTimeFrom(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 10*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}

	days := int(d.Hours() / 24)
	switch {
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}
