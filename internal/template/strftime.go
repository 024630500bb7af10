package template

import (
	"fmt"
	"strings"
	"time"
)

// Strftime formats t according to a strftime-style pattern. It returns
// false when the pattern contains an unsupported directive or a trailing
// bare '%'; callers treat that as "token not resolvable", never as an
// error.
func Strftime(pattern string, t time.Time) (string, bool) {
	var b strings.Builder
	b.Grow(len(pattern))

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(pattern) {
			return "", false
		}

		s, ok := directive(pattern[i], t)
		if !ok {
			return "", false
		}
		b.WriteString(s)
	}

	return b.String(), true
}

func directive(c byte, t time.Time) (string, bool) {
	switch c {
	case 'Y':
		return fmt.Sprintf("%04d", t.Year()), true
	case 'y':
		return fmt.Sprintf("%02d", t.Year()%100), true
	case 'm':
		return fmt.Sprintf("%02d", int(t.Month())), true
	case 'd':
		return fmt.Sprintf("%02d", t.Day()), true
	case 'e':
		return fmt.Sprintf("%2d", t.Day()), true
	case 'H':
		return fmt.Sprintf("%02d", t.Hour()), true
	case 'I':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		return fmt.Sprintf("%02d", h), true
	case 'M':
		return fmt.Sprintf("%02d", t.Minute()), true
	case 'S':
		return fmt.Sprintf("%02d", t.Second()), true
	case 'f':
		return fmt.Sprintf("%06d", t.Nanosecond()/1000), true
	case 'p':
		if t.Hour() < 12 {
			return "AM", true
		}
		return "PM", true
	case 'a':
		return t.Format("Mon"), true
	case 'A':
		return t.Format("Monday"), true
	case 'b':
		return t.Format("Jan"), true
	case 'B':
		return t.Format("January"), true
	case 'j':
		return fmt.Sprintf("%03d", t.YearDay()), true
	case 'w':
		return fmt.Sprintf("%d", int(t.Weekday())), true
	case 'U':
		return fmt.Sprintf("%02d", sundayWeek(t)), true
	case 'W':
		return fmt.Sprintf("%02d", mondayWeek(t)), true
	case 'F':
		return t.Format("2006-01-02"), true
	case 'T', 'X':
		return t.Format("15:04:05"), true
	case 'D', 'x':
		return t.Format("01/02/06"), true
	case 'R':
		return t.Format("15:04"), true
	case 'c':
		return t.Format("Mon Jan _2 15:04:05 2006"), true
	case 'n':
		return "\n", true
	case 't':
		return "\t", true
	case '%':
		return "%", true
	}
	return "", false
}

// sundayWeek is the week of the year with Sunday as the first weekday;
// days before the first Sunday fall in week 0.
func sundayWeek(t time.Time) int {
	return (t.YearDay() - 1 - int(t.Weekday()) + 7) / 7
}

// mondayWeek is the week of the year with Monday as the first weekday.
func mondayWeek(t time.Time) int {
	wday := (int(t.Weekday()) + 6) % 7
	return (t.YearDay() - 1 - wday + 7) / 7
}
