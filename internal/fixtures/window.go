package fixtures

import (
	"fmt"
	"strings"
	"time"
)

// IST is the fixed offset all date arithmetic is pinned to, so the window
// is the same regardless of where the server runs.
var IST = time.FixedZone("IST", 5*3600+30*60)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate reads a record's date field. YYYY-MM-DD is the extraction
// contract; a few looser layouts are tolerated.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, IST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// Window returns today's midnight and the upcoming Sunday's last instant,
// both in IST. When today is Sunday the window covers today alone.
func Window(now time.Time) (start, end time.Time) {
	ist := now.In(IST)
	start = time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
	days := (7 - int(start.Weekday())) % 7
	sunday := start.AddDate(0, 0, days)
	end = time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, int(999*time.Millisecond), IST)
	return start, end
}

// FilterUpcoming keeps records dated inside [today, upcoming Sunday]
// inclusive. Records with unparseable dates are dropped, not fatal.
// report, when non-nil, receives one line per decision in input order.
func FilterUpcoming(raw []RawMatch, now time.Time, report func(string)) []RawMatch {
	say := func(format string, args ...any) {
		if report != nil {
			report(fmt.Sprintf(format, args...))
		}
	}
	start, end := Window(now)
	out := make([]RawMatch, 0, len(raw))
	for _, r := range raw {
		d, err := ParseDate(r.Date)
		if err != nil {
			say("> Excluding: invalid date (%s)", r.Date)
			continue
		}
		if d.Before(start) || d.After(end) {
			say("> Excluding: %s (outside range)", r.Date)
			continue
		}
		say("> Keeping: %s vs %s", r.Date, r.Opponent)
		out = append(out, r)
	}
	return out
}
