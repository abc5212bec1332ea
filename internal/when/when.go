// Package when normalizes the loosely formatted dates that feed items carry
// and renders them as relative or absolute labels.
package when

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	yearOnly  = regexp.MustCompile(`^\d{4}$`)
	yearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// Parse converts a raw date string into a timestamp. A bare year resolves to
// the last day of that year (UTC); "YYYY-MM" resolves to the 15th, a
// mid-month approximation for partial dates. Anything else goes through
// general date parsing. ok is false for empty or unparsable input.
func Parse(raw string) (ts time.Time, ok bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return time.Time{}, false
	}

	if yearOnly.MatchString(v) {
		y, _ := strconv.Atoi(v)
		return time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC), true
	}

	if yearMonth.MatchString(v) {
		parts := strings.SplitN(v, "-", 2)
		y, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		if m < 1 || m > 12 {
			return time.Time{}, false
		}
		return time.Date(y, time.Month(m), 15, 0, 0, 0, 0, time.UTC), true
	}

	t, err := dateparse.ParseIn(v, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Display policy: beyond these windows a relative label stops making sense
// (speculative future release dates would read "in 3 months"), so the card
// switches to an absolute date.
const (
	maxPastRelative   = 14 * 24 * time.Hour
	futureSlackWindow = 36 * time.Hour
)

// Label renders ts for the given language ("HE" or "EN") relative to now,
// falling back to an absolute date outside the hybrid policy windows. A zero
// ts is treated as now, matching the renderer's behavior for unknown dates.
func Label(ts time.Time, lang string, now time.Time) string {
	if ts.IsZero() {
		ts = now
	}

	diff := ts.Sub(now)
	if diff < -maxPastRelative || diff > futureSlackWindow {
		return Absolute(ts, lang)
	}
	return Relative(ts, lang, now)
}

// Absolute renders a fixed calendar date for the given language.
func Absolute(ts time.Time, lang string) string {
	if lang == "HE" {
		return ts.Format("02.01.2006")
	}
	return ts.Format("2 Jan 2006")
}

// Relative renders a signed human-relative label. Thresholds follow the
// renderer contract: under 45s a "just now" class, under 45min minutes,
// under 22h hours, otherwise days.
func Relative(ts time.Time, lang string, now time.Time) string {
	diff := ts.Sub(now)
	s := int(math.Round(diff.Seconds()))
	m := int(math.Round(float64(s) / 60))
	h := int(math.Round(float64(m) / 60))
	d := int(math.Round(float64(h) / 24))

	switch {
	case abs(s) < 45:
		return moment(lang, s >= 0)
	case abs(m) < 45:
		return unit(lang, m, "minute")
	case abs(h) < 22:
		return unit(lang, h, "hour")
	default:
		return unit(lang, d, "day")
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// moment is the magnitude-zero label, phrased with auto-sign so near-zero
// values read naturally in both directions.
func moment(lang string, future bool) string {
	if lang == "HE" {
		if future {
			return "בעוד רגע"
		}
		return "ממש עכשיו"
	}
	if future {
		return "in a moment"
	}
	return "just now"
}

var hebrewUnits = map[string][3]string{
	// singular, dual, plural
	"minute": {"דקה", "שתי דקות", "דקות"},
	"hour":   {"שעה", "שעתיים", "שעות"},
	"day":    {"יום", "יומיים", "ימים"},
}

func unit(lang string, n int, u string) string {
	future := n > 0
	if n < 0 {
		n = -n
	}

	if lang == "HE" {
		forms := hebrewUnits[u]
		var noun string
		switch n {
		case 1:
			noun = forms[0]
		case 2:
			noun = forms[1]
		default:
			noun = fmt.Sprintf("%d %s", n, forms[2])
		}
		if future {
			return "בעוד " + noun
		}
		return "לפני " + noun
	}

	noun := u
	if n != 1 {
		noun += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", n, noun)
	}
	return fmt.Sprintf("%d %s ago", n, noun)
}
