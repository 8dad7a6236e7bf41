package ledger

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted by ParseDate, tried in order.
const (
	isoLayout = "2006-01-02"
	usLayout  = "1/2/2006"

	// DisplayLayout is the MM/dd/yyyy format used for every rendered date.
	DisplayLayout = "01/02/2006"
)

// ParseDate parses yyyy-MM-dd or MM/dd/yyyy text. It returns false for empty
// or unparsable input.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	layout := usLayout
	if strings.Contains(text, "-") {
		layout = isoLayout
		// Timestamps are accepted as long as they start with a calendar date.
		if len(text) > len(isoLayout) && (text[len(isoLayout)] == 'T' || text[len(isoLayout)] == ' ') {
			text = text[:len(isoLayout)]
		}
	}
	t, err := time.Parse(layout, text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as MM/dd/yyyy. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}

// ParseMoney strips everything but digits and '.' and parses the rest.
// Anything that does not parse to a finite number is 0.
func ParseMoney(text string) float64 {
	v, ok := parseNumber(text)
	if !ok {
		return 0
	}
	return v
}

// parseNumber is ParseMoney without the zero fallback, so callers can tell
// "unknown" apart from "zero".
func parseNumber(text string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(leadingNumber(cleaned), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// leadingNumber keeps the longest prefix that is a valid decimal, so "1.2.3"
// reads as 1.2 the way a lenient float parser would.
func leadingNumber(s string) string {
	seenDot := false
	for i, r := range s {
		if r == '.' {
			if seenDot {
				return s[:i]
			}
			seenDot = true
		}
	}
	return s
}

// formatAmount renders v with exactly two decimals.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
