package domain

import (
	"strings"
	"time"
)

// Tried in order; the first layout that parses wins.
var dateLayouts = []string{
	"2006-1-2", // YYYY-MM-DD, padding optional
	"2-1-2006", // DD-MM-YYYY
	"1/2/2006", // MM/DD/YYYY
}

// ParseDate parses a registry date string into a calendar date (UTC
// midnight). Any time-of-day suffix after a "T" or a space is ignored.
func ParseDate(s string) (time.Time, bool) {
	s, _, _ = strings.Cut(s, "T")
	s, _, _ = strings.Cut(s, " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
