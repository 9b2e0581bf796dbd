package domain

import (
	"strings"
	"time"
)

// WireTimeSuffix is appended to every date this program writes.
// It has no timezone meaning; it is kept so files stay compatible.
const WireTimeSuffix = "T04:00:00.000Z"

// PresentLabel replaces the end date of an ongoing entry.
const PresentLabel = "Present"

// DateRangeSeparator joins start and end in display date lines.
const DateRangeSeparator = " – "

const displayLayout = "January 2006"

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// WireDate converts form input (YYYY-MM-DD) into the stored timestamp
// form. Empty input stays empty. Anything after a "T" is dropped first.
func WireDate(input string) string {
	d := strings.TrimSpace(input)
	if d == "" {
		return ""
	}
	d, _, _ = strings.Cut(d, "T")
	return d + WireTimeSuffix
}

// FormatDisplayDate renders an ISO-8601 timestamp as "Month YYYY".
// It never fails: unparsable input degrades to its first 10 characters,
// or to the raw string when shorter.
func FormatDisplayDate(iso string) string {
	if iso == "" {
		return ""
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format(displayLayout)
		}
	}
	if r := []rune(iso); len(r) >= 10 {
		return string(r[:10])
	}
	return iso
}

// DateRange builds "Start – End" with End = "Present" when absent.
// It returns "" when there is no start date; callers then skip the line.
func DateRange(start string, end *string) string {
	if start == "" {
		return ""
	}
	endDisplay := PresentLabel
	if end != nil && *end != "" {
		endDisplay = FormatDisplayDate(*end)
	}
	return FormatDisplayDate(start) + DateRangeSeparator + endDisplay
}
