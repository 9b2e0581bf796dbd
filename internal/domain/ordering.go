package domain

import (
	"regexp"
	"slices"
	"strings"
)

const (
	activeSortKey  = "9999-12-31"
	undatedSortKey = "1900-01-01"
)

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// SortKey is the ordering key of an entry: active entries first, then
// the YYYY-MM-DD prefix of the start date. Start dates without such a
// prefix sort as undated.
func SortKey(active bool, startDate string) string {
	if active {
		return activeSortKey
	}
	prefix := datePrefix.FindString(strings.TrimSpace(startDate))
	if prefix == "" {
		return undatedSortKey
	}
	return prefix
}

// compareEntries puts active entries before inactive ones, then newer
// start dates before older ones.
func compareEntries(aActive bool, aStart string, bActive bool, bStart string) int {
	if aActive != bActive {
		if aActive {
			return -1
		}
		return 1
	}
	return strings.Compare(SortKey(bActive, bStart), SortKey(aActive, aStart))
}

func (w WorkEntry) sortKey() string      { return SortKey(w.IsWorkingHere, w.StartDate) }
func (e EducationEntry) sortKey() string { return SortKey(e.IsStudyingHere, e.StartDate) }

// SortWork orders entries most relevant first. The sort is stable.
func SortWork(entries []WorkEntry) {
	slices.SortStableFunc(entries, func(a, b WorkEntry) int {
		return compareEntries(a.IsWorkingHere, a.StartDate, b.IsWorkingHere, b.StartDate)
	})
}

// SortEducation orders entries most relevant first. The sort is stable.
func SortEducation(entries []EducationEntry) {
	slices.SortStableFunc(entries, func(a, b EducationEntry) int {
		return compareEntries(a.IsStudyingHere, a.StartDate, b.IsStudyingHere, b.StartDate)
	})
}

// Sort restores canonical order on both collections.
func (r *Resume) Sort() {
	SortWork(r.Work)
	SortEducation(r.Education)
}
