package expense

import (
	"strings"
	"time"
)

// Criteria is the user-facing multi-criteria filter. All criteria are ANDed
// together; an empty search, empty category set, or empty date bound places
// no restriction.
type Criteria struct {
	Search     string
	Categories []Category
	DateFrom   string
	DateTo     string
}

// IsZero reports whether the criteria place no restriction at all.
func (c Criteria) IsZero() bool {
	return c.Search == "" && len(c.Categories) == 0 && c.DateFrom == "" && c.DateTo == ""
}

// Filter applies the criteria to an in-memory sequence of records. It is a
// pure function: the input is never mutated and the relative order of
// surviving records is retained. A record whose date fails to parse is
// excluded from date-bounded comparisons but never aborts the batch.
func Filter(expenses []*Expense, c Criteria) []*Expense {
	search := strings.ToLower(c.Search)
	from, haveFrom := parseBound(c.DateFrom)
	to, haveTo := parseBound(c.DateTo)

	filtered := make([]*Expense, 0, len(expenses))

	for _, e := range expenses {
		if search != "" && !matchesSearch(e, search) {
			continue
		}

		if len(c.Categories) > 0 && !containsCategory(c.Categories, e.Category) {
			continue
		}

		if haveFrom || haveTo {
			day, err := e.Day()
			if err != nil {
				// Malformed stored date: skip this record only.
				continue
			}

			if haveFrom && day.Before(from) {
				continue
			}

			if haveTo && day.After(to) {
				continue
			}
		}

		filtered = append(filtered, e)
	}

	return filtered
}

// parseBound parses a criteria date bound at day granularity. A missing or
// malformed bound is treated as unbounded.
func parseBound(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	day, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}

	return day, true
}

func matchesSearch(e *Expense, query string) bool {
	return strings.Contains(strings.ToLower(e.Description), query) ||
		strings.Contains(strings.ToLower(string(e.Category)), query)
}

func containsCategory(set []Category, c Category) bool {
	for _, sc := range set {
		if sc == c {
			return true
		}
	}

	return false
}
