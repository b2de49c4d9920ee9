// Package collection turns a raw entity slice into the filtered, sorted,
// paginated view a list screen renders. The transform is a pure function of
// its inputs; ViewModel adds the small amount of state a screen keeps
// (current query, discovered filter options).
package collection

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filter is a predicate over one item. An unset filter is simply absent from
// the query; constructors below return nil for the "pass everything" case so
// callers can append unconditionally.
type Filter[T any] func(T) bool

// Query describes one rendering of a collection.
type Query[T any] struct {
	Search       string
	SearchFields []func(T) string

	Filters []Filter[T]

	// Sort compares two items; nil keeps insertion order (the order the
	// gateway returned, which is significant and preserved by filtering).
	Sort       func(a, b T) int
	Descending bool

	Page     int // 1-indexed; out-of-range values are clamped
	PageSize int
}

// Page is the visible slice plus the aggregate metadata screens display.
type Page[T any] struct {
	Items         []T
	TotalMatching int
	TotalPages    int
	Page          int
}

// Apply runs search, structured filters, sort and pagination in that order.
func Apply[T any](items []T, q Query[T]) Page[T] {
	matched := make([]T, 0, len(items))
	term := fold(strings.TrimSpace(q.Search))

outer:
	for _, item := range items {
		if term != "" && !matchesSearch(item, term, q.SearchFields) {
			continue
		}
		for _, f := range q.Filters {
			if f != nil && !f(item) {
				continue outer
			}
		}
		matched = append(matched, item)
	}

	if q.Sort != nil {
		sign := 1
		if q.Descending {
			sign = -1
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return sign*q.Sort(matched[i], matched[j]) < 0
		})
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = len(matched)
		if pageSize == 0 {
			pageSize = 1
		}
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Page[T]{
		Items:         matched[start:end],
		TotalMatching: len(matched),
		TotalPages:    totalPages,
		Page:          page,
	}
}

func matchesSearch[T any](item T, term string, fields []func(T) string) bool {
	for _, get := range fields {
		if strings.Contains(fold(get(item)), term) {
			return true
		}
	}
	return false
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and strips diacritics, so "tet" matches "Tétouan".
func fold(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Text matches when the field contains value, case- and accent-insensitively.
// An empty value passes everything.
func Text[T any](value string, get func(T) string) Filter[T] {
	value = fold(strings.TrimSpace(value))
	if value == "" {
		return nil
	}
	return func(item T) bool {
		return strings.Contains(fold(get(item)), value)
	}
}

// Equals matches the field exactly. Empty string and the "all" sentinel the
// selector widgets use both pass everything.
func Equals[T any](value string, get func(T) string) Filter[T] {
	if value == "" || value == "all" {
		return nil
	}
	return func(item T) bool {
		return get(item) == value
	}
}

// DateRange keeps items whose date falls within [start, end] inclusive.
// Either bound may be empty, in which case only the other is enforced. A
// malformed bound or a missing/invalid item date excludes the item rather
// than failing the whole view.
func DateRange[T any](start, end string, get func(T) (time.Time, bool)) Filter[T] {
	if start == "" && end == "" {
		return nil
	}

	var startAt, endAt time.Time
	var hasStart, hasEnd bool
	if start != "" {
		t, err := parseDate(start)
		if err != nil {
			// Unusable bound: match nothing instead of throwing.
			return func(T) bool { return false }
		}
		startAt, hasStart = t, true
	}
	if end != "" {
		t, err := parseDate(end)
		if err != nil {
			return func(T) bool { return false }
		}
		// Include the end date fully.
		endAt, hasEnd = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location()), true
	}

	return func(item T) bool {
		at, ok := get(item)
		if !ok {
			return false
		}
		if hasStart && at.Before(startAt) {
			return false
		}
		if hasEnd && at.After(endAt) {
			return false
		}
		return true
	}
}

// Options keeps items whose option set contains every selected option
// (superset, not intersection).
func Options[T any](selected []string, get func(T) []string) Filter[T] {
	if len(selected) == 0 {
		return nil
	}
	return func(item T) bool {
		have := make(map[string]bool, 8)
		for _, o := range get(item) {
			have[o] = true
		}
		for _, want := range selected {
			if !have[want] {
				return false
			}
		}
		return true
	}
}

// ParseItemDate adapts a raw date string field for DateRange: malformed
// values report ok=false and are excluded while the filter is active.
func ParseItemDate(raw string) (time.Time, bool) {
	t, err := parseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Distinct collects the sorted set of values present in the raw collection,
// for populating a filter selector. Empty values are skipped.
func Distinct[T any](items []T, get func(T) string) []string {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if v := get(item); v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// CompareStrings is a case-insensitive comparator for text sort keys.
func CompareStrings[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
	}
}

// CompareFloats is a numeric comparator.
func CompareFloats[T any](get func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		av, bv := get(a), get(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
}

// CompareTimes is a timestamp comparator.
func CompareTimes[T any](get func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		av, bv := get(a), get(b)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	}
}
