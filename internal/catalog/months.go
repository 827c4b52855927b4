package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"BillCompare/internal/domain"
)

// DefaultMonths is how many of the newest months an open range covers.
const DefaultMonths = 3

// ParseMonth parses a "YYYY-MM" bound.
func ParseMonth(value string) (domain.MonthRef, error) {
	y, m, ok := strings.Cut(strings.TrimSpace(value), "-")
	if !ok {
		return domain.MonthRef{}, fmt.Errorf("month %q: %w", value, domain.ErrInvalidInput)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return domain.MonthRef{}, fmt.Errorf("month %q: %w", value, domain.ErrInvalidInput)
	}
	month, err := strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return domain.MonthRef{}, fmt.Errorf("month %q: %w", value, domain.ErrInvalidInput)
	}
	return domain.MonthRef{Year: year, Month: month}, nil
}

// ParseMonthRange expands an inclusive "YYYY-MM".."YYYY-MM" range in
// chronological order. An inverted range is invalid.
func ParseMonthRange(start, end string) ([]domain.MonthRef, error) {
	from, err := ParseMonth(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseMonth(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("range %s..%s: %w", start, end, domain.ErrInvalidInput)
	}

	var months []domain.MonthRef
	for cur := from; !to.Before(cur); {
		months = append(months, cur)
		cur.Month++
		if cur.Month > 12 {
			cur.Month = 1
			cur.Year++
		}
	}
	return months, nil
}

// LatestMonths returns up to n of the newest available months, newest first.
func LatestMonths(available []domain.MonthRef, n int) []domain.MonthRef {
	months := append([]domain.MonthRef(nil), available...)
	domain.SortMonthsNewestFirst(months)
	if len(months) > n {
		months = months[:n]
	}
	return months
}

// ResolveRange picks the months a range query covers. Without both bounds it
// falls back to the latest newest months (DefaultMonths when latest <= 0).
// Requested months that are not available are skipped; an empty result is
// ErrNotFound.
func ResolveRange(available []domain.MonthRef, start, end string, latest int) ([]domain.MonthRef, error) {
	if start == "" || end == "" {
		if latest <= 0 {
			latest = DefaultMonths
		}
		months := LatestMonths(available, latest)
		if len(months) == 0 {
			return nil, fmt.Errorf("no monthly data: %w", domain.ErrNotFound)
		}
		return months, nil
	}

	requested, err := ParseMonthRange(start, end)
	if err != nil {
		return nil, err
	}
	have := make(map[domain.MonthRef]struct{}, len(available))
	for _, m := range available {
		have[m] = struct{}{}
	}
	var months []domain.MonthRef
	for _, m := range requested {
		if _, ok := have[m]; ok {
			months = append(months, m)
		}
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("no monthly data in %s..%s: %w", start, end, domain.ErrNotFound)
	}
	return months, nil
}

// MonthEntries formats months for the available-months listing.
func MonthEntries(months []domain.MonthRef) []domain.MonthEntry {
	out := make([]domain.MonthEntry, 0, len(months))
	for _, m := range months {
		out = append(out, domain.MonthEntry{Year: m.Year, Month: m.Month, Label: m.Label()})
	}
	return out
}
