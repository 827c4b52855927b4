package catalog

import (
	"errors"
	"testing"

	"BillCompare/internal/domain"
)

func TestParseMonthRange(t *testing.T) {
	t.Parallel()

	got, err := ParseMonthRange("2024-11", "2025-02")
	if err != nil {
		t.Fatalf("ParseMonthRange: %v", err)
	}
	want := []domain.MonthRef{{Year: 2024, Month: 11}, {Year: 2024, Month: 12}, {Year: 2025, Month: 1}, {Year: 2025, Month: 2}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	for _, bad := range [][2]string{{"2025", "2025-02"}, {"2025-13", "2025-12"}, {"2025-03", "2025-01"}, {"abc-01", "2025-01"}} {
		if _, err := ParseMonthRange(bad[0], bad[1]); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("ParseMonthRange(%q, %q) err = %v, want ErrInvalidInput", bad[0], bad[1], err)
		}
	}
}

func TestResolveRange(t *testing.T) {
	t.Parallel()

	available := []domain.MonthRef{
		{Year: 2025, Month: 1},
		{Year: 2025, Month: 4},
		{Year: 2024, Month: 12},
		{Year: 2025, Month: 3},
	}

	latest, err := ResolveRange(available, "", "2025-03", 0)
	if err != nil {
		t.Fatalf("ResolveRange default: %v", err)
	}
	if len(latest) != DefaultMonths || latest[0] != (domain.MonthRef{Year: 2025, Month: 4}) || latest[2] != (domain.MonthRef{Year: 2025, Month: 1}) {
		t.Fatalf("unexpected default months %v", latest)
	}

	two, err := ResolveRange(available, "", "", 2)
	if err != nil || len(two) != 2 {
		t.Fatalf("ResolveRange latest 2 = %v, %v", two, err)
	}

	months, err := ResolveRange(available, "2024-12", "2025-02", 0)
	if err != nil {
		t.Fatalf("ResolveRange: %v", err)
	}
	if len(months) != 2 || months[0] != (domain.MonthRef{Year: 2024, Month: 12}) {
		t.Fatalf("unexpected months %v", months)
	}

	if _, err := ResolveRange(available, "2023-01", "2023-05", 0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := ResolveRange(nil, "", "", 0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without data, got %v", err)
	}
	if _, err := ResolveRange(available, "bad", "2025-01", 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMonthEntries(t *testing.T) {
	t.Parallel()

	got := MonthEntries([]domain.MonthRef{{Year: 2025, Month: 6}})
	if len(got) != 1 || got[0].Label != "2025年06月" {
		t.Fatalf("unexpected entries %+v", got)
	}
}
