package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"BillCompare/internal/domain"
)

// LegislatorsFile is the roster file name shared by every store layout.
const LegislatorsFile = "legislators.json"

var monthFilePattern = regexp.MustCompile(`^ai_enriched_data_(\d{4})_(\d{2})\.json$`)

// MonthFileName names the bill file of one month.
func MonthFileName(m domain.MonthRef) string {
	return fmt.Sprintf("ai_enriched_data_%04d_%02d.json", m.Year, m.Month)
}

// ParseMonthFileName recognises a monthly bill file name.
func ParseMonthFileName(name string) (domain.MonthRef, bool) {
	match := monthFilePattern.FindStringSubmatch(name)
	if match == nil {
		return domain.MonthRef{}, false
	}
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return domain.MonthRef{}, false
	}
	return domain.MonthRef{Year: year, Month: month}, true
}

func decodeBills(r io.Reader) ([]domain.Bill, error) {
	var bills []domain.Bill
	if err := json.NewDecoder(r).Decode(&bills); err != nil {
		return nil, fmt.Errorf("decode bills: %w", err)
	}
	return domain.NormalizeBills(bills), nil
}

func decodeRoster(r io.Reader) ([]domain.Legislator, error) {
	var roster domain.LegislatorRoster
	if err := json.NewDecoder(r).Decode(&roster); err != nil {
		return nil, fmt.Errorf("decode legislators: %w", err)
	}
	return roster.JSONList, nil
}

func encodeJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return data, nil
}
