package usecase

import (
	"context"
	"fmt"
	"sync"

	"BillCompare/internal/domain"
)

type memStore struct {
	mu          sync.Mutex
	months      map[domain.MonthRef][]domain.Bill
	legislators []domain.Legislator
}

func (s *memStore) Months(context.Context) ([]domain.MonthRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MonthRef, 0, len(s.months))
	for m := range s.months {
		out = append(out, m)
	}
	return out, nil
}

func (s *memStore) LoadMonth(_ context.Context, m domain.MonthRef) ([]domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bills, ok := s.months[m]
	if !ok {
		return nil, fmt.Errorf("month %s: %w", m.Label(), domain.ErrNotFound)
	}
	return append([]domain.Bill(nil), bills...), nil
}

func (s *memStore) Legislators(context.Context) ([]domain.Legislator, error) {
	if s.legislators == nil {
		return nil, domain.ErrNotFound
	}
	return s.legislators, nil
}

func (s *memStore) SaveMonth(_ context.Context, m domain.MonthRef, bills []domain.Bill, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.months == nil {
		s.months = make(map[domain.MonthRef][]domain.Bill)
	}
	s.months[m] = append([]domain.Bill(nil), bills...)
	return nil
}

func (s *memStore) SaveLegislators(_ context.Context, legislators []domain.Legislator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legislators = append([]domain.Legislator(nil), legislators...)
	return nil
}

func fixtureStore() *memStore {
	return &memStore{
		legislators: []domain.Legislator{
			{Name: "王小明", Party: string(domain.DPP)},
			{Name: "李大華", Party: string(domain.KMT)},
			{Name: "高金素梅", Party: domain.PartyNone},
		},
		months: map[domain.MonthRef][]domain.Bill{
			{Year: 2025, Month: 1}: {
				{
					SourceFile: "20250105_10_民法修正草案.docx",
					Proposers:  []string{"行政院"},
					Categories: []string{"商"},
					Progress:   "一讀",
					ComparisonTable: []domain.ArticleEntry{
						{ModifiedText: "第一條 本法依憲法制定之。", CurrentText: "第一條 本法制定之。", Explanation: "明定依據。"},
					},
				},
			},
			{Year: 2025, Month: 2}: {
				{
					SourceFile: "20250210_20_民法部分條文修正草案.docx",
					Proposers:  []string{"王小明"},
					Cosigners:  []string{"高金素梅"},
					Categories: []string{"商", "工"},
					Progress:   "委員會審議",
					ComparisonTable: []domain.ArticleEntry{
						{ModifiedText: "第一條 本法依憲法及法律制定之。", CurrentText: "第一條 本法制定之。", Explanation: "明定依據及法律。"},
					},
				},
			},
			{Year: 2025, Month: 3}: {
				{SourceFile: "20250301_30_刑法修正草案.docx", Proposers: []string{"李大華"}, Categories: []string{"罰"}},
			},
			{Year: 2024, Month: 12}: {
				{SourceFile: "20241201_5_稅法修正草案.docx", Proposers: []string{"李大華"}},
			},
		},
	}
}
