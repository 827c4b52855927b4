// Package catalog implements the bill-pool queries served next to the
// comparison view: search, progress buckets, category counts and rankings.
package catalog

import (
	"sort"
	"strings"

	"BillCompare/internal/compare"
	"BillCompare/internal/domain"
)

// RankingSize is the number of titles returned by TitleRanking.
const RankingSize = 10

// Search matches bills whose display title, reason, proposers or cosigners
// contain query, ignoring case. A blank query matches nothing.
func Search(bills []domain.Bill, query string) []domain.Bill {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []domain.Bill
	for _, b := range bills {
		fields := []string{
			compare.BillTitle(b),
			b.Reason,
			strings.Join(b.Proposers, " "),
			strings.Join(b.Cosigners, " "),
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// ProgressClass buckets a free-form progress note. The first matching
// stage wins, so "一讀" shadows later stages mentioned in the same note.
func ProgressClass(progress string) string {
	for _, class := range domain.ProgressClasses[:len(domain.ProgressClasses)-1] {
		if strings.Contains(progress, class) {
			return class
		}
	}
	return domain.ProgressOther
}

// ProgressCounts counts bills per progress class. Every class is present.
func ProgressCounts(bills []domain.Bill) map[string]int {
	counts := make(map[string]int, len(domain.ProgressClasses))
	for _, class := range domain.ProgressClasses {
		counts[class] = 0
	}
	for _, b := range bills {
		counts[ProgressClass(b.Progress)]++
	}
	return counts
}

// FilterProgress keeps bills in the given progress class and, when category
// is set, tagged with that category.
func FilterProgress(bills []domain.Bill, class, category string) []domain.Bill {
	var out []domain.Bill
	for _, b := range bills {
		if ProgressClass(b.Progress) != class {
			continue
		}
		if category != "" && !b.HasCategory(category) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// FilterCategory keeps bills tagged with category. An empty category keeps all.
func FilterCategory(bills []domain.Bill, category string) []domain.Bill {
	if category == "" {
		return bills
	}
	out := make([]domain.Bill, 0, len(bills))
	for _, b := range bills {
		if b.HasCategory(category) {
			out = append(out, b)
		}
	}
	return out
}

// CategoryCounts counts category tags across bills.
func CategoryCounts(bills []domain.Bill) map[string]int {
	counts := make(map[string]int)
	for _, b := range bills {
		for _, c := range b.Categories {
			counts[c]++
		}
	}
	return counts
}

// RankedTitle is one entry of TitleRanking.
type RankedTitle struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// TitleRanking counts bills per ranking title and returns the most frequent
// ones. Ties keep first-appearance order.
func TitleRanking(bills []domain.Bill) []RankedTitle {
	index := make(map[string]int)
	var ranking []RankedTitle
	for _, b := range bills {
		title := compare.RankingTitle(b)
		if title == "" {
			continue
		}
		i, ok := index[title]
		if !ok {
			i = len(ranking)
			index[title] = i
			ranking = append(ranking, RankedTitle{Title: title})
		}
		ranking[i].Count++
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if len(ranking) > RankingSize {
		ranking = ranking[:RankingSize]
	}
	return ranking
}
