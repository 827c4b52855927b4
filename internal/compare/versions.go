package compare

import (
	"strings"

	"BillCompare/internal/domain"
)

// Version is one affiliation's selected bill.
type Version struct {
	Affiliation domain.Affiliation
	Bill        domain.Bill
}

// VersionSet holds at most one bill per affiliation.
type VersionSet map[domain.Affiliation]domain.Bill

// Ordered lists the set in display order.
func (v VersionSet) Ordered() []Version {
	out := make([]Version, 0, len(v))
	for _, aff := range domain.Affiliations {
		if bill, ok := v[aff]; ok {
			out = append(out, Version{Affiliation: aff, Bill: bill})
		}
	}
	return out
}

// SameBaseTitle returns the bills of pool sharing base's normalized title.
func SameBaseTitle(pool []domain.Bill, base domain.Bill) []domain.Bill {
	title := NormalizeBillTitle(base)
	var out []domain.Bill
	for _, bill := range pool {
		if NormalizeBillTitle(bill) == title {
			out = append(out, bill)
		}
	}
	return out
}

// GroupByAffiliation buckets bills by classified affiliation, dropping
// bills without proposers or without a recognized group.
func GroupByAffiliation(bills []domain.Bill, roster Roster) map[domain.Affiliation][]domain.Bill {
	groups := make(map[domain.Affiliation][]domain.Bill)
	for _, bill := range bills {
		aff, ok := roster.Classify(bill.Proposers)
		if !ok {
			continue
		}
		groups[aff] = append(groups[aff], bill)
	}
	return groups
}

// LatestPerAffiliation keeps the most recent bill of every non-empty group.
func LatestPerAffiliation(groups map[domain.Affiliation][]domain.Bill) VersionSet {
	set := make(VersionSet, len(groups))
	for aff, bills := range groups {
		if latest, ok := Latest(bills); ok {
			set[aff] = latest
		}
	}
	return set
}

// SelectVersions picks the latest bill per affiliation among the bills that
// share base's normalized title.
func SelectVersions(pool []domain.Bill, base domain.Bill, roster Roster) VersionSet {
	return LatestPerAffiliation(GroupByAffiliation(SameBaseTitle(pool, base), roster))
}

// Latest returns the bill with the greatest date token, breaking ties by the
// numeric sequence token. Earlier bills win exact ties.
func Latest(bills []domain.Bill) (domain.Bill, bool) {
	if len(bills) == 0 {
		return domain.Bill{}, false
	}
	best := bills[0]
	for _, bill := range bills[1:] {
		if newer(bill, best) {
			best = bill
		}
	}
	return best, true
}

func newer(a, b domain.Bill) bool {
	if c := strings.Compare(a.DateToken(), b.DateToken()); c != 0 {
		return c > 0
	}
	return compareDigits(leadingDigits(a.SequenceToken()), leadingDigits(b.SequenceToken())) > 0
}

// leadingDigits mirrors base-10 integer parsing: the leading digit run with
// zeros trimmed; anything unparsable counts as zero.
func leadingDigits(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return strings.TrimLeft(s[:end], "0")
}

func compareDigits(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}
