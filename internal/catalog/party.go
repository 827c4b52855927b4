package catalog

import (
	"sort"
	"strings"

	"BillCompare/internal/domain"
)

// Participation buckets. Pair buckets join party names with "+".
var PartyBuckets = []string{
	string(domain.KMT),
	string(domain.DPP),
	string(domain.TPP),
	string(domain.KMT) + "+" + string(domain.TPP),
	string(domain.KMT) + "+" + string(domain.DPP),
	string(domain.DPP) + "+" + string(domain.TPP),
	domain.PartyNone,
}

var pairOrder = map[string]int{
	string(domain.KMT): 0,
	string(domain.DPP): 1,
	string(domain.TPP): 2,
}

// PartyParticipation buckets bills by the parties of their proposers and
// cosigners. Names are matched exactly against the roster. A bill with an
// independent participant also lands in the 無黨籍 bucket; bills backed by
// all three named parties land in no party bucket.
func PartyParticipation(bills []domain.Bill, legislators []domain.Legislator) map[string][]domain.Bill {
	parties := make(map[string]string, len(legislators))
	for _, l := range legislators {
		parties[l.Name] = l.Party
	}

	buckets := make(map[string][]domain.Bill, len(PartyBuckets))
	for _, name := range PartyBuckets {
		buckets[name] = nil
	}

	for _, b := range bills {
		seen := make(map[string]struct{}, 3)
		independent := false
		for _, p := range append(append([]string(nil), b.Proposers...), b.Cosigners...) {
			party, ok := parties[p]
			if !ok {
				continue
			}
			if party == domain.PartyNone {
				independent = true
				continue
			}
			if _, named := pairOrder[party]; named {
				seen[party] = struct{}{}
			}
		}

		if independent {
			buckets[domain.PartyNone] = append(buckets[domain.PartyNone], b)
		}
		if key := bucketKey(seen); key != "" {
			buckets[key] = append(buckets[key], b)
		}
	}
	return buckets
}

func bucketKey(seen map[string]struct{}) string {
	if len(seen) == 0 || len(seen) > 2 {
		return ""
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return pairOrder[names[i]] < pairOrder[names[j]] })
	return strings.Join(names, "+")
}

// PartyStats summarizes PartyParticipation for the party-stats endpoint.
func PartyStats(bills []domain.Bill, legislators []domain.Legislator) domain.PartyStats {
	buckets := PartyParticipation(bills, legislators)
	stats := domain.PartyStats{
		TotalBills:  len(bills),
		PartyCounts: make(map[string]int, len(buckets)),
	}
	for name, members := range buckets {
		stats.PartyCounts[name] = len(members)
	}
	if stats.TotalBills > 0 {
		stats.IndependentParticipationRate = float64(stats.PartyCounts[domain.PartyNone]) / float64(stats.TotalBills)
	}
	return stats
}
