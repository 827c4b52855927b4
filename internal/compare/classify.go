package compare

import (
	"strings"

	"BillCompare/internal/domain"
)

// Roster resolves legislator names to party labels.
type Roster struct {
	parties map[string]string
}

// NewRoster indexes legislators by normalized name. Later duplicates win.
func NewRoster(legislators []domain.Legislator) Roster {
	parties := make(map[string]string, len(legislators))
	for _, leg := range legislators {
		parties[NormalizeName(leg.Name)] = leg.Party
	}
	return Roster{parties: parties}
}

// Party looks up a legislator's party by name.
func (r Roster) Party(name string) (string, bool) {
	party, ok := r.parties[NormalizeName(name)]
	if !ok || party == "" {
		return "", false
	}
	return party, true
}

// Len reports the number of indexed legislators.
func (r Roster) Len() int {
	return len(r.parties)
}

// Classify assigns a proposer list to an affiliation group. A first proposer
// named exactly after a group wins; otherwise the first proposer whose party
// is not 無黨籍 decides. Unrecognized parties yield no group.
func (r Roster) Classify(proposers []string) (domain.Affiliation, bool) {
	if len(proposers) == 0 {
		return "", false
	}
	if aff, ok := domain.ParseAffiliation(strings.TrimSpace(proposers[0])); ok {
		return aff, true
	}
	for _, proposer := range proposers {
		party, ok := r.Party(proposer)
		if !ok || party == domain.PartyNone {
			continue
		}
		return domain.ParseAffiliation(party)
	}
	return "", false
}

// VersionLabel names a version column after its first proposer: the
// institution itself, or the proposer's party, or 未知黨派.
func (r Roster) VersionLabel(b domain.Bill) string {
	if len(b.Proposers) == 0 {
		return domain.PartyUnknown
	}
	first := b.Proposers[0]
	if aff, ok := domain.ParseAffiliation(first); ok && aff.Institutional() {
		return first
	}
	if party, ok := r.Party(first); ok {
		return party
	}
	return domain.PartyUnknown
}
