package compare

import "BillCompare/internal/domain"

// Alignment joins the articles of several bills on their derived identifiers.
type Alignment struct {
	Bills    []domain.Bill
	Titles   []string
	articles []map[string]domain.ArticleEntry
}

// Align indexes every bill's comparison table by article identifier and
// returns the sorted union of identifiers. Entries without an identifier
// take no part in the comparison.
func Align(bills []domain.Bill) Alignment {
	a := Alignment{
		Bills:    bills,
		articles: make([]map[string]domain.ArticleEntry, len(bills)),
	}
	seen := make(map[string]struct{})
	for i, bill := range bills {
		index := make(map[string]domain.ArticleEntry, len(bill.ComparisonTable))
		for _, entry := range bill.ComparisonTable {
			title, ok := EntryTitle(entry)
			if !ok {
				continue
			}
			index[title] = entry
			if _, dup := seen[title]; !dup {
				seen[title] = struct{}{}
				a.Titles = append(a.Titles, title)
			}
		}
		a.articles[i] = index
	}
	SortArticleTitles(a.Titles)
	return a
}

// EntryTitle derives an entry's identifier from its proposed wording,
// falling back to the current-law wording.
func EntryTitle(entry domain.ArticleEntry) (string, bool) {
	if title, ok := ExtractArticleTitle(entry.ModifiedText); ok {
		return title, true
	}
	return ExtractArticleTitle(entry.CurrentText)
}

// Article returns the entry of the i-th bill for title.
func (a Alignment) Article(i int, title string) (domain.ArticleEntry, bool) {
	if i < 0 || i >= len(a.articles) {
		return domain.ArticleEntry{}, false
	}
	entry, ok := a.articles[i][title]
	return entry, ok
}

// CurrentLaw returns the first non-empty current-law text for title in bill
// order, or 無.
func (a Alignment) CurrentLaw(title string) string {
	for i := range a.articles {
		if entry, ok := a.articles[i][title]; ok && entry.CurrentText != "" {
			return entry.CurrentText
		}
	}
	return domain.NoneText
}

// Empty reports whether no bill contributed an identifier.
func (a Alignment) Empty() bool {
	return len(a.Titles) == 0
}
