package domain

import "strings"

// ArticleEntry is one row of a bill's comparison table.
type ArticleEntry struct {
	ModifiedText string `json:"modified_text"`
	CurrentText  string `json:"current_text"`
	Explanation  string `json:"explanation"`
}

// Bill is a legislative proposal as published by the data source.
type Bill struct {
	SourceFile      string         `json:"source_file"`
	BillNo          string         `json:"bill_no"`
	ProposalNo      string         `json:"proposal_no,omitempty"`
	BillName        string         `json:"bill_name,omitempty"`
	Reason          string         `json:"reason"`
	Proposers       []string       `json:"proposers"`
	Cosigners       []string       `json:"cosigners"`
	Progress        string         `json:"progress"`
	Categories      []string       `json:"categories"`
	AIAnalysis      string         `json:"ai_analysis,omitempty"`
	ComparisonTable []ArticleEntry `json:"comparison_table"`
}

// Normalize defaults absent collections so callers never see nil slices.
func (b *Bill) Normalize() {
	if b.Proposers == nil {
		b.Proposers = []string{}
	}
	if b.Cosigners == nil {
		b.Cosigners = []string{}
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	if b.ComparisonTable == nil {
		b.ComparisonTable = []ArticleEntry{}
	}
}

// NormalizeBills applies Normalize to every element in place.
func NormalizeBills(bills []Bill) []Bill {
	if bills == nil {
		return []Bill{}
	}
	for i := range bills {
		bills[i].Normalize()
	}
	return bills
}

// DateToken is the leading "_"-separated token of the source label.
func (b Bill) DateToken() string {
	token, _, _ := strings.Cut(b.SourceFile, "_")
	return token
}

// SequenceToken returns the bill number, falling back to the second
// token of the source label.
func (b Bill) SequenceToken() string {
	if no := strings.TrimSpace(b.BillNo); no != "" {
		return no
	}
	parts := strings.SplitN(b.SourceFile, "_", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

// HasCategory reports whether the bill is tagged with the short category code.
func (b Bill) HasCategory(code string) bool {
	for _, c := range b.Categories {
		if c == code {
			return true
		}
	}
	return false
}

// Legislator maps a person to a party label.
type Legislator struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// LegislatorRoster is the wire shape of legislators.json.
type LegislatorRoster struct {
	JSONList []Legislator `json:"jsonList"`
}
