package compare

import "BillCompare/internal/domain"

// Cell is one version's rendering of an article body or explanation.
type Cell struct {
	Segments []Segment `json:"segments"`
	Missing  bool      `json:"missing,omitempty"`
}

// Text returns the cell text without markup.
func (c Cell) Text() string {
	return Join(c.Segments)
}

// HasAddition reports whether the cell highlights any addition.
func (c Cell) HasAddition() bool {
	return HasAddition(c.Segments)
}

// Row is one aligned article across the compared versions.
type Row struct {
	Title        string `json:"title"`
	CurrentLaw   string `json:"current_law"`
	Bodies       []Cell `json:"bodies"`
	Explanations []Cell `json:"explanations"`
}

// HasDifference reports whether any cell of the row highlights an addition.
func (r Row) HasDifference() bool {
	for _, c := range r.Bodies {
		if c.HasAddition() {
			return true
		}
	}
	for _, c := range r.Explanations {
		if c.HasAddition() {
			return true
		}
	}
	return false
}

// Column describes one compared version.
type Column struct {
	Label string      `json:"label"`
	Bill  domain.Bill `json:"-"`
}

// Table is the full comparison of several versions.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// BuildTable aligns bills and renders every cell. Bodies diff against the
// current-law text, or against the first bill's wording when no version
// carries current law. Explanations diff each version against the version
// before it.
func (r Renderer) BuildTable(bills []domain.Bill, roster Roster) Table {
	alignment := Align(bills)
	table := Table{
		Columns: make([]Column, len(bills)),
		Rows:    make([]Row, 0, len(alignment.Titles)),
	}
	for i, bill := range bills {
		table.Columns[i] = Column{Label: roster.VersionLabel(bill), Bill: bill}
	}

	for _, title := range alignment.Titles {
		row := Row{
			Title:        title,
			CurrentLaw:   alignment.CurrentLaw(title),
			Bodies:       make([]Cell, len(bills)),
			Explanations: make([]Cell, len(bills)),
		}
		base := row.CurrentLaw
		if base == domain.NoneText {
			first, _ := alignment.Article(0, title)
			base = first.ModifiedText
		}

		for i := range bills {
			entry, ok := alignment.Article(i, title)
			if !ok {
				row.Bodies[i] = Cell{Segments: plain(domain.MissingArticle), Missing: true}
				row.Explanations[i] = Cell{Segments: plain(domain.NoColumn), Missing: true}
				continue
			}
			row.Bodies[i] = Cell{Segments: r.Render(base, entry.ModifiedText)}
			row.Explanations[i] = r.explanationCell(alignment, i, title, entry)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func (r Renderer) explanationCell(a Alignment, i int, title string, entry domain.ArticleEntry) Cell {
	current := entry.Explanation
	if current == "" {
		current = domain.NoneText
	}
	if i == 0 {
		return Cell{Segments: plain(current)}
	}
	previous, _ := a.Article(i-1, title)
	return Cell{Segments: r.Render(previous.Explanation, current)}
}
