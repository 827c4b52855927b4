package compare

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"BillCompare/internal/domain"
)

// ViewKind tells which presentation a session currently calls for.
type ViewKind int

const (
	ViewEmpty ViewKind = iota
	ViewSingle
	ViewComparison
)

// String returns a label for the view kind.
func (k ViewKind) String() string {
	switch k {
	case ViewEmpty:
		return "empty"
	case ViewSingle:
		return "single"
	case ViewComparison:
		return "comparison"
	default:
		return "unknown"
	}
}

// View is the derived state of a session after a selection change.
type View struct {
	Kind     ViewKind
	Single   *Version
	Table    *Table
	Versions []Version
}

// Session holds the fetched bill pool and the user's current selection.
// All derived state is recomputed from the pool on every change.
type Session struct {
	ID          string
	pool        []domain.Bill
	legislators []domain.Legislator
	roster      Roster
	renderer    Renderer
	baseTitle   string
	versions    VersionSet
	selected    map[domain.Affiliation]bool
}

// NewSession builds a session over an already fetched pool and roster.
func NewSession(pool []domain.Bill, legislators []domain.Legislator, renderer Renderer) *Session {
	return &Session{
		ID:          ulid.Make().String(),
		pool:        domain.NormalizeBills(pool),
		legislators: legislators,
		roster:      NewRoster(legislators),
		renderer:    renderer,
		selected:    map[domain.Affiliation]bool{},
	}
}

// Pool exposes the session's bills.
func (s *Session) Pool() []domain.Bill {
	return s.pool
}

// Legislators returns the roster the session was built with.
func (s *Session) Legislators() []domain.Legislator {
	return s.legislators
}

// Roster exposes the legislator index.
func (s *Session) Roster() Roster {
	return s.roster
}

// Search matches the query against display titles and reasons,
// case-insensitively. A blank query matches nothing.
func (s *Session) Search(query string) []domain.Bill {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []domain.Bill
	for _, bill := range s.pool {
		if strings.Contains(strings.ToLower(BillTitle(bill)), q) ||
			strings.Contains(strings.ToLower(bill.Reason), q) {
			out = append(out, bill)
		}
	}
	return out
}

// FindBySource looks up a pool bill by its source label.
func (s *Session) FindBySource(sourceFile string) (domain.Bill, error) {
	for _, bill := range s.pool {
		if bill.SourceFile == sourceFile {
			return bill, nil
		}
	}
	return domain.Bill{}, fmt.Errorf("bill %q: %w", sourceFile, domain.ErrNotFound)
}

// SelectBase makes base the subject of comparison, recomputes the version
// set and clears the selection.
func (s *Session) SelectBase(base domain.Bill) VersionSet {
	s.baseTitle = NormalizeBillTitle(base)
	s.versions = SelectVersions(s.pool, base, s.roster)
	s.selected = map[domain.Affiliation]bool{}
	return s.versions
}

// BaseTitle is the normalized title of the current base bill.
func (s *Session) BaseTitle() string {
	return s.baseTitle
}

// Versions returns the version set of the current base bill.
func (s *Session) Versions() VersionSet {
	return s.versions
}

// Toggle flips the selection of one affiliation's version.
func (s *Session) Toggle(aff domain.Affiliation) error {
	if _, ok := s.versions[aff]; !ok {
		return fmt.Errorf("version %s: %w", aff, domain.ErrNotFound)
	}
	s.selected[aff] = !s.selected[aff]
	return nil
}

// Select replaces the selection with the given affiliations.
func (s *Session) Select(affs ...domain.Affiliation) error {
	next := make(map[domain.Affiliation]bool, len(affs))
	for _, aff := range affs {
		if _, ok := s.versions[aff]; !ok {
			return fmt.Errorf("version %s: %w", aff, domain.ErrNotFound)
		}
		next[aff] = true
	}
	s.selected = next
	return nil
}

// Selected lists the selected versions in display order.
func (s *Session) Selected() []Version {
	var out []Version
	for _, v := range s.versions.Ordered() {
		if s.selected[v.Affiliation] {
			out = append(out, v)
		}
	}
	return out
}

// View derives what to present for the current selection: nothing, a single
// bill, or a comparison table.
func (s *Session) View() View {
	selected := s.Selected()
	switch len(selected) {
	case 0:
		return View{Kind: ViewEmpty}
	case 1:
		return View{Kind: ViewSingle, Single: &selected[0], Versions: selected}
	}
	bills := make([]domain.Bill, len(selected))
	for i, v := range selected {
		bills[i] = v.Bill
	}
	table := s.renderer.BuildTable(bills, s.roster)
	return View{Kind: ViewComparison, Table: &table, Versions: selected}
}
