package render

import (
	"fmt"
	"io"
	"strings"

	"BillCompare/internal/compare"
	"BillCompare/internal/domain"
)

// PlainSegments renders a diff for terminals, marking additions as [+...+].
func PlainSegments(segments []compare.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.Added {
			sb.WriteString("[+" + seg.Text + "+]")
			continue
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// WriteText prints a session view as indented plain text.
func WriteText(w io.Writer, v compare.View) error {
	switch v.Kind {
	case compare.ViewSingle:
		return writeSingleText(w, v.Single.Bill)
	case compare.ViewComparison:
		return writeTableText(w, *v.Table)
	default:
		_, err := fmt.Fprintln(w, emptySelectText)
		return err
	}
}

func writeSingleText(w io.Writer, b domain.Bill) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n提案人: %s\n案由: %s\n", compare.BillTitle(b), strings.Join(b.Proposers, ", "), orNone(b.Reason))
	if len(b.ComparisonTable) == 0 {
		sb.WriteString(noTableText + "\n")
	}
	for _, entry := range b.ComparisonTable {
		title, ok := compare.EntryTitle(entry)
		if !ok {
			title = domain.UntitledArticle
		}
		fmt.Fprintf(&sb, "\n== %s ==\n修正條文:\n%s\n現行條文:\n%s\n說明:\n%s\n",
			title, indent(orNone(entry.ModifiedText)), indent(orNone(entry.CurrentText)), indent(orNone(entry.Explanation)))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTableText(w io.Writer, t compare.Table) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, noArticlesText)
		return err
	}
	var sb strings.Builder
	for _, row := range t.Rows {
		marker := ""
		if row.HasDifference() {
			marker = " *"
		}
		fmt.Fprintf(&sb, "== %s%s ==\n現行版本:\n%s\n", row.Title, marker, indent(row.CurrentLaw))
		for i, col := range t.Columns {
			fmt.Fprintf(&sb, "%s 版本:\n%s\n  說明:\n%s\n",
				col.Label, indent(PlainSegments(row.Bodies[i].Segments)), indent(PlainSegments(row.Explanations[i].Segments)))
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}
