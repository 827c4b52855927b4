// Package render turns comparison results into HTML fragments and plain text.
package render

import (
	"fmt"
	"html"
	"strings"

	"BillCompare/internal/compare"
	"BillCompare/internal/domain"
)

// Layout selects the table arrangement of a comparison.
type Layout int

const (
	Desktop Layout = iota
	Mobile
)

// ParseLayout maps a config value to a layout; anything unknown is Desktop.
func ParseLayout(value string) Layout {
	if strings.EqualFold(strings.TrimSpace(value), "mobile") {
		return Mobile
	}
	return Desktop
}

const (
	addedClass      = "diff-added"
	noArticlesText  = "選定的版本中沒有可供比較的條文內容。"
	noTableText     = "無條文對照表。"
	emptySelectText = "請從左側選擇一個或多個版本進行查看"
)

// Text escapes s and converts line breaks to <br>.
func Text(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// Segments renders a diff, wrapping additions in span.diff-added.
func Segments(segments []compare.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.Added {
			fmt.Fprintf(&sb, `<span class="%s">%s</span>`, addedClass, Text(seg.Text))
			continue
		}
		sb.WriteString(Text(seg.Text))
	}
	return sb.String()
}

// View renders whatever a session view calls for.
func View(v compare.View, layout Layout) string {
	switch v.Kind {
	case compare.ViewSingle:
		return SingleBill(v.Single.Bill)
	case compare.ViewComparison:
		return Comparison(*v.Table, layout)
	default:
		return fmt.Sprintf(`<p class="loading-text">%s</p>`, emptySelectText)
	}
}

// SingleBill renders one version with all of its articles.
func SingleBill(b domain.Bill) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h3>%s</h3>", Text(compare.BillTitle(b)))
	fmt.Fprintf(&sb, "<p><strong>提案人:</strong> %s</p>", Text(strings.Join(b.Proposers, ", ")))
	fmt.Fprintf(&sb, "<h4>案由</h4><p>%s</p><hr>", Text(orNone(b.Reason)))

	if len(b.ComparisonTable) == 0 {
		fmt.Fprintf(&sb, "<p>%s</p>", noTableText)
		return sb.String()
	}
	for _, entry := range b.ComparisonTable {
		title, ok := compare.EntryTitle(entry)
		if !ok {
			title = domain.UntitledArticle
		}
		fmt.Fprintf(&sb, "<h4>%s</h4>", Text(title))
		fmt.Fprintf(&sb, "<p><strong>修正條文:</strong><br>%s</p>", Text(orNone(entry.ModifiedText)))
		fmt.Fprintf(&sb, "<p><strong>現行條文:</strong><br>%s</p>", Text(orNone(entry.CurrentText)))
		fmt.Fprintf(&sb, "<p><strong>說明:</strong><br>%s</p><hr>", Text(orNone(entry.Explanation)))
	}
	return sb.String()
}

// Comparison renders one accordion item per aligned article.
func Comparison(t compare.Table, layout Layout) string {
	if len(t.Rows) == 0 {
		return fmt.Sprintf(`<p class="error-text">%s</p>`, noArticlesText)
	}

	var sb strings.Builder
	sb.WriteString(`<div class="comparison-accordion-container">`)
	for _, row := range t.Rows {
		header := "accordion-header"
		if row.HasDifference() {
			header += " has-difference"
		}
		fmt.Fprintf(&sb, `<div class="accordion-item"><button class="%s">%s</button>`, header, Text(row.Title))
		sb.WriteString(`<div class="accordion-panel"><div class="accordion-content">`)
		if layout == Mobile {
			writeMobileRow(&sb, t.Columns, row)
		} else {
			writeDesktopRow(&sb, t.Columns, row)
		}
		sb.WriteString(`</div></div></div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func writeDesktopRow(sb *strings.Builder, cols []compare.Column, row compare.Row) {
	sb.WriteString(`<table class="comparison-view-table"><thead><tr><th>項目</th><th>現行版本</th>`)
	for _, col := range cols {
		fmt.Fprintf(sb, "<th>%s 版本</th>", Text(col.Label))
	}
	sb.WriteString("</tr></thead><tbody>")

	fmt.Fprintf(sb, "<tr><td><strong>條文內容</strong></td><td>%s</td>", Text(row.CurrentLaw))
	for _, cell := range row.Bodies {
		fmt.Fprintf(sb, "<td>%s</td>", Segments(cell.Segments))
	}
	sb.WriteString("</tr>")

	fmt.Fprintf(sb, "<tr><td><strong>說明</strong></td><td>%s</td>", domain.NoColumn)
	for _, cell := range row.Explanations {
		fmt.Fprintf(sb, "<td>%s</td>", Segments(cell.Segments))
	}
	sb.WriteString("</tr></tbody></table>")
}

func writeMobileRow(sb *strings.Builder, cols []compare.Column, row compare.Row) {
	sb.WriteString(`<table class="comparison-view-table"><thead><tr><th>提案版本</th><th>條文內容</th><th>說明</th></tr></thead><tbody>`)
	fmt.Fprintf(sb, "<tr><td><strong>現行版本</strong></td><td>%s</td><td>%s</td></tr>", Text(row.CurrentLaw), domain.NoColumn)
	for i, col := range cols {
		fmt.Fprintf(sb, "<tr><td><strong>%s 版本</strong></td><td>%s</td><td>%s</td></tr>",
			Text(col.Label), Segments(row.Bodies[i].Segments), Segments(row.Explanations[i].Segments))
	}
	sb.WriteString("</tbody></table>")
}

func orNone(s string) string {
	if s == "" {
		return domain.NoneText
	}
	return s
}
