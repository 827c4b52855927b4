package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"BillCompare/internal/compare"
	"BillCompare/internal/domain"
	chardiff "BillCompare/internal/infrastructure/diff"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func fixtureTable() compare.Table {
	roster := compare.NewRoster([]domain.Legislator{{Name: "王小明", Party: string(domain.DPP)}})
	renderer := compare.NewRenderer(chardiff.NewCharDiffer(0), nil)
	return renderer.BuildTable([]domain.Bill{
		{
			SourceFile: "20250101_1_民法修正草案.docx",
			Proposers:  []string{"行政院"},
			ComparisonTable: []domain.ArticleEntry{
				{ModifiedText: "第一條 甲", CurrentText: "第一條 甲", Explanation: "說明"},
				{ModifiedText: "第二條 <b>乙</b>\n第二項", CurrentText: "第二條 <b>乙</b>"},
			},
		},
		{
			SourceFile:      "20250102_2_民法修正草案.docx",
			Proposers:       []string{"王小明"},
			ComparisonTable: []domain.ArticleEntry{{ModifiedText: "第一條 甲", Explanation: "說明"}},
		},
	}, roster)
}

func TestSegmentsEscapesAndMarksAdditions(t *testing.T) {
	t.Parallel()

	out := Segments([]compare.Segment{{Text: "a<b"}, {Text: "新\n增", Added: true}})
	if out != `a&lt;b<span class="diff-added">新<br>增</span>` {
		t.Fatalf("Segments = %q", out)
	}
}

func TestComparisonDesktop(t *testing.T) {
	t.Parallel()

	doc := parse(t, Comparison(fixtureTable(), Desktop))

	headers := doc.Find("button.accordion-header")
	if headers.Length() != 2 {
		t.Fatalf("expected 2 accordion items, got %d", headers.Length())
	}
	if got := headers.First().Text(); got != "第一條" {
		t.Fatalf("first header = %q", got)
	}
	if headers.First().HasClass("has-difference") {
		t.Error("identical article should not be flagged")
	}
	if !headers.Eq(1).HasClass("has-difference") {
		t.Error("amended article should be flagged")
	}

	cols := doc.Find("table").First().Find("thead th")
	if cols.Length() != 4 || cols.Eq(2).Text() != "行政院 版本" || cols.Eq(3).Text() != "民主進步黨 版本" {
		t.Fatalf("unexpected header cells: %q", cols.Text())
	}

	second := doc.Find("table").Eq(1)
	added := second.Find("span.diff-added")
	if added.Length() == 0 || !strings.Contains(added.Text(), "第二項") {
		t.Fatalf("expected highlighted addition, got %q", added.Text())
	}
	if second.Find("b").Length() != 0 {
		t.Error("bill text must be escaped, not interpreted as markup")
	}
	if !strings.Contains(second.Text(), domain.MissingArticle) {
		t.Error("missing article sentinel not rendered")
	}
}

func TestComparisonMobile(t *testing.T) {
	t.Parallel()

	doc := parse(t, Comparison(fixtureTable(), Mobile))
	rows := doc.Find("table").First().Find("tbody tr")
	if rows.Length() != 3 {
		t.Fatalf("expected current-law row plus one per version, got %d", rows.Length())
	}
	if got := rows.Eq(1).Find("strong").Text(); got != "行政院 版本" {
		t.Fatalf("first version row = %q", got)
	}
}

func TestComparisonWithoutArticles(t *testing.T) {
	t.Parallel()

	doc := parse(t, Comparison(compare.Table{}, Desktop))
	if got := doc.Find("p.error-text").Text(); got != noArticlesText {
		t.Fatalf("empty comparison = %q", got)
	}
}

func TestSingleBill(t *testing.T) {
	t.Parallel()

	doc := parse(t, SingleBill(domain.Bill{
		SourceFile: "20250101_1_民法修正草案.docx",
		Proposers:  []string{"行政院"},
		ComparisonTable: []domain.ArticleEntry{
			{ModifiedText: "第一條 甲"},
			{ModifiedText: "修正理由如下"},
		},
	}))

	if got := doc.Find("h3").Text(); got != "民法修正草案" {
		t.Fatalf("title = %q", got)
	}
	titles := doc.Find("h4")
	// 案由 + two articles
	if titles.Length() != 3 || titles.Eq(1).Text() != "第一條" || titles.Eq(2).Text() != domain.UntitledArticle {
		t.Fatalf("article headings = %q", titles.Text())
	}
	if !strings.Contains(doc.Text(), domain.NoneText) {
		t.Error("absent reason should render as 無")
	}
}

func TestSingleBillWithoutTable(t *testing.T) {
	t.Parallel()

	out := SingleBill(domain.Bill{SourceFile: "20250101_1_新法草案.docx"})
	if !strings.Contains(out, noTableText) {
		t.Fatalf("missing table notice: %s", out)
	}
}

func TestParseLayout(t *testing.T) {
	t.Parallel()

	if ParseLayout(" Mobile ") != Mobile || ParseLayout("desktop") != Desktop || ParseLayout("") != Desktop {
		t.Fatal("unexpected layout parsing")
	}
}
