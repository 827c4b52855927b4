package compare

import (
	"testing"

	"BillCompare/internal/domain"
)

func billWith(source string, proposers []string, entries ...domain.ArticleEntry) domain.Bill {
	return domain.Bill{SourceFile: source, Proposers: proposers, ComparisonTable: entries}
}

func TestAlignUnionAndBaseline(t *testing.T) {
	t.Parallel()

	a := Align([]domain.Bill{
		billWith("20250101_1_民法修正草案.docx", []string{"行政院"},
			domain.ArticleEntry{ModifiedText: "第二條 乙", CurrentText: ""},
			domain.ArticleEntry{ModifiedText: "修正說明", CurrentText: "總說明"},
		),
		billWith("20250102_2_民法修正草案.docx", []string{"王小明"},
			domain.ArticleEntry{ModifiedText: "", CurrentText: "第一章 總則"},
			domain.ArticleEntry{ModifiedText: "第二條 乙乙", CurrentText: "第二條 現行"},
		),
	})

	want := []string{"第一章", "第二條"}
	if len(a.Titles) != len(want) || a.Titles[0] != want[0] || a.Titles[1] != want[1] {
		t.Fatalf("Titles = %v, want %v", a.Titles, want)
	}
	if got := a.CurrentLaw("第二條"); got != "第二條 現行" {
		t.Errorf("CurrentLaw(第二條) = %q", got)
	}
	if _, ok := a.Article(0, "第一章"); ok {
		t.Error("first bill has no 第一章")
	}
	if got := a.CurrentLaw("第九條"); got != domain.NoneText {
		t.Errorf("CurrentLaw of unknown article = %q, want 無", got)
	}
}

func TestBuildTableThreeVersions(t *testing.T) {
	t.Parallel()

	roster := testRoster()
	bills := []domain.Bill{
		billWith("20250301_1_民法部分條文修正草案.docx", []string{"行政院"},
			domain.ArticleEntry{ModifiedText: "第一條 甲乙", CurrentText: "第一條 甲", Explanation: "說明"}),
		billWith("20250302_2_民法修正草案.docx", []string{"王小明"},
			domain.ArticleEntry{ModifiedText: "第一條 甲丙", Explanation: "說明"}),
		billWith("20250303_3_民法第一條修正草案.docx", []string{"李大華"},
			domain.ArticleEntry{ModifiedText: "第一條 甲丁", Explanation: "說明補充"}),
	}

	table := testRenderer().BuildTable(bills, roster)
	if len(table.Rows) != 1 {
		t.Fatalf("expected one aligned row, got %d", len(table.Rows))
	}
	row := table.Rows[0]
	if row.Title != "第一條" || row.CurrentLaw != "第一條 甲" {
		t.Fatalf("unexpected row header %q / %q", row.Title, row.CurrentLaw)
	}

	wantAdded := []string{"乙", "丙", "丁"}
	for i, cell := range row.Bodies {
		if cell.Missing {
			t.Fatalf("body %d unexpectedly missing", i)
		}
		if got := addedText(cell.Segments); got != wantAdded[i] {
			t.Errorf("body %d added = %q, want %q", i, got, wantAdded[i])
		}
	}

	labels := []string{table.Columns[0].Label, table.Columns[1].Label, table.Columns[2].Label}
	if labels[0] != "行政院" || labels[1] != string(domain.DPP) || labels[2] != string(domain.KMT) {
		t.Errorf("column labels = %v", labels)
	}
	if !row.HasDifference() {
		t.Error("row should report a difference")
	}
}

func TestBuildTableBodyFallsBackToFirstVersion(t *testing.T) {
	t.Parallel()

	table := testRenderer().BuildTable([]domain.Bill{
		billWith("20250101_1_新法草案.docx", []string{"行政院"}, domain.ArticleEntry{ModifiedText: "第一條 甲"}),
		billWith("20250102_2_新法草案.docx", []string{"王小明"}, domain.ArticleEntry{ModifiedText: "第一條 甲乙"}),
	}, testRoster())

	row := table.Rows[0]
	if row.CurrentLaw != domain.NoneText {
		t.Fatalf("CurrentLaw = %q, want 無", row.CurrentLaw)
	}
	if row.Bodies[0].HasAddition() {
		t.Error("first version diffs against itself and must not highlight")
	}
	if got := addedText(row.Bodies[1].Segments); got != "乙" {
		t.Errorf("second version added = %q, want 乙", got)
	}
}

func TestBuildTableMissingArticle(t *testing.T) {
	t.Parallel()

	table := testRenderer().BuildTable([]domain.Bill{
		billWith("20250101_1_民法草案.docx", []string{"行政院"},
			domain.ArticleEntry{ModifiedText: "第一條 甲", CurrentText: "第一條"},
			domain.ArticleEntry{ModifiedText: "第二條 乙"}),
		billWith("20250102_2_民法草案.docx", []string{"王小明"},
			domain.ArticleEntry{ModifiedText: "第一條 甲甲"}),
	}, testRoster())

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	second := table.Rows[1]
	if second.Title != "第二條" {
		t.Fatalf("unexpected row order: %q", second.Title)
	}
	if !second.Bodies[1].Missing || second.Bodies[1].Text() != domain.MissingArticle {
		t.Errorf("missing body = %+v", second.Bodies[1])
	}
	if !second.Explanations[1].Missing || second.Explanations[1].Text() != domain.NoColumn {
		t.Errorf("missing explanation = %+v", second.Explanations[1])
	}
}

func TestExplanationDiffIsChained(t *testing.T) {
	t.Parallel()

	build := func(e0, e1, e2 string) Row {
		return testRenderer().BuildTable([]domain.Bill{
			billWith("20250101_1_x.docx", []string{"行政院"}, domain.ArticleEntry{ModifiedText: "第一條", Explanation: e0}),
			billWith("20250102_2_x.docx", []string{"王小明"}, domain.ArticleEntry{ModifiedText: "第一條", Explanation: e1}),
			billWith("20250103_3_x.docx", []string{"李大華"}, domain.ArticleEntry{ModifiedText: "第一條", Explanation: e2}),
		}, testRoster()).Rows[0]
	}

	r := testRenderer()

	row := build("理由甲", "理由甲", "理由甲補充乙")
	if row.Explanations[0].HasAddition() {
		t.Error("first explanation is never diffed")
	}
	if row.Explanations[1].HasAddition() {
		t.Error("identical explanation must not highlight")
	}
	if got, want := addedText(row.Explanations[2].Segments), addedText(r.Render("理由甲", "理由甲補充乙")); got != want {
		t.Errorf("version 2 added = %q, want %q", got, want)
	}

	row = build("甲", "甲乙", "甲乙丙")
	if got := addedText(row.Explanations[2].Segments); got != "丙" {
		t.Errorf("chained diff added = %q, want 丙 (diff against previous version)", got)
	}
	if got := addedText(row.Explanations[1].Segments); got != "乙" {
		t.Errorf("version 1 added = %q, want 乙", got)
	}
}

func TestExplanationDefaultsToNone(t *testing.T) {
	t.Parallel()

	row := testRenderer().BuildTable([]domain.Bill{
		billWith("20250101_1_x.docx", []string{"行政院"}, domain.ArticleEntry{ModifiedText: "第一條"}),
		billWith("20250102_2_x.docx", []string{"王小明"}, domain.ArticleEntry{ModifiedText: "第一條"}),
	}, testRoster()).Rows[0]

	for i, cell := range row.Explanations {
		if cell.Text() != domain.NoneText {
			t.Errorf("explanation %d = %q, want 無", i, cell.Text())
		}
	}
}
