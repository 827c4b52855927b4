package compare

import (
	"testing"

	"BillCompare/internal/domain"
	chardiff "BillCompare/internal/infrastructure/diff"
	"BillCompare/internal/ports"
)

func testRenderer() Renderer {
	return NewRenderer(chardiff.NewCharDiffer(0), nil)
}

func addedText(segments []Segment) string {
	var out string
	for _, seg := range segments {
		if seg.Added {
			out += seg.Text
		}
	}
	return out
}

func TestRenderPlainCases(t *testing.T) {
	t.Parallel()

	r := testRenderer()
	cases := []struct {
		name       string
		base, next string
		want       string
	}{
		{"equal", "第一條 甲", "第一條 甲", "第一條 甲"},
		{"empty next", "第一條 甲", "", ""},
		{"empty base", "", "第一條 乙", "第一條 乙"},
		{"none base", domain.NoneText, "第一條 乙", "第一條 乙"},
	}
	for _, tc := range cases {
		got := r.Render(tc.base, tc.next)
		if HasAddition(got) {
			t.Errorf("%s: unexpected highlight in %v", tc.name, got)
		}
		if Join(got) != tc.want {
			t.Errorf("%s: Render = %q, want %q", tc.name, Join(got), tc.want)
		}
	}
}

func TestRenderHighlightsAdditionsOnly(t *testing.T) {
	t.Parallel()

	r := testRenderer()

	got := r.Render("第一條 本法依憲法制定之。", "第一條 本法依憲法第六十一條制定之。")
	if addedText(got) != "第六十一條" {
		t.Fatalf("added = %q, want 第六十一條", addedText(got))
	}

	got = r.Render("甲乙丙", "甲丙")
	if HasAddition(got) {
		t.Fatalf("pure deletion must not highlight: %v", got)
	}
	if Join(got) != "甲丙" {
		t.Fatalf("deleted text leaked into output: %q", Join(got))
	}
}

func TestRenderReproducesNewText(t *testing.T) {
	t.Parallel()

	r := testRenderer()
	pairs := [][2]string{
		{"罰鍰新臺幣三千元以上", "罰鍰新臺幣五千元以上一萬元以下"},
		{"第五條\n前項規定", "第五條\n前項及第二項規定，\n於施行後適用"},
		{"abc", "xyz"},
		{"一二三四五", "五四三二一"},
	}
	for _, p := range pairs {
		if got := Join(r.Render(p[0], p[1])); got != p[1] {
			t.Errorf("Render(%q, %q) text = %q", p[0], p[1], got)
		}
	}
}

func TestRenderWithoutDiffer(t *testing.T) {
	t.Parallel()

	got := NewRenderer(nil, nil).Render("甲", "甲乙")
	if HasAddition(got) || Join(got) != "甲乙" {
		t.Fatalf("nil differ should render plain text, got %v", got)
	}
}

type panickingDiffer struct{}

func (panickingDiffer) DiffChars(string, string) []ports.DiffSegment {
	panic("broken differ")
}

func TestRenderRecoversFromDifferFailure(t *testing.T) {
	t.Parallel()

	got := NewRenderer(panickingDiffer{}, nil).Render("甲", "甲乙")
	if HasAddition(got) || Join(got) != "甲乙" {
		t.Fatalf("failing differ should render plain text, got %v", got)
	}
}
