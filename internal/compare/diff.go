package compare

import (
	"log/slog"
	"strings"

	"BillCompare/internal/domain"
	"BillCompare/internal/ports"
)

// Segment is a run of rendered text; Added marks text absent from the base.
type Segment struct {
	Text  string `json:"text"`
	Added bool   `json:"added,omitempty"`
}

// Renderer produces additions-only renderings of one text against another.
type Renderer struct {
	differ ports.Differ
	logger *slog.Logger
}

// NewRenderer wires a character differ. A nil differ renders plain text.
func NewRenderer(differ ports.Differ, logger *slog.Logger) Renderer {
	return Renderer{differ: differ, logger: logger}
}

// Render shows next with the characters it adds over base marked. Text
// removed from base is never shown.
func (r Renderer) Render(base, next string) []Segment {
	if base == next || next == "" {
		return plain(next)
	}
	if base == "" || base == domain.NoneText {
		return plain(next)
	}
	if r.differ == nil {
		r.warn("no differ configured, rendering plain text")
		return plain(next)
	}
	segments, ok := r.diff(base, next)
	if !ok {
		return plain(next)
	}
	return segments
}

func (r Renderer) diff(base, next string) (out []Segment, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.warn("differ failed, rendering plain text", "panic", rec)
			out, ok = nil, false
		}
	}()

	for _, seg := range r.differ.DiffChars(base, next) {
		switch seg.Op {
		case ports.DiffDelete:
			continue
		case ports.DiffInsert:
			out = appendSegment(out, Segment{Text: seg.Text, Added: true})
		default:
			out = appendSegment(out, Segment{Text: seg.Text})
		}
	}
	return out, true
}

func (r Renderer) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func appendSegment(out []Segment, seg Segment) []Segment {
	if seg.Text == "" {
		return out
	}
	if n := len(out); n > 0 && out[n-1].Added == seg.Added {
		out[n-1].Text += seg.Text
		return out
	}
	return append(out, seg)
}

func plain(text string) []Segment {
	if text == "" {
		return []Segment{}
	}
	return []Segment{{Text: text}}
}

// Join concatenates segment text without markup.
func Join(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// HasAddition reports whether any segment is marked added.
func HasAddition(segments []Segment) bool {
	for _, seg := range segments {
		if seg.Added {
			return true
		}
	}
	return false
}
