package diff

import (
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"BillCompare/internal/ports"
)

// CharDiffer implements ports.Differ on top of diff-match-patch.
type CharDiffer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

var _ ports.Differ = (*CharDiffer)(nil)

// NewCharDiffer builds a differ. A zero timeout searches for the minimal diff.
func NewCharDiffer(timeout time.Duration) *CharDiffer {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	return &CharDiffer{dmp: dmp}
}

// DiffChars returns the character-level edit script turning base into next.
func (c *CharDiffer) DiffChars(base, next string) []ports.DiffSegment {
	diffs := c.dmp.DiffMain(base, next, false)
	out := make([]ports.DiffSegment, 0, len(diffs))
	for _, d := range diffs {
		out = append(out, ports.DiffSegment{Op: toOp(d.Type), Text: d.Text})
	}
	return out
}

func toOp(op diffmatchpatch.Operation) ports.DiffOp {
	switch op {
	case diffmatchpatch.DiffInsert:
		return ports.DiffInsert
	case diffmatchpatch.DiffDelete:
		return ports.DiffDelete
	default:
		return ports.DiffEqual
	}
}
