package syntax

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ErrOverlappingEdits is returned by Apply when two edits touch the same bytes.
var ErrOverlappingEdits = errors.New("overlapping edits")

// Edit replaces Source[Start:End] with Text. Start == End is an insertion.
type Edit struct {
	Start uint
	End   uint
	Text  string
}

// Replace returns an edit replacing the whole of n.
func Replace(n *ts.Node, text string) Edit {
	return Edit{Start: n.StartByte(), End: n.EndByte(), Text: text}
}

// Insert returns an insertion at a byte offset.
func Insert(at uint, text string) Edit {
	return Edit{Start: at, End: at, Text: text}
}

// Delete returns an edit removing [start, end).
func Delete(start, end uint) Edit {
	return Edit{Start: start, End: end}
}

// Splice applies edits to src. Insertions at the same offset keep the
// order they were given in, and overlapping deletions are merged; any
// other overlap is an error.
func Splice(src []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var b strings.Builder
	b.Grow(len(src))
	var pos uint
	lastDelete := false
	for _, e := range sorted {
		if e.End < e.Start || e.End > uint(len(src)) {
			return nil, fmt.Errorf("edit [%d,%d) out of range", e.Start, e.End)
		}
		isDelete := e.Text == "" && e.End > e.Start
		if e.Start < pos {
			// Overlapping deletions are merged.
			if !isDelete || !lastDelete {
				return nil, fmt.Errorf("%w: [%d,%d) starts before %d", ErrOverlappingEdits, e.Start, e.End, pos)
			}
			pos = max(pos, e.End)
			continue
		}
		b.Write(src[pos:e.Start])
		b.WriteString(e.Text)
		pos = e.End
		lastDelete = isDelete
	}
	b.Write(src[pos:])
	return []byte(b.String()), nil
}

// Apply splices edits into the file's source and re-parses the result.
// With no edits the receiver itself is returned.
func (f *File) Apply(edits []Edit) (*File, error) {
	if len(edits) == 0 {
		return f, nil
	}
	out, err := Splice(f.Source, edits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return Parse(f.pm, f.Path, out)
}

// RemoveNode returns an edit deleting n together with its line when n is
// the only thing on it.
func (f *File) RemoveNode(n *ts.Node) Edit {
	start, end := ExpandToLines(f.Source, n.StartByte(), n.EndByte())
	return Delete(start, end)
}
