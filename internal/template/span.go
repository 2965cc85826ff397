package template

import (
	"fmt"
	"sort"
)

// Span is a byte-offset range into the source. Start is inclusive,
// End exclusive.
type Span struct {
	Start int
	End   int
}

func (s Span) Empty() bool { return s.Start >= s.End }

func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Position is a 1-indexed line/column pair. Column counts bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a half-open [Start, End) region in line/column terms.
type Location struct {
	Start Position
	End   Position
}

// lineIndex maps byte offsets to line/column positions.
type lineIndex struct {
	// starts[i] is the byte offset of the first byte of line i+1.
	starts []int
}

func newLineIndex(source []byte) *lineIndex {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// position converts a byte offset to a 1-indexed Position.
func (li *lineIndex) position(offset int) Position {
	i := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	return Position{Line: i + 1, Column: offset - li.starts[i] + 1}
}

// lineOf returns the 1-indexed line containing the byte offset.
func (li *lineIndex) lineOf(offset int) int {
	return li.position(offset).Line
}
