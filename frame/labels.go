package frame

import (
	"errors"
	"fmt"
)

// ErrDuplicateLabel is returned when a gage or segment label is registered
// twice within its own category.
var ErrDuplicateLabel = errors.New("frame: duplicate label")

// Range is an inclusive run of column positions belonging to one segment.
type Range struct {
	Start int
	End   int
}

// Width returns the number of columns covered by the range.
func (r Range) Width() int { return r.End - r.Start + 1 }

// LabelIndex maps gage names to single column positions and segment names to
// contiguous column ranges. It is built once by the reader from the
// gage/segment annotation row and never mutated afterwards.
//
// Labels are unique within their own category; listing order is insertion
// order, which for reader-built indexes is column order.
type LabelIndex struct {
	gages        map[string]int
	segments     map[string]Range
	gageOrder    []string
	segmentOrder []string
}

// NewLabelIndex returns an empty index.
func NewLabelIndex() *LabelIndex {
	return &LabelIndex{
		gages:    make(map[string]int),
		segments: make(map[string]Range),
	}
}

// AddGage registers a gage label at a column position.
func (ix *LabelIndex) AddGage(label string, col int) error {
	if _, ok := ix.gages[label]; ok {
		return fmt.Errorf("%w: gage %q", ErrDuplicateLabel, label)
	}

	ix.gages[label] = col
	ix.gageOrder = append(ix.gageOrder, label)

	return nil
}

// AddSegment registers a segment label over an inclusive column range.
func (ix *LabelIndex) AddSegment(label string, r Range) error {
	if _, ok := ix.segments[label]; ok {
		return fmt.Errorf("%w: segment %q", ErrDuplicateLabel, label)
	}

	if r.Start < 0 || r.End < r.Start {
		return fmt.Errorf("%w: segment %q range [%d, %d]", ErrShapeMismatch, label, r.Start, r.End)
	}

	ix.segments[label] = r
	ix.segmentOrder = append(ix.segmentOrder, label)

	return nil
}

// Gage resolves a gage label to its column position.
func (ix *LabelIndex) Gage(label string) (int, bool) {
	col, ok := ix.gages[label]
	return col, ok
}

// Segment resolves a segment label to its column range.
func (ix *LabelIndex) Segment(label string) (Range, bool) {
	r, ok := ix.segments[label]
	return r, ok
}

// Gages lists all gage labels in insertion order.
func (ix *LabelIndex) Gages() []string { return ix.gageOrder }

// Segments lists all segment labels in insertion order.
func (ix *LabelIndex) Segments() []string { return ix.segmentOrder }

// MaxColumn returns the highest column position referenced by any label,
// or -1 for an empty index. Used to validate an index against a frame width.
func (ix *LabelIndex) MaxColumn() int {
	maxCol := -1
	for _, col := range ix.gages {
		if col > maxCol {
			maxCol = col
		}
	}

	for _, r := range ix.segments {
		if r.End > maxCol {
			maxCol = r.End
		}
	}

	return maxCol
}
