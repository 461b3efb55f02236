package frame

import (
	"errors"
	"fmt"
	"time"
)

// Errors returned by frame construction and validation.
var (
	ErrShapeMismatch = errors.New("frame: channel lengths disagree with timeline")
	ErrNotIncreasing = errors.New("frame: timestamps must be strictly increasing")
)

// Frame is an ordered, time-indexed table of numeric channels.
//
// The timeline is strictly increasing and every channel holds exactly one
// sample per timestamp. Channels are addressed by position; names are
// descriptive only and may repeat.
type Frame struct {
	times []time.Time
	names []string
	cols  [][]float64
}

// New builds a Frame from a timeline, per-column names and channel data.
//
// It returns [ErrShapeMismatch] when the number of names differs from the
// number of columns or any column length differs from the timeline length,
// and [ErrNotIncreasing] when the timeline is not strictly increasing
// (duplicate timestamps are a data-quality error, not silently handled).
func New(times []time.Time, names []string, cols [][]float64) (*Frame, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrShapeMismatch, len(names), len(cols))
	}

	for i, col := range cols {
		if len(col) != len(times) {
			return nil, fmt.Errorf("%w: column %d has %d samples, timeline has %d",
				ErrShapeMismatch, i, len(col), len(times))
		}
	}

	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, fmt.Errorf("%w: row %d (%v) does not advance past row %d (%v)",
				ErrNotIncreasing, i, times[i], i-1, times[i-1])
		}
	}

	return &Frame{times: times, names: names, cols: cols}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.times) }

// Width returns the number of channel columns.
func (f *Frame) Width() int { return len(f.cols) }

// Times returns the timeline. Callers must not modify the returned slice.
func (f *Frame) Times() []time.Time { return f.times }

// Name returns the display name of column i.
func (f *Frame) Name(i int) string { return f.names[i] }

// Names returns all column names in order. Callers must not modify the
// returned slice.
func (f *Frame) Names() []string { return f.names }

// Column returns the samples of column i. Callers must not modify the
// returned slice.
func (f *Frame) Column(i int) []float64 { return f.cols[i] }

// Select returns a view containing columns lo through hi inclusive, sharing
// the timeline and column storage with the receiver.
func (f *Frame) Select(lo, hi int) (*Frame, error) {
	if lo < 0 || hi >= len(f.cols) || lo > hi {
		return nil, fmt.Errorf("%w: column range [%d, %d] outside width %d",
			ErrShapeMismatch, lo, hi, len(f.cols))
	}

	return &Frame{
		times: f.times,
		names: f.names[lo : hi+1],
		cols:  f.cols[lo : hi+1],
	}, nil
}

// Clone returns a deep copy. Alignment stages its replacement table on a
// clone so a failed computation leaves the original untouched.
func (f *Frame) Clone() *Frame {
	times := make([]time.Time, len(f.times))
	copy(times, f.times)

	names := make([]string, len(f.names))
	copy(names, f.names)

	cols := make([][]float64, len(f.cols))
	for i, col := range f.cols {
		cols[i] = make([]float64, len(col))
		copy(cols[i], col)
	}

	return &Frame{times: times, names: names, cols: cols}
}

// Ticks returns the timeline as whole nanoseconds since the Unix epoch.
// All merge and membership logic works on these integer keys.
func (f *Frame) Ticks() []int64 {
	ticks := make([]int64, len(f.times))
	for i, t := range f.times {
		ticks[i] = t.UnixNano()
	}

	return ticks
}
