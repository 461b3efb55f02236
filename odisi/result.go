package odisi

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-odisi/align"
	"github.com/cwbudde/algo-odisi/frame"
	"github.com/cwbudde/algo-odisi/stats"
)

// Errors returned by result construction and queries.
var (
	ErrLabelNotFound      = errors.New("odisi: label does not exist")
	ErrIncompatibleSignal = errors.New("odisi: incompatible signal input")
)

// Result holds the data of one measurement channel: the time-indexed channel
// table, the measurement positions along the sensor, the parsed metadata and
// an optional label index for gage/segment retrieval.
type Result struct {
	mu     sync.RWMutex
	frame  *frame.Frame
	x      []float64
	labels *frame.LabelIndex
	meta   Metadata
	header map[string]string
}

// New builds a plain Result without gage or segment labels.
//
// The coordinate array must hold one position per channel column; a length
// disagreement is reported as [frame.ErrShapeMismatch].
func New(f *frame.Frame, x []float64, meta Metadata) (*Result, error) {
	return NewWithLabels(f, x, nil, meta)
}

// NewWithLabels builds a gage-annotated Result. A nil index is equivalent to
// [New]; a non-nil index must not reference columns beyond the frame width.
func NewWithLabels(f *frame.Frame, x []float64, labels *frame.LabelIndex, meta Metadata) (*Result, error) {
	if len(x) != f.Width() {
		return nil, fmt.Errorf("%w: %d coordinates for %d columns",
			frame.ErrShapeMismatch, len(x), f.Width())
	}

	if labels != nil && labels.MaxColumn() >= f.Width() {
		return nil, fmt.Errorf("%w: label index references column %d, frame width is %d",
			frame.ErrShapeMismatch, labels.MaxColumn(), f.Width())
	}

	return &Result{frame: f, x: x, labels: labels, meta: meta}, nil
}

// X returns the measurement positions along the sensor, one per column.
// Callers must not modify the returned slice.
func (r *Result) X() []float64 { return r.x }

// Channel returns the instrument channel number.
func (r *Result) Channel() int { return r.meta.Channel }

// GagePitch returns the physical spacing between measurement points in mm.
func (r *Result) GagePitch() float64 { return r.meta.GagePitch }

// Rate returns the current effective sample rate field; see [Metadata].
func (r *Result) Rate() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.meta.Rate
}

// Time returns the sensor timeline. Callers must not modify the returned
// slice, and must not retain it across a call to Align.
func (r *Result) Time() []time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frame.Times()
}

// Frame returns the underlying channel table. Callers must not modify it,
// and must not retain it across a call to Align.
func (r *Result) Frame() *frame.Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.frame
}

// HeaderValue returns a raw metadata value from the export's header block.
func (r *Result) HeaderValue(key string) (string, bool) {
	v, ok := r.header[key]
	return v, ok
}

// Gages lists all gage labels in column order.
func (r *Result) Gages() []string {
	if r.labels == nil {
		return nil
	}

	return r.labels.Gages()
}

// Segments lists all segment labels in column order.
func (r *Result) Segments() []string {
	if r.labels == nil {
		return nil
	}

	return r.labels.Segments()
}

// Gage returns the samples of the named gage column.
func (r *Result) Gage(label string) ([]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	col, err := r.gageColumn(label)
	if err != nil {
		return nil, err
	}

	return r.frame.Column(col), nil
}

// GageFrame returns the named gage as a one-column frame carrying the
// timeline, the with-time form of [Result.Gage].
func (r *Result) GageFrame(label string) (*frame.Frame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	col, err := r.gageColumn(label)
	if err != nil {
		return nil, err
	}

	return r.frame.Select(col, col)
}

// Segment returns the named segment as a sub-frame spanning its column
// range and carrying the timeline.
func (r *Result) Segment(label string) (*frame.Frame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rng, err := r.segmentRange(label)
	if err != nil {
		return nil, err
	}

	return r.frame.Select(rng.Start, rng.End)
}

// SegmentColumns returns the bare sample columns of the named segment,
// without the timeline.
func (r *Result) SegmentColumns(label string) ([][]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rng, err := r.segmentRange(label)
	if err != nil {
		return nil, err
	}

	cols := make([][]float64, rng.Width())
	for i := range cols {
		cols[i] = r.frame.Column(rng.Start + i)
	}

	return cols, nil
}

// SegmentX returns the measurement positions covered by the named segment.
func (r *Result) SegmentX(label string) ([]float64, error) {
	rng, err := r.segmentRange(label)
	if err != nil {
		return nil, err
	}

	return r.x[rng.Start : rng.End+1], nil
}

// GageStats computes single-pass statistics over the named gage's samples.
func (r *Result) GageStats(label string) (stats.Stats, error) {
	samples, err := r.Gage(label)
	if err != nil {
		return stats.Stats{}, err
	}

	return stats.Calculate(samples), nil
}

func (r *Result) gageColumn(label string) (int, error) {
	if r.labels == nil {
		return 0, fmt.Errorf("%w: gage %q", ErrLabelNotFound, label)
	}

	col, ok := r.labels.Gage(label)
	if !ok {
		return 0, fmt.Errorf("%w: gage %q", ErrLabelNotFound, label)
	}

	return col, nil
}

func (r *Result) segmentRange(label string) (frame.Range, error) {
	if r.labels == nil {
		return frame.Range{}, fmt.Errorf("%w: segment %q", ErrLabelNotFound, label)
	}

	rng, ok := r.labels.Segment(label)
	if !ok {
		return frame.Range{}, fmt.Errorf("%w: segment %q", ErrLabelNotFound, label)
	}

	return rng, nil
}

// Align resamples the sensor's own data onto the target clock.
//
// The replacement table and rate are computed on a staging copy and swapped
// in only when the whole computation succeeds, so a failed alignment leaves
// the Result untouched. On success the sensor timeline, every channel and
// the rate field are replaced, and the new timeline is returned.
//
// Target timestamps outside the recorded span interpolate to NaN; pass
// [align.WithClip] to drop them instead.
func (r *Result) Align(target []time.Time, opts ...align.Option) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged, err := align.Resample(r.frame, target, opts...)
	if err != nil {
		return nil, err
	}

	// Resample guarantees at least two rows, so the spacing is defined.
	ts := staged.Times()
	r.frame = staged
	r.meta.Rate = ts[1].Sub(ts[0]).Seconds()

	return ts, nil
}

// AlignFrame is [Result.Align] for a target supplied as a single-column
// table: only the table's timeline is used.
func (r *Result) AlignFrame(target *frame.Frame, opts ...align.Option) ([]time.Time, error) {
	return r.Align(target.Times(), opts...)
}

// AlignSeconds is [Result.Align] for a target expressed as elapsed seconds
// since the sensor's first timestamp. Fractional seconds are allowed; each
// offset is rounded to a whole nanosecond so the output timestamps match the
// converted target exactly.
func (r *Result) AlignSeconds(offsets []float64, opts ...align.Option) ([]time.Time, error) {
	target, err := r.absoluteTimes(offsets)
	if err != nil {
		return nil, err
	}

	return r.Align(target, opts...)
}

// absoluteTimes converts relative offsets in seconds to absolute instants
// anchored at the sensor's first timestamp.
func (r *Result) absoluteTimes(offsets []float64) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.frame.Len() == 0 {
		return nil, align.ErrEmptyTimeline
	}

	t0 := r.frame.Times()[0]

	target := make([]time.Time, len(offsets))
	for i, sec := range offsets {
		target[i] = t0.Add(time.Duration(math.Round(sec * float64(time.Second))))
	}

	return target, nil
}
