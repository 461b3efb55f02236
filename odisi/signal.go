package odisi

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-odisi/align"
	"github.com/cwbudde/algo-odisi/frame"
)

// defaultSignalName names the payload column when a signal arrives as raw
// arrays rather than as a table.
const defaultSignalName = "signal"

// InterpolateSignal resamples an externally recorded signal onto the sensor
// clock, e.g. load-cell data sampled on its own timebase.
//
// The result is a new one-column frame whose timeline is the sensor's own;
// sensor timestamps outside the signal's span carry NaN. The Result itself
// is never modified: its timeline, channels and rate are all left untouched.
func (r *Result) InterpolateSignal(signalTime []time.Time, signal []float64, opts ...align.Option) (*frame.Frame, error) {
	return r.interpolateSignal(signalTime, signal, defaultSignalName, opts...)
}

// InterpolateSignalFrame is [Result.InterpolateSignal] for a signal supplied
// as a table with a timestamp column and exactly one payload column.
func (r *Result) InterpolateSignalFrame(signal *frame.Frame, opts ...align.Option) (*frame.Frame, error) {
	if signal == nil {
		return nil, fmt.Errorf("%w: nil signal table", ErrIncompatibleSignal)
	}

	if signal.Width() != 1 {
		return nil, fmt.Errorf("%w: signal table needs exactly one payload column, got %d",
			ErrIncompatibleSignal, signal.Width())
	}

	return r.interpolateSignal(signal.Times(), signal.Column(0), signal.Name(0), opts...)
}

// InterpolateSignalSeconds is [Result.InterpolateSignal] for a signal whose
// timestamps are elapsed seconds since the sensor's first timestamp.
func (r *Result) InterpolateSignalSeconds(offsets []float64, signal []float64, opts ...align.Option) (*frame.Frame, error) {
	signalTime, err := r.absoluteTimes(offsets)
	if err != nil {
		return nil, err
	}

	return r.interpolateSignal(signalTime, signal, defaultSignalName, opts...)
}

func (r *Result) interpolateSignal(signalTime []time.Time, signal []float64, name string, opts ...align.Option) (*frame.Frame, error) {
	if len(signalTime) == 0 || len(signal) == 0 {
		return nil, fmt.Errorf("%w: empty signal", ErrIncompatibleSignal)
	}

	if len(signalTime) != len(signal) {
		return nil, fmt.Errorf("%w: %d timestamps for %d values",
			ErrIncompatibleSignal, len(signalTime), len(signal))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	times, values, err := align.Project(r.frame.Times(), signalTime, signal, opts...)
	if err != nil {
		return nil, err
	}

	return frame.New(times, []string{name}, [][]float64{values})
}

// SignalCoverage reports the fraction of sensor timestamps a projected
// signal actually covers, i.e. the share of non-NaN rows the corresponding
// [Result.InterpolateSignal] call would produce.
func SignalCoverage(projected *frame.Frame) float64 {
	if projected == nil || projected.Len() == 0 || projected.Width() == 0 {
		return 0
	}

	col := projected.Column(0)

	known := 0
	for _, v := range col {
		if !math.IsNaN(v) {
			known++
		}
	}

	return float64(known) / float64(len(col))
}
