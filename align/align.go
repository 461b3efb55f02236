package align

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cwbudde/algo-odisi/frame"
)

// Errors returned by alignment functions.
var (
	ErrEmptyTimeline  = errors.New("align: timeline is empty")
	ErrTargetTooShort = errors.New("align: target timeline needs at least two samples after clipping")
	ErrNotIncreasing  = errors.New("align: timestamps must be strictly increasing")
	ErrLengthMismatch = errors.New("align: timestamp and signal lengths differ")
)

// Resample moves every channel of src onto the target clock.
//
// The output frame has exactly the (post-clip) target timestamps as its
// timeline and one linearly interpolated value per channel per row. Target
// timestamps that coincide with a source timestamp take the source value
// unchanged; timestamps outside the source span come back NaN unless
// [WithClip] is set. src is never modified.
//
// The target must be strictly increasing and, because the caller derives the
// new effective sample rate from the first two output rows, must retain at
// least two rows after clipping.
func Resample(src *frame.Frame, target []time.Time, opts ...Option) (*frame.Frame, error) {
	cfg := applyOptions(opts...)

	if src.Len() == 0 || len(target) == 0 {
		return nil, ErrEmptyTimeline
	}

	tgtTicks := ticksOf(target)
	if err := validateIncreasing(tgtTicks); err != nil {
		return nil, err
	}

	srcTicks := src.Ticks()

	srcLo, srcHi := 0, src.Len()
	tgtLo, tgtHi := 0, len(target)

	if cfg.Clip {
		lo := maxInt64(srcTicks[0], tgtTicks[0])
		hi := minInt64(srcTicks[len(srcTicks)-1], tgtTicks[len(tgtTicks)-1])
		srcLo, srcHi = clipRange(srcTicks, lo, hi)
		tgtLo, tgtHi = clipRange(tgtTicks, lo, hi)
	}

	if tgtHi-tgtLo < 2 {
		return nil, fmt.Errorf("%w: %d rows", ErrTargetTooShort, tgtHi-tgtLo)
	}

	outTimes := make([]time.Time, tgtHi-tgtLo)
	copy(outTimes, target[tgtLo:tgtHi])

	outTicks := tgtTicks[tgtLo:tgtHi]
	clippedSrc := srcTicks[srcLo:srcHi]

	cols := make([][]float64, src.Width())
	for i := range cols {
		cols[i] = resampleColumn(clippedSrc, src.Column(i)[srcLo:srcHi], outTicks)
	}

	return frame.New(outTimes, src.Names(), cols)
}

// Project moves an external signal onto the sensor clock.
//
// The returned timeline is the (post-clip) sensor timeline and the returned
// values are the signal linearly interpolated at those instants, NaN where
// the sensor timestamp falls outside the signal span. Neither input is
// modified.
func Project(sensor []time.Time, signalTime []time.Time, signal []float64, opts ...Option) ([]time.Time, []float64, error) {
	cfg := applyOptions(opts...)

	if len(signalTime) != len(signal) {
		return nil, nil, fmt.Errorf("%w: %d timestamps for %d values",
			ErrLengthMismatch, len(signalTime), len(signal))
	}

	if len(sensor) == 0 || len(signal) == 0 {
		return nil, nil, ErrEmptyTimeline
	}

	sensorTicks := ticksOf(sensor)
	if err := validateIncreasing(sensorTicks); err != nil {
		return nil, nil, err
	}

	sigTicks := ticksOf(signalTime)
	if err := validateIncreasing(sigTicks); err != nil {
		return nil, nil, err
	}

	sensorLo, sensorHi := 0, len(sensor)
	sigLo, sigHi := 0, len(signal)

	if cfg.Clip {
		lo := maxInt64(sensorTicks[0], sigTicks[0])
		hi := minInt64(sensorTicks[len(sensorTicks)-1], sigTicks[len(sigTicks)-1])
		sensorLo, sensorHi = clipRange(sensorTicks, lo, hi)
		sigLo, sigHi = clipRange(sigTicks, lo, hi)
	}

	outTimes := make([]time.Time, sensorHi-sensorLo)
	copy(outTimes, sensor[sensorLo:sensorHi])

	values := resampleColumn(sigTicks[sigLo:sigHi], signal[sigLo:sigHi], sensorTicks[sensorLo:sensorHi])

	return outTimes, values, nil
}

// resampleColumn evaluates one channel at every destination tick.
//
// Both tick slices are strictly increasing, so a single forward pass finds
// the bracketing source samples for every destination timestamp. Exact tick
// matches pass the source value through untouched; destination ticks outside
// the source span have no bracketing neighbor on one side and stay NaN.
func resampleColumn(srcTicks []int64, src []float64, dst []int64) []float64 {
	out := make([]float64, len(dst))

	j := 0
	for i, t := range dst {
		for j < len(srcTicks) && srcTicks[j] < t {
			j++
		}

		switch {
		case j < len(srcTicks) && srcTicks[j] == t:
			out[i] = src[j]
		case j == 0 || j == len(srcTicks):
			out[i] = math.NaN()
		default:
			out[i] = lerpTick(srcTicks[j-1], src[j-1], srcTicks[j], src[j], t)
		}
	}

	return out
}

// lerpTick interpolates between (t0, v0) and (t1, v1) at tick t, weighting by
// elapsed time rather than row position.
func lerpTick(t0 int64, v0 float64, t1 int64, v1 float64, t int64) float64 {
	frac := float64(t-t0) / float64(t1-t0)
	return v0 + frac*(v1-v0)
}

func ticksOf(times []time.Time) []int64 {
	ticks := make([]int64, len(times))
	for i, t := range times {
		ticks[i] = t.UnixNano()
	}

	return ticks
}

func validateIncreasing(ticks []int64) error {
	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			return fmt.Errorf("%w: row %d does not advance past row %d", ErrNotIncreasing, i, i-1)
		}
	}

	return nil
}

// clipRange returns the half-open index range of ticks within [lo, hi].
func clipRange(ticks []int64, lo, hi int64) (int, int) {
	first := sort.Search(len(ticks), func(i int) bool { return ticks[i] >= lo })
	last := sort.Search(len(ticks), func(i int) bool { return ticks[i] > hi })

	return first, last
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}

	return b
}
