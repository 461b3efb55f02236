package stats

import "math"

// Stats holds statistics of one strain channel, in the channel's own unit
// (microstrain for the instrument's default export).
type Stats struct {
	Length   int     // total samples, including NaN
	Missing  int     // NaN samples skipped
	Mean     float64
	RMS      float64
	Min      float64
	MinPos   int     // row index of the minimum
	Max      float64
	MaxPos   int     // row index of the maximum
	Range    float64 // max - min
	Variance float64
	StdDev   float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
}

// emptyStats is the result for channels without a single finite sample.
func emptyStats(length int) Stats {
	return Stats{
		Length:   length,
		Missing:  length,
		Mean:     math.NaN(),
		RMS:      math.NaN(),
		Min:      math.NaN(),
		MinPos:   -1,
		Max:      math.NaN(),
		MaxPos:   -1,
		Range:    math.NaN(),
		Variance: math.NaN(),
		StdDev:   math.NaN(),
		Skewness: math.NaN(),
		Kurtosis: math.NaN(),
	}
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for numerical stability on the higher-order moments.
func Calculate(samples []float64) Stats {
	var (
		n    int
		mean float64
		m2   float64
		m3   float64
		m4   float64

		sumSq   float64
		minVal  float64
		minPos  = -1
		maxVal  float64
		maxPos  = -1
		missing int
	)

	for i, x := range samples {
		if math.IsNaN(x) {
			missing++
			continue
		}

		n++

		// Welford update; M4 before M3, M3 before M2.
		ni := float64(n)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * (ni - 1)

		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(ni-2) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if minPos < 0 || x < minVal {
			minVal = x
			minPos = i
		}

		if maxPos < 0 || x > maxVal {
			maxVal = x
			maxPos = i
		}
	}

	if n == 0 {
		return emptyStats(len(samples))
	}

	variance := m2 / float64(n)

	s := Stats{
		Length:   len(samples),
		Missing:  missing,
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / float64(n)),
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		Range:    maxVal - minVal,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}

	if variance > 0 {
		s.Skewness = math.Sqrt(float64(n)) * m3 / math.Pow(m2, 1.5)
		s.Kurtosis = float64(n)*m4/(m2*m2) - 3
	}

	return s
}
