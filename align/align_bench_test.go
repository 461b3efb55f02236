package align

import (
	"testing"
	"time"

	"github.com/cwbudde/algo-odisi/frame"
)

func benchFrame(b *testing.B, rows, width int) *frame.Frame {
	b.Helper()

	times := make([]time.Time, rows)
	for i := range times {
		times[i] = sensorEpoch.Add(time.Duration(i) * 960 * time.Millisecond)
	}

	names := make([]string, width)
	cols := make([][]float64, width)
	for c := range cols {
		names[c] = "ch"
		col := make([]float64, rows)
		for i := range col {
			col[i] = float64(i % 17)
		}
		cols[c] = col
	}

	f, err := frame.New(times, names, cols)
	if err != nil {
		b.Fatal(err)
	}

	return f
}

func BenchmarkResample(b *testing.B) {
	src := benchFrame(b, 10000, 32)

	target := make([]time.Time, 4000)
	for i := range target {
		target[i] = sensorEpoch.Add(time.Duration(i) * 2400 * time.Millisecond)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Resample(src, target); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkProject(b *testing.B) {
	sensor := make([]time.Time, 10000)
	for i := range sensor {
		sensor[i] = sensorEpoch.Add(time.Duration(i) * 960 * time.Millisecond)
	}

	signalTime := make([]time.Time, 5000)
	signal := make([]float64, 5000)
	for i := range signalTime {
		signalTime[i] = sensorEpoch.Add(time.Duration(i) * 2 * time.Second)
		signal[i] = float64(i % 13)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Project(sensor, signalTime, signal); err != nil {
			b.Fatal(err)
		}
	}
}
