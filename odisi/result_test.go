package odisi

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-odisi/frame"
)

var testEpoch = time.Date(2023, 9, 6, 12, 51, 28, 888946000, time.UTC)

func offsetTimes(offsets ...float64) []time.Time {
	times := make([]time.Time, len(offsets))
	for i, sec := range offsets {
		times[i] = testEpoch.Add(time.Duration(math.Round(sec * float64(time.Second))))
	}

	return times
}

// testResult builds a gage-annotated 6-row result sampled every 0.96 s
// (1.04167 Hz): five linear channels, gages Start/End at the edges and
// segment A1 spanning the middle three columns.
func testResult(t *testing.T) *Result {
	t.Helper()

	base := []float64{0, 1, -2, 4, 0.4}
	slope := []float64{1, 2, 4, -0.8, 0.4}

	cols := make([][]float64, 5)
	for c := range cols {
		cols[c] = make([]float64, 6)
		for i := range cols[c] {
			cols[c][i] = base[c] + float64(i)*slope[c]
		}
	}

	f, err := frame.New(
		offsetTimes(0, 0.96, 1.92, 2.88, 3.84, 4.80),
		[]string{"Start", "A1[0]", "A1[1]", "A1[2]", "End"},
		cols,
	)
	if err != nil {
		t.Fatal(err)
	}

	labels := frame.NewLabelIndex()
	if err := labels.AddGage("Start", 0); err != nil {
		t.Fatal(err)
	}
	if err := labels.AddGage("End", 4); err != nil {
		t.Fatal(err)
	}
	if err := labels.AddSegment("A1", frame.Range{Start: 1, End: 3}); err != nil {
		t.Fatal(err)
	}

	x := []float64{0, 0.00065, 0.0013, 0.00195, 0.0026}

	r, err := NewWithLabels(f, x, labels, Metadata{Channel: 1, Rate: 1.04167, GagePitch: 0.65})
	if err != nil {
		t.Fatal(err)
	}

	return r
}

func almostEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}

	return math.Abs(a-b) <= 1e-9
}

func TestResultProperties(t *testing.T) {
	r := testResult(t)

	if r.Channel() != 1 {
		t.Errorf("Channel() = %d, want 1", r.Channel())
	}

	if r.Rate() != 1.04167 {
		t.Errorf("Rate() = %v, want 1.04167", r.Rate())
	}

	if r.GagePitch() != 0.65 {
		t.Errorf("GagePitch() = %v, want 0.65", r.GagePitch())
	}

	if len(r.X()) != 5 {
		t.Errorf("len(X()) = %d, want 5", len(r.X()))
	}

	if len(r.Time()) != 6 {
		t.Errorf("len(Time()) = %d, want 6", len(r.Time()))
	}
}

func TestGageAccess(t *testing.T) {
	r := testResult(t)

	start, err := r.Gage("Start")
	if err != nil {
		t.Fatal(err)
	}

	if start[0] != 0 || start[5] != 5 {
		t.Errorf("Gage(Start) = %v", start)
	}

	end, err := r.Gage("End")
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(end[1], 0.8) {
		t.Errorf("Gage(End)[1] = %v, want 0.8", end[1])
	}

	gf, err := r.GageFrame("End")
	if err != nil {
		t.Fatal(err)
	}

	if gf.Width() != 1 || gf.Name(0) != "End" {
		t.Errorf("GageFrame(End) width %d name %q", gf.Width(), gf.Name(0))
	}

	if !gf.Times()[0].Equal(testEpoch) {
		t.Errorf("GageFrame(End) first timestamp = %v, want %v", gf.Times()[0], testEpoch)
	}
}

func TestSegmentAccess(t *testing.T) {
	r := testResult(t)

	seg, err := r.Segment("A1")
	if err != nil {
		t.Fatal(err)
	}

	if seg.Width() != 3 || seg.Len() != 6 {
		t.Fatalf("Segment(A1) shape = %dx%d, want 6x3", seg.Len(), seg.Width())
	}

	if seg.Name(0) != "A1[0]" || seg.Name(2) != "A1[2]" {
		t.Errorf("Segment(A1) names = %v", seg.Names())
	}

	if seg.Column(1)[2] != 6 { // -2 + 2*4
		t.Errorf("Segment(A1) col 1 row 2 = %v, want 6", seg.Column(1)[2])
	}

	cols, err := r.SegmentColumns("A1")
	if err != nil {
		t.Fatal(err)
	}

	if len(cols) != 3 || cols[0][1] != 3 { // 1 + 1*2
		t.Errorf("SegmentColumns(A1) = %v", cols)
	}

	x, err := r.SegmentX("A1")
	if err != nil {
		t.Fatal(err)
	}

	if len(x) != 3 || x[0] != 0.00065 {
		t.Errorf("SegmentX(A1) = %v", x)
	}
}

func TestLabelNotFound(t *testing.T) {
	r := testResult(t)

	if _, err := r.Gage("not a label"); !errors.Is(err, ErrLabelNotFound) {
		t.Errorf("Gage error = %v, want ErrLabelNotFound", err)
	}

	if _, err := r.Segment("not a label"); !errors.Is(err, ErrLabelNotFound) {
		t.Errorf("Segment error = %v, want ErrLabelNotFound", err)
	}

	// A segment label is not a gage label and vice versa.
	if _, err := r.Gage("A1"); !errors.Is(err, ErrLabelNotFound) {
		t.Errorf("Gage(A1) error = %v, want ErrLabelNotFound", err)
	}

	if _, err := r.Segment("Start"); !errors.Is(err, ErrLabelNotFound) {
		t.Errorf("Segment(Start) error = %v, want ErrLabelNotFound", err)
	}

	// Every listed label resolves.
	for _, label := range r.Gages() {
		if _, err := r.Gage(label); err != nil {
			t.Errorf("listed gage %q does not resolve: %v", label, err)
		}
	}

	for _, label := range r.Segments() {
		if _, err := r.Segment(label); err != nil {
			t.Errorf("listed segment %q does not resolve: %v", label, err)
		}
	}
}

func TestPlainResultHasNoLabels(t *testing.T) {
	f, err := frame.New(offsetTimes(0, 1), []string{"a"}, [][]float64{{1, 2}})
	if err != nil {
		t.Fatal(err)
	}

	r, err := New(f, []float64{0}, Metadata{Channel: 2, Rate: 10, GagePitch: 0.65})
	if err != nil {
		t.Fatal(err)
	}

	if len(r.Gages()) != 0 || len(r.Segments()) != 0 {
		t.Error("plain result lists labels")
	}

	if _, err := r.Gage("anything"); !errors.Is(err, ErrLabelNotFound) {
		t.Errorf("Gage error = %v, want ErrLabelNotFound", err)
	}
}

func TestConstructorShapeChecks(t *testing.T) {
	f, err := frame.New(offsetTimes(0, 1), []string{"a", "b"}, [][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New(f, []float64{0}, Metadata{}); !errors.Is(err, frame.ErrShapeMismatch) {
		t.Errorf("short coordinate array error = %v, want ErrShapeMismatch", err)
	}

	labels := frame.NewLabelIndex()
	if err := labels.AddGage("far", 7); err != nil {
		t.Fatal(err)
	}

	if _, err := NewWithLabels(f, []float64{0, 1}, labels, Metadata{}); !errors.Is(err, frame.ErrShapeMismatch) {
		t.Errorf("out-of-range label error = %v, want ErrShapeMismatch", err)
	}
}
