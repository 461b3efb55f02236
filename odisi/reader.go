package odisi

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/algo-odisi/frame"
)

// timeLayout matches the instrument's export timestamps, e.g.
// "2023-09-06 12:51:28.888946".
const timeLayout = "2006-01-02 15:04:05.999999"

// The first data column of the table section; columns 0-2 hold the
// timestamp and two auxiliary cells the instrument emits per row.
const firstDataColumn = 3

// Structural markers of the annotation rows between the column-name row and
// the first data row.
const (
	markerCoordinate  = "x-coordinate"
	markerGageSegment = "Gage/Segment"
	markerTare        = "Tare"
)

// ErrMalformedExport is returned when an export file deviates from the
// expected metadata-block + table structure.
var ErrMalformedExport = errors.New("odisi: malformed export file")

// segmentColumn matches segment member columns in the gage/segment
// annotation row, e.g. "A1[0]". Plain labels name single-column gages.
var segmentColumn = regexp.MustCompile(`^(.+)\[\d+\]$`)

// ReadTSV reads an exported TSV file.
func ReadTSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("odisi: open export: %w", err)
	}
	defer f.Close()

	return ReadTSVFrom(f)
}

// ReadTSVFrom reads an export from an arbitrary reader.
//
// The file starts with a block of "Key: Value" metadata lines, followed by a
// tab-separated table: a column-name row, an x-coordinate annotation row,
// optionally a tare row and a gage/segment annotation row, then one data row
// per measurement instant. A gage/segment row is recognized by the
// Gage/Segment marker in its first cell; plain cells in it name
// single-column gages while "name[k]" runs name contiguous segments.
func ReadTSVFrom(rd io.Reader) (*Result, error) {
	cr := csv.NewReader(rd)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header := make(map[string]string)

	// Metadata block: single-field records until the table begins.
	record, err := cr.Read()
	for ; err == nil && len(record) == 1; record, err = cr.Read() {
		key, value, ok := strings.Cut(record[0], ":")
		if !ok {
			continue
		}

		header[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no table section", ErrMalformedExport)
		}

		return nil, fmt.Errorf("odisi: read export: %w", err)
	}

	meta, err := ParseMetadata(header)
	if err != nil {
		return nil, err
	}

	if len(record) <= firstDataColumn {
		return nil, fmt.Errorf("%w: column-name row has no data columns", ErrMalformedExport)
	}

	names := append([]string(nil), record[firstDataColumn:]...)
	width := len(names)

	var (
		x      []float64
		labels *frame.LabelIndex
		times  []time.Time
		cols   = make([][]float64, width)
	)

	for {
		record, err = cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("odisi: read export: %w", err)
		}

		if len(record) == 0 {
			continue
		}

		first := strings.TrimSpace(record[0])

		switch {
		case strings.HasPrefix(first, markerCoordinate):
			x, err = parseCoordinateRow(record, width)
		case first == markerGageSegment:
			labels, err = parseLabelRow(record, width)
		case first == markerTare:
			// Tare values are not part of the data model.
		default:
			err = parseDataRow(record, width, &times, cols)
		}

		if err != nil {
			return nil, err
		}
	}

	if x == nil {
		return nil, fmt.Errorf("%w: missing x-coordinate row", ErrMalformedExport)
	}

	if len(times) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformedExport)
	}

	fr, err := frame.New(times, names, cols)
	if err != nil {
		return nil, err
	}

	result, err := NewWithLabels(fr, x, labels, meta)
	if err != nil {
		return nil, err
	}

	result.header = header

	return result, nil
}

func parseCoordinateRow(record []string, width int) ([]float64, error) {
	if len(record) != firstDataColumn+width {
		return nil, fmt.Errorf("%w: x-coordinate row has %d cells, expected %d",
			ErrMalformedExport, len(record), firstDataColumn+width)
	}

	x := make([]float64, width)

	for i, cell := range record[firstDataColumn:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: x-coordinate column %d: %q", ErrMalformedExport, i, cell)
		}

		x[i] = v
	}

	return x, nil
}

// parseLabelRow builds the label index from the gage/segment annotation row.
// Contiguous runs of "name[k]" cells become one segment spanning the run;
// any other non-empty cell is a single-column gage.
func parseLabelRow(record []string, width int) (*frame.LabelIndex, error) {
	if len(record) != firstDataColumn+width {
		return nil, fmt.Errorf("%w: gage/segment row has %d cells, expected %d",
			ErrMalformedExport, len(record), firstDataColumn+width)
	}

	labels := frame.NewLabelIndex()

	segName := ""
	segStart := 0

	closeSegment := func(end int) error {
		if segName == "" {
			return nil
		}

		err := labels.AddSegment(segName, frame.Range{Start: segStart, End: end})
		segName = ""

		return err
	}

	for i, cell := range record[firstDataColumn:] {
		cell = strings.TrimSpace(cell)

		if m := segmentColumn.FindStringSubmatch(cell); m != nil {
			if m[1] != segName {
				if err := closeSegment(i - 1); err != nil {
					return nil, err
				}

				segName = m[1]
				segStart = i
			}

			continue
		}

		if err := closeSegment(i - 1); err != nil {
			return nil, err
		}

		if cell == "" {
			continue
		}

		if err := labels.AddGage(cell, i); err != nil {
			return nil, err
		}
	}

	if err := closeSegment(width - 1); err != nil {
		return nil, err
	}

	return labels, nil
}

func parseDataRow(record []string, width int, times *[]time.Time, cols [][]float64) error {
	if len(record) != firstDataColumn+width {
		return fmt.Errorf("%w: data row %d has %d cells, expected %d",
			ErrMalformedExport, len(*times), len(record), firstDataColumn+width)
	}

	t, err := time.Parse(timeLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return fmt.Errorf("%w: data row %d timestamp %q", ErrMalformedExport, len(*times), record[0])
	}

	*times = append(*times, t)

	for i, cell := range record[firstDataColumn:] {
		cell = strings.TrimSpace(cell)

		// Empty cells are missing measurements.
		if cell == "" {
			cols[i] = append(cols[i], math.NaN())
			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return fmt.Errorf("%w: data row %d column %d: %q", ErrMalformedExport, len(*times)-1, i, cell)
		}

		cols[i] = append(cols[i], v)
	}

	return nil
}
