// Command odisiinfo prints a summary of ODiSI TSV export files.
//
// Usage:
//
//	odisiinfo [flags] file.tsv [file.tsv ...]
//
// Examples:
//
//	odisiinfo run_ch1_full.tsv
//	odisiinfo -labels run_ch1_gages.tsv
//	odisiinfo -stats run_ch1_gages.tsv
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-odisi/odisi"
)

func main() {
	labels := flag.Bool("labels", false, "list gage and segment labels")
	withStats := flag.Bool("stats", false, "print per-gage statistics (implies -labels)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: odisiinfo [flags] file.tsv [file.tsv ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints metadata and label summaries of ODiSI TSV exports.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	failed := false
	for _, path := range paths {
		if err := printSummary(path, *labels || *withStats, *withStats); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func printSummary(path string, listLabels, withStats bool) error {
	result, err := odisi.ReadTSV(path)
	if err != nil {
		return err
	}

	times := result.Time()
	span := times[len(times)-1].Sub(times[0])

	fmt.Printf("%s\n", path)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Channel\t%d\n", result.Channel())
	fmt.Fprintf(tw, "  Rate\t%g Hz\n", result.Rate())
	fmt.Fprintf(tw, "  Gage pitch\t%g mm\n", result.GagePitch())
	fmt.Fprintf(tw, "  Columns\t%d\n", result.Frame().Width())
	fmt.Fprintf(tw, "  Rows\t%d\n", len(times))
	fmt.Fprintf(tw, "  Start\t%s\n", times[0].Format("2006-01-02 15:04:05.999999"))
	fmt.Fprintf(tw, "  Span\t%s\n", span)
	fmt.Fprintf(tw, "  Gages\t%d\n", len(result.Gages()))
	fmt.Fprintf(tw, "  Segments\t%d\n", len(result.Segments()))

	if err := tw.Flush(); err != nil {
		return err
	}

	if !listLabels {
		return nil
	}

	tw = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if withStats {
		fmt.Fprintf(tw, "  Gage\tMin\tMax\tMean\tStdDev\tMissing\n")
		for _, label := range result.Gages() {
			s, err := result.GageStats(label)
			if err != nil {
				return err
			}

			fmt.Fprintf(tw, "  %s\t%.3f\t%.3f\t%.3f\t%.3f\t%d\n",
				label, s.Min, s.Max, s.Mean, s.StdDev, s.Missing)
		}
	} else {
		for _, label := range result.Gages() {
			fmt.Fprintf(tw, "  gage\t%s\n", label)
		}
	}

	for _, label := range result.Segments() {
		x, err := result.SegmentX(label)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "  segment\t%s\t%d columns\n", label, len(x))
	}

	return tw.Flush()
}
