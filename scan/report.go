package scan

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// WriteReport writes one "key=min/mean/max" line per key, sorted bytewise.
func WriteReport(w io.Writer, stats map[string]Record) error {
	keys := maps.Keys(stats)
	slices.Sort(keys)

	bw := bufio.NewWriter(w)
	for _, key := range keys {
		r := stats[key]
		_, err := fmt.Fprintf(
			bw,
			"%s=%s/%s/%s\n",
			key,
			formatTenths(math.Round(r.Min*10)),
			formatTenths(meanTenths(r)),
			formatTenths(math.Round(r.Max*10)),
		)
		if err != nil {
			return fmt.Errorf("unable to write report: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable to flush report: %w", err)
	}
	return nil
}

// meanTenths returns the mean in tenths, rounded half up (towards +Inf).
// Inputs sit on a 0.1 grid, so the sum is snapped back onto it before
// dividing to keep representation error from deciding ties.
func meanTenths(r Record) float64 {
	sum := math.Round(r.Sum * 10)
	return math.Floor(sum/float64(r.Count) + 0.5)
}

func formatTenths(t float64) string {
	if t == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(t/10, 'f', 1, 64)
}
