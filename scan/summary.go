package scan

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jamiealquiza/tachymeter"
	"github.com/rodaine/table"
)

// PrintSummary writes a per-worker breakdown of a run, followed by scan and
// merge timing percentiles across workers.
func PrintSummary(w io.Writer, res *Result) {
	if len(res.Workers) == 0 {
		return
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.
		New("Worker", "Chunks", "Bytes", "Rows", "Keys", "Scan", "Merge").
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt).
		WithWriter(w)

	st := tachymeter.New(&tachymeter.Config{Size: len(res.Workers)})
	mt := tachymeter.New(&tachymeter.Config{Size: len(res.Workers)})
	for _, ws := range res.Workers {
		tbl.AddRow(ws.ID, ws.Chunks, ws.Bytes, ws.Rows, ws.Keys, ws.Scan, ws.Merge)
		st.AddTime(ws.Scan)
		mt.AddTime(ws.Merge)
	}
	tbl.Print()

	sm, mm := st.Calc(), mt.Calc()
	fmt.Fprintf(
		w,
		"scan p50: %s, max: %s | merge p50: %s, max: %s | keys: %d, elapsed: %s\n",
		sm.Time.P50, sm.Time.Max, mm.Time.P50, mm.Time.Max, len(res.Stats), res.Elapsed,
	)
}
