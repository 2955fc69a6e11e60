// Package report renders simulation results as text: tabular summaries
// and ascii plots. It consumes only the recorded sequences and must
// tolerate the state/transition off-by-one in their lengths.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/thermosim/internal/sim"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// Summary prints the headline numbers of a run.
func Summary(w io.Writer, res *sim.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "samples\t%d\n", res.Steps())
	fmt.Fprintf(tw, "duration\t%.1fs\n", float64(res.Steps())*res.Ts)
	fmt.Fprintf(tw, "setpoint\t%.2f\n", res.Setpoints[len(res.Setpoints)-1])
	fmt.Fprintf(tw, "final temp\t%.3f\n", res.FinalTemp())
	fmt.Fprintf(tw, "final error\t%.4f\n", res.FinalError())

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.4f\n", name, res.Metrics[name])
	}

	return tw.Flush()
}

// Plot prints the temperature, control and error trajectories.
func Plot(w io.Writer, res *sim.Result) {
	temps := asciigraph.PlotMany(
		[][]float64{res.Temps, res.Setpoints, res.Ambients},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("temperature / setpoint / ambient"),
	)
	fmt.Fprintln(w, temps)
	fmt.Fprintln(w)

	control := asciigraph.Plot(res.Controls,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("control output"),
	)
	fmt.Fprintln(w, control)
	fmt.Fprintln(w)

	errs := asciigraph.Plot(res.Errors,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("tracking error"),
	)
	fmt.Fprintln(w, errs)
}

// Compare prints two temperature trajectories on one canvas followed by
// both summaries, for side-by-side controller comparisons.
func Compare(w io.Writer, labelA string, a *sim.Result, labelB string, b *sim.Result) error {
	graph := asciigraph.PlotMany(
		[][]float64{a.Temps, b.Temps, a.Setpoints},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("temperature: %s vs %s (with setpoint)", labelA, labelB)),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "== %s ==\n", labelA)
	if err := Summary(w, a); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n== %s ==\n", labelB)
	return Summary(w, b)
}
