// Command chart runs the pursuit simulation and renders the timeline as a
// standalone HTML line chart: both position series over time, with the catch
// solution in the subtitle. An optional file argument supplies a
// SimulationInput JSON; without it the canonical parameters are used.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cxd309/zeno-engine/internal/engine"
)

func main() {
	out := flag.String("o", "pursuit.html", "output HTML file")
	flag.Parse()

	input := engine.DefaultInput()
	if flag.NArg() > 0 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fatal("reading input: %v", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			fatal("parsing input: %v", err)
		}
	}

	pursuit, err := engine.NewPursuit(input)
	if err != nil {
		fatal("%v", err)
	}
	log := pursuit.Run()

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Achilles and the Tortoise",
			Subtitle: fmt.Sprintf("catch at t = %.2f s, position = %.2f",
				log.Solution.CatchTime, log.Solution.CatchPosition),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "position"}),
	)

	xs := make([]string, len(log.Output))
	fast := make([]opts.LineData, len(log.Output))
	slow := make([]opts.LineData, len(log.Output))
	for i, row := range log.Output {
		xs[i] = fmt.Sprintf("%.2f", row.Timestamp)
		fast[i] = opts.LineData{Value: row.FastPos}
		slow[i] = opts.LineData{Value: row.SlowPos}
	}

	line.SetXAxis(xs).
		AddSeries("achilles", fast,
			charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
				Name:       "catch",
				Coordinate: []interface{}{xs[len(xs)-1], log.Solution.CatchPosition},
			})).
		AddSeries("tortoise", slow)

	f, err := os.Create(*out)
	if err != nil {
		fatal("creating %s: %v", *out, err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		fatal("rendering chart: %v", err)
	}
	fmt.Printf("wrote %s (%d rows)\n", *out, len(log.Output))
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
