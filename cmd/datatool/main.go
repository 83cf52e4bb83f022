package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/huzzy12/data-analysis-tool/chart"
	"github.com/huzzy12/data-analysis-tool/clean"
	"github.com/huzzy12/data-analysis-tool/dataset"
	"github.com/huzzy12/data-analysis-tool/export"
	"github.com/huzzy12/data-analysis-tool/render"
	"github.com/huzzy12/data-analysis-tool/server"
)

// ============================================================================
// DATATOOL CLI — Explore, Clean, Chart, Export
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	listen := flag.String("listen", ":8080", "Address for the interactive web UI")
	filePath := flag.String("file", "", "Path to a CSV/XLSX file (one-shot mode)")
	describe := flag.Bool("describe", false, "Print column descriptors and exit")
	cleanOps := flag.String("clean", "", "Comma-separated steps: dedupe,dropmissing,fillmean")
	fillValue := flag.String("fill", "", "Fill all missing values with this constant")
	convert := flag.String("convert", "", "Convert a column: column:type (type = text|number|date|category)")
	selectCols := flag.String("select", "", "Comma-separated columns to keep")
	chartReq := flag.String("chart", "", "Build a chart: kind:x[:y] (kind = bar|line|scatter|histogram|box|correlation)")
	plotOut := flag.String("plot", "", "Write the chart as PNG to this path")
	exportOut := flag.String("export", "", "Write the processed table to this path (.csv or .xlsx)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `datatool — interactive tabular data exploration

Usage:
  datatool                                      # serve the web UI on :8080
  datatool --file data.csv --describe
  datatool --file data.csv --clean dedupe,dropmissing --export clean.csv
  datatool --file data.xlsx --convert joined:date --export clean.xlsx
  datatool --file data.csv --chart bar:region:revenue --plot chart.png

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("datatool %s\n", version)
		os.Exit(0)
	}

	if *filePath == "" {
		// Interactive mode.
		srv := server.New()
		if err := srv.ListenAndServe(*listen); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runOneShot(oneShotArgs{
		file:      *filePath,
		describe:  *describe,
		cleanOps:  *cleanOps,
		fill:      *fillValue,
		convert:   *convert,
		selectCol: *selectCols,
		chart:     *chartReq,
		plotOut:   *plotOut,
		exportOut: *exportOut,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type oneShotArgs struct {
	file      string
	describe  bool
	cleanOps  string
	fill      string
	convert   string
	selectCol string
	chart     string
	plotOut   string
	exportOut string
}

// runOneShot runs load → clean → chart → export against a local file,
// the same pipeline the web UI drives interactively.
func runOneShot(args oneShotArgs) error {
	data, err := os.ReadFile(args.file)
	if err != nil {
		return err
	}
	table, err := dataset.Load(data, args.file)
	if err != nil {
		return err
	}

	if args.describe {
		return printDescriptors(table)
	}

	table, err = applySteps(table, args)
	if err != nil {
		return err
	}

	if args.chart != "" {
		if err := buildChart(table, args.chart, args.plotOut); err != nil {
			return err
		}
	}

	if args.exportOut != "" {
		if err := exportTable(table, args.exportOut); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d rows)\n", args.exportOut, table.RowCount())
	}
	return nil
}

func printDescriptors(table *dataset.Table) error {
	out := struct {
		Columns   []dataset.ColumnDescriptor `json:"columns"`
		Summaries []dataset.ColumnSummary    `json:"numericSummaries,omitempty"`
		Rows      int                        `json:"rows"`
	}{
		Columns:   dataset.Describe(table),
		Summaries: dataset.Summarize(table),
		Rows:      table.RowCount(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func applySteps(table *dataset.Table, args oneShotArgs) (*dataset.Table, error) {
	var steps []clean.Step

	for _, op := range strings.Split(args.cleanOps, ",") {
		switch strings.TrimSpace(op) {
		case "":
		case "dedupe":
			steps = append(steps, clean.Step{Op: clean.RemoveDuplicates})
		case "dropmissing":
			steps = append(steps, clean.Step{Op: clean.DropMissing})
		case "fillmean":
			steps = append(steps, clean.Step{Op: clean.FillMissingWithMean})
		default:
			return nil, fmt.Errorf("unknown clean step %q", op)
		}
	}
	if args.fill != "" {
		steps = append(steps, clean.Step{Op: clean.FillMissingWithConstant, Value: args.fill})
	}
	if args.convert != "" {
		col, typeName, ok := strings.Cut(args.convert, ":")
		if !ok {
			return nil, fmt.Errorf("--convert wants column:type, got %q", args.convert)
		}
		kind, ok := dataset.ParseKind(typeName)
		if !ok {
			return nil, fmt.Errorf("unknown type %q", typeName)
		}
		steps = append(steps, clean.Step{Op: clean.ConvertColumnType, Column: col, Target: kind})
	}
	if args.selectCol != "" {
		steps = append(steps, clean.Step{Op: clean.SelectColumns, Columns: strings.Split(args.selectCol, ",")})
	}

	for _, step := range steps {
		next, summary, err := clean.Apply(table, step)
		if err != nil {
			return nil, err
		}
		table = next
		fmt.Println(summary.Message)
	}
	return table, nil
}

func buildChart(table *dataset.Table, arg, plotOut string) error {
	parts := strings.SplitN(arg, ":", 3)
	kind, ok := chart.ParseKind(parts[0])
	if !ok {
		return fmt.Errorf("unknown chart kind %q", parts[0])
	}
	req := chart.Request{Kind: kind}
	if len(parts) > 1 {
		req.X = parts[1]
	}
	if len(parts) > 2 {
		req.Y = parts[2]
	}

	spec, err := chart.Build(table, req)
	if err != nil {
		return err
	}

	if plotOut == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(spec)
	}

	png, err := render.PNG(spec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(plotOut, png, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", plotOut)
	return nil
}

func exportTable(table *dataset.Table, path string) error {
	var format export.Format
	switch {
	case strings.HasSuffix(path, ".csv"):
		format = export.CSV
	case strings.HasSuffix(path, ".xlsx"):
		format = export.XLSX
	default:
		return fmt.Errorf("export path must end in .csv or .xlsx")
	}

	data, err := export.Export(table, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
