// Package datatool provides an interactive data exploration pipeline.
// Upload a tabular file, inspect it, clean it, chart it, download it.
//
// Usage:
//
//	import "github.com/huzzy12/data-analysis-tool/dataset"
//	import "github.com/huzzy12/data-analysis-tool/clean"
//
//	table, err := dataset.Load(raw, "sales.csv")
//	table, summary, err := clean.Apply(table, clean.Step{Op: clean.RemoveDuplicates})
//
// The pipeline is a chain of pure table transformations: dataset loads and
// classifies columns, clean applies one atomic step at a time, chart computes
// render-ready descriptions, and export serializes the result. The server
// package wires the chain to a single-page web UI; cmd/datatool exposes the
// same chain on the command line. No stage holds hidden state — every
// operation takes the current table and returns the next one.
package datatool
