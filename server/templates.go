package server

import (
	"html/template"
	"log"
	"net/http"

	"github.com/huzzy12/data-analysis-tool/dataset"
)

// ============================================================================
// PAGE TEMPLATE — Single Exploration Page
// ============================================================================

const previewRows = 10

// pageData feeds the page template.
type pageData struct {
	Session     *Session
	Descriptors []dataset.ColumnDescriptor
	Summaries   []dataset.ColumnSummary
	Columns     []string
	NumericCols []string
	Preview     [][]string
	RowCount    int
	HasChart    bool
}

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

var pageTemplate = template.Must(template.New("page").Funcs(templateFuncs).Parse(pageHTML))

// renderPage renders the full page for the current session.
// Caller holds s.mu.
func (s *Server) renderPage(w http.ResponseWriter) {
	data := pageData{Session: s.session, HasChart: len(s.chartPNG) > 0}
	if s.session != nil {
		t := s.session.Working
		data.Descriptors = dataset.Describe(t)
		data.Summaries = dataset.Summarize(t)
		data.Columns = t.ColumnNames()
		data.NumericCols = t.NumericColumns()
		data.RowCount = t.RowCount()
		for i := 0; i < t.RowCount() && i < previewRows; i++ {
			data.Preview = append(data.Preview, t.Row(i))
		}
		// Flash messages show once.
		defer func() {
			s.session.Flash = ""
			s.session.IsError = false
		}()
	}

	w.Header().Set("Cache-Control", "no-cache")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("server: template error: %v", err)
	}
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<title>Data Analysis Tool</title>
<style>
body { font-family: sans-serif; max-width: 1100px; margin: 2em auto; color: #222; }
h1 { color: #1E88E5; } h2 { color: #26A69A; }
section { padding: 1em; border: 1px solid #ddd; border-radius: 5px; margin-bottom: 1.5em; }
table { border-collapse: collapse; } td, th { border: 1px solid #ccc; padding: 4px 8px; }
.flash { padding: 0.7em; border-radius: 4px; margin-bottom: 1em; background: #e8f5e9; }
.flash.error { background: #ffebee; }
form.inline { display: inline-block; margin-right: 1em; vertical-align: top; }
</style>
</head>
<body>
<h1>Data Analysis Tool</h1>
<p>Upload your dataset to explore and gain insights.</p>

{{if .Session}}{{if .Session.Flash}}
<div class="flash{{if .Session.IsError}} error{{end}}">{{.Session.Flash}}</div>
{{end}}{{end}}

<section>
<h2>Upload</h2>
<form action="/upload" method="post" enctype="multipart/form-data">
<input type="file" name="file" accept=".csv,.xls,.xlsx" required>
<button type="submit">Upload</button>
</form>
</section>

{{if .Session}}
<section>
<h2>Dataset Information</h2>
<p>{{.Session.Filename}} — Rows: {{.RowCount}}, Columns: {{len .Columns}}</p>
<table>
<tr><th>Column</th><th>Type</th><th>Missing</th><th>Missing %</th></tr>
{{range .Descriptors}}
<tr><td>{{.Name}}</td><td>{{.Kind}}</td><td>{{.Missing}}</td><td>{{printf "%.2f" .MissingPct}}</td></tr>
{{end}}
</table>

{{if .Summaries}}
<h2>Summary Statistics</h2>
<table>
<tr><th>Column</th><th>Count</th><th>Mean</th><th>Std</th><th>Min</th><th>25%</th><th>50%</th><th>75%</th><th>Max</th></tr>
{{range .Summaries}}
<tr><td>{{.Name}}</td><td>{{.Count}}</td><td>{{.Mean}}</td><td>{{.StdDev}}</td>
<td>{{.Min}}</td><td>{{.Q1}}</td><td>{{.Median}}</td><td>{{.Q3}}</td><td>{{.Max}}</td></tr>
{{end}}
</table>
{{end}}

<h2>Data Preview</h2>
<table>
<tr><th>#</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $row := .Preview}}<tr><td>{{add $i 1}}</td>{{range $row}}<td>{{.}}</td>{{end}}</tr>{{end}}
</table>
</section>

<section>
<h2>Data Cleaning</h2>
<form class="inline" action="/clean" method="post">
<input type="hidden" name="op" value="remove_duplicates">
<button type="submit">Remove Duplicate Rows</button>
</form>
<form class="inline" action="/clean" method="post">
<input type="hidden" name="op" value="drop_missing">
<button type="submit">Drop Rows with Missing Values</button>
</form>
<form class="inline" action="/clean" method="post">
<input type="hidden" name="op" value="fill_mean">
<button type="submit">Fill Numeric Missing with Mean</button>
</form>
<form class="inline" action="/clean" method="post">
<input type="hidden" name="op" value="fill_constant">
<input type="text" name="value" placeholder="fill value" required>
<button type="submit">Fill Missing with Value</button>
</form>
<form class="inline" action="/clean" method="post">
<input type="hidden" name="op" value="convert_type">
<select name="column">{{range .Columns}}<option>{{.}}</option>{{end}}</select>
<select name="target">
<option value="text">text</option>
<option value="number">number</option>
<option value="date">date</option>
<option value="category">category</option>
</select>
<button type="submit">Convert Type</button>
</form>
<form class="inline" action="/clean" method="post">
<input type="hidden" name="op" value="select_columns">
<select name="columns" multiple size="4">{{range .Columns}}<option selected>{{.}}</option>{{end}}</select>
<button type="submit">Keep Selected Columns</button>
</form>
</section>

<section>
<h2>Data Visualization</h2>
<form action="/chart" method="post">
<select name="kind">
<option value="bar">Bar Chart</option>
<option value="line">Line Chart</option>
<option value="scatter">Scatter Plot</option>
<option value="histogram">Histogram</option>
<option value="box">Box Plot</option>
<option value="correlation">Correlation Matrix</option>
</select>
X: <select name="x">{{range .Columns}}<option>{{.}}</option>{{end}}</select>
Y: <select name="y"><option value=""></option>{{range .NumericCols}}<option>{{.}}</option>{{end}}</select>
Bins: <input type="number" name="bins" min="1" placeholder="10" size="4">
<button type="submit">Generate Visualization</button>
</form>
{{if .HasChart}}<p><img src="/chart.png" alt="chart"></p>{{end}}
</section>

<section>
<h2>Export Processed Data</h2>
<form action="/export" method="post">
<select name="format">
<option value="csv">CSV</option>
<option value="xlsx">Excel</option>
</select>
<input type="text" name="filename" placeholder="filename (without extension)">
<button type="submit">Export Data</button>
</form>
</section>
{{end}}

</body>
</html>
`
