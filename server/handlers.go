package server

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huzzy12/data-analysis-tool/chart"
	"github.com/huzzy12/data-analysis-tool/clean"
	"github.com/huzzy12/data-analysis-tool/dataset"
	"github.com/huzzy12/data-analysis-tool/export"
	"github.com/huzzy12/data-analysis-tool/render"
)

// ============================================================================
// HANDLERS — Form Submissions → Pipeline Calls
// ============================================================================
// Every handler follows the same contract: run one operation to completion,
// record the outcome as a flash message, and redirect back to the page.
// Errors never discard the working table.
// ============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderPage(w)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Reject unknown extensions before the loader sees the bytes.
	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".csv") &&
		!strings.HasSuffix(name, ".xlsx") &&
		!strings.HasSuffix(name, ".xls") {
		http.Error(w, "invalid file type: want .csv, .xls, or .xlsx", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.cache.Load(data, header.Filename)
	if err != nil {
		// A bad upload does not clobber an existing session.
		if s.session != nil {
			s.flash(err.Error(), true)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.session = &Session{
		Filename: header.Filename,
		Uploaded: time.Now(),
		Working:  table,
	}
	s.chartPNG = nil
	s.flash(fmt.Sprintf("loaded %q: %d rows, %d columns",
		header.Filename, table.RowCount(), len(table.Columns)), false)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	step, err := stepFromForm(r)
	if err != nil {
		s.flash(err.Error(), true)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	table, summary, err := clean.Apply(s.session.Working, step)
	if err != nil {
		s.flash(err.Error(), true)
	} else {
		s.session.Working = table
		s.flash(summary.Message, false)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// stepFromForm builds a cleaning step from the submitted form values.
func stepFromForm(r *http.Request) (clean.Step, error) {
	op := clean.Op(r.FormValue("op"))
	step := clean.Step{Op: op}

	switch op {
	case clean.RemoveDuplicates, clean.DropMissing, clean.FillMissingWithMean:
	case clean.FillMissingWithConstant:
		step.Value = r.FormValue("value")
	case clean.ConvertColumnType:
		step.Column = r.FormValue("column")
		kind, ok := dataset.ParseKind(r.FormValue("target"))
		if !ok {
			return step, fmt.Errorf("unknown target type %q", r.FormValue("target"))
		}
		step.Target = kind
	case clean.SelectColumns:
		step.Columns = r.Form["columns"]
	default:
		return step, fmt.Errorf("unknown cleaning operation %q", op)
	}
	return step, nil
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	kind, ok := chart.ParseKind(r.FormValue("kind"))
	if !ok {
		s.flash(fmt.Sprintf("unknown chart type %q", r.FormValue("kind")), true)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	bins, _ := strconv.Atoi(r.FormValue("bins"))
	req := chart.Request{
		Kind: kind,
		X:    r.FormValue("x"),
		Y:    r.FormValue("y"),
		Bins: bins,
	}
	spec, err := chart.Build(s.session.Working, req)
	if err != nil {
		s.flash(err.Error(), true)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	png, err := render.PNG(spec)
	if err != nil {
		s.flash(err.Error(), true)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.chartPNG = png
	s.flash(fmt.Sprintf("generated %s chart", kind), false)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	png := s.chartPNG
	s.mu.Unlock()
	if len(png) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	format, ok := export.ParseFormat(r.FormValue("format"))
	if !ok {
		s.flash(fmt.Sprintf("unknown export format %q", r.FormValue("format")), true)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	base := strings.TrimSpace(r.FormValue("filename"))
	if base == "" {
		name := s.session.Filename
		base = "processed_" + strings.TrimSuffix(name, filepath.Ext(name))
	}

	data, err := export.Export(s.session.Working, format)
	if err != nil {
		s.flash(err.Error(), true)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	filename := export.Filename(base, format)
	w.Header().Set("Content-Type", format.MIME())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		log.Printf("server: export write failed: %v", err)
	}
}
