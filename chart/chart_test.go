package chart

import (
	"errors"
	"math"
	"testing"

	"github.com/huzzy12/data-analysis-tool/dataset"
)

// ============================================================================
// CHART BUILDER TESTS
// ============================================================================

func mustLoad(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.Load([]byte(csv), "test.csv")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return table
}

func mustBuild(t *testing.T, table *dataset.Table, req Request) *Spec {
	t.Helper()
	spec, err := Build(table, req)
	if err != nil {
		t.Fatalf("Build(%s) failed: %v", req.Kind, err)
	}
	return spec
}

// ── Validation ──────────────────────────────────────────────────────────────

func TestBuildValidation(t *testing.T) {
	table := mustLoad(t, "region,units,notes\nNorth,5,aaaa\nSouth,7,bbbb\n")

	cases := []struct {
		name string
		req  Request
	}{
		{"unknown kind", Request{Kind: "pie", X: "region", Y: "units"}},
		{"missing x", Request{Kind: Bar, Y: "units"}},
		{"unknown x", Request{Kind: Bar, X: "zzz", Y: "units"}},
		{"missing y", Request{Kind: Bar, X: "region"}},
		{"non-numeric y", Request{Kind: Scatter, X: "units", Y: "notes"}},
	}
	for _, tc := range cases {
		if _, err := Build(table, tc.req); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("%s: err = %v, want ErrInvalidRequest", tc.name, err)
		}
	}
}

func TestDefaultTitles(t *testing.T) {
	table := mustLoad(t, "region,units\nNorth,5\nSouth,7\n")

	spec := mustBuild(t, table, Request{Kind: Bar, X: "region", Y: "units"})
	if spec.Title != "units by region" {
		t.Errorf("title = %q", spec.Title)
	}
	spec = mustBuild(t, table, Request{Kind: Histogram, X: "units"})
	if spec.Title != "Distribution of units" {
		t.Errorf("title = %q", spec.Title)
	}
	spec = mustBuild(t, table, Request{Kind: Bar, X: "region", Y: "units", Title: "Custom"})
	if spec.Title != "Custom" {
		t.Errorf("explicit title overridden: %q", spec.Title)
	}
}

// ── Bar ─────────────────────────────────────────────────────────────────────

func TestBarGroupMeansFirstSeenOrder(t *testing.T) {
	table := mustLoad(t, "region,units\nWest,10\nEast,2\nWest,20\nEast,4\nNorth,7\n")

	spec := mustBuild(t, table, Request{Kind: Bar, X: "region", Y: "units"})
	if len(spec.Series) != 1 {
		t.Fatalf("series = %d, want 1", len(spec.Series))
	}
	points := spec.Series[0].Points
	wantLabels := []string{"West", "East", "North"}
	wantMeans := []float64{15, 3, 7}
	if len(points) != len(wantLabels) {
		t.Fatalf("points = %d, want %d", len(points), len(wantLabels))
	}
	for i := range points {
		if points[i].Label != wantLabels[i] {
			t.Errorf("group %d = %q, want %q", i, points[i].Label, wantLabels[i])
		}
		if math.Abs(points[i].Y-wantMeans[i]) > 1e-9 {
			t.Errorf("mean %s = %v, want %v", points[i].Label, points[i].Y, wantMeans[i])
		}
	}
}

func TestBarSkipsIncompleteRows(t *testing.T) {
	table := mustLoad(t, "region,units\nWest,10\n,5\nWest,NA\nEast,4\n")

	spec := mustBuild(t, table, Request{Kind: Bar, X: "region", Y: "units"})
	points := spec.Series[0].Points
	if len(points) != 2 {
		t.Fatalf("groups = %d, want 2", len(points))
	}
	if points[0].Y != 10 {
		t.Errorf("West mean = %v, want 10 (missing y excluded)", points[0].Y)
	}
}

// ── Line and scatter ────────────────────────────────────────────────────────

func TestLinePreservesRowOrder(t *testing.T) {
	table := mustLoad(t, "day,sales\nMon,3\nTue,1\nWed,2\n")

	spec := mustBuild(t, table, Request{Kind: Line, X: "day", Y: "sales"})
	points := spec.Series[0].Points
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}
	for i, want := range []float64{3, 1, 2} {
		if points[i].Y != want {
			t.Errorf("point %d y = %v, want %v", i, points[i].Y, want)
		}
		if points[i].X != float64(i) {
			t.Errorf("point %d x = %v, want %d", i, points[i].X, i)
		}
	}
}

func TestScatter(t *testing.T) {
	table := mustLoad(t, "x,y\n1,2\n2,4\n3,6\n")

	spec := mustBuild(t, table, Request{Kind: Scatter, X: "x", Y: "y"})
	points := spec.Series[0].Points
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}
	if points[1].X != 2 || points[1].Y != 4 {
		t.Errorf("point 1 = %+v", points[1])
	}
}

// ── Histogram ───────────────────────────────────────────────────────────────

func TestHistogramBinning(t *testing.T) {
	table := mustLoad(t, "v\n1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n")

	spec := mustBuild(t, table, Request{Kind: Histogram, X: "v", Bins: 5})
	points := spec.Series[0].Points
	if len(points) != 5 {
		t.Fatalf("bins = %d, want 5", len(points))
	}
	total := 0.0
	for i, p := range points {
		// 1..10 over 5 equal bins of width 1.8: two values per bin, with
		// the maximum landing in the last bin.
		if p.Y != 2 {
			t.Errorf("bin %d count = %v, want 2", i, p.Y)
		}
		total += p.Y
	}
	if total != 10 {
		t.Errorf("total count = %v, want 10", total)
	}
}

func TestHistogramDefaultsAndDegenerate(t *testing.T) {
	table := mustLoad(t, "v\n1\n2\n3\n")
	spec := mustBuild(t, table, Request{Kind: Histogram, X: "v"})
	if len(spec.Series[0].Points) != 10 {
		t.Errorf("default bins = %d, want 10", len(spec.Series[0].Points))
	}

	// All-equal values collapse to a single bin.
	table = mustLoad(t, "v\n4\n4\n4\n")
	spec = mustBuild(t, table, Request{Kind: Histogram, X: "v"})
	points := spec.Series[0].Points
	if len(points) != 1 || points[0].Y != 3 {
		t.Errorf("degenerate histogram = %+v", points)
	}
}

func TestHistogramRejectsTextColumn(t *testing.T) {
	table := mustLoad(t, "w\nalpha\nbeta\n")
	_, err := Build(table, Request{Kind: Histogram, X: "w"})
	if !errors.Is(err, ErrChart) {
		t.Errorf("err = %v, want ErrChart", err)
	}
}

// ── Box ─────────────────────────────────────────────────────────────────────

func TestBoxSummary(t *testing.T) {
	table := mustLoad(t, "v\n7\n1\n4\n9\n3\n")

	spec := mustBuild(t, table, Request{Kind: Box, X: "v"})
	s := spec.Summary
	if s == nil {
		t.Fatal("box spec has no five-number summary")
	}
	if s.Min != 1 || s.Max != 9 {
		t.Errorf("min/max = %v/%v, want 1/9", s.Min, s.Max)
	}
	if !(s.Min <= s.Q1 && s.Q1 <= s.Median && s.Median <= s.Q3 && s.Q3 <= s.Max) {
		t.Errorf("five-number summary out of order: %+v", s)
	}
}

// ── Correlation matrix ──────────────────────────────────────────────────────

func TestCorrelationMatrix(t *testing.T) {
	// up rises with down falling: r(up, down) = -1; r(up, up2) = +1.
	table := mustLoad(t, "up,down,up2,label\n1,9,2,a\n2,8,4,b\n3,7,6,c\n4,6,8,d\n")

	spec := mustBuild(t, table, Request{Kind: CorrelationMatrix})
	if len(spec.Labels) != 3 {
		t.Fatalf("numeric columns = %v, want 3", spec.Labels)
	}
	m := spec.Matrix
	for i := range m {
		if m[i][i] != 1.0 {
			t.Errorf("diagonal [%d][%d] = %v, want exactly 1", i, i, m[i][i])
		}
		for j := range m[i] {
			if math.Abs(m[i][j]-m[j][i]) > 1e-12 {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}
	if math.Abs(m[0][1]-(-1)) > 1e-9 {
		t.Errorf("r(up, down) = %v, want -1", m[0][1])
	}
	if math.Abs(m[0][2]-1) > 1e-9 {
		t.Errorf("r(up, up2) = %v, want 1", m[0][2])
	}
}

func TestCorrelationRequiresTwoNumeric(t *testing.T) {
	table := mustLoad(t, "v,label\n1,a\n2,b\n")
	_, err := Build(table, Request{Kind: CorrelationMatrix})
	if !errors.Is(err, ErrInsufficientNumeric) {
		t.Errorf("err = %v, want ErrInsufficientNumeric", err)
	}
}

func TestCorrelationPairwiseDeletion(t *testing.T) {
	table := mustLoad(t, "a,b\n1,2\nNA,3\n3,6\n5,10\n")

	spec := mustBuild(t, table, Request{Kind: CorrelationMatrix})
	if r := spec.Matrix[0][1]; math.Abs(r-1) > 1e-9 {
		t.Errorf("r over complete pairs = %v, want 1", r)
	}
}
