package dataset

import (
	"math"
	"testing"
)

// ============================================================================
// INSPECTOR TESTS
// ============================================================================

func mustLoad(t *testing.T, csv string) *Table {
	t.Helper()
	table, err := Load([]byte(csv), "test.csv")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return table
}

func TestDescribe(t *testing.T) {
	table := mustLoad(t, "x,y\n1,a\n2,\n,b\n")

	descs := Describe(table)
	if len(descs) != 2 {
		t.Fatalf("descriptors = %d, want 2", len(descs))
	}

	x := descs[0]
	if x.Name != "x" || x.Kind != Number {
		t.Errorf("x descriptor = %+v", x)
	}
	if x.Missing != 1 {
		t.Errorf("x missing = %d, want 1", x.Missing)
	}
	if math.Abs(x.MissingPct-33.33) > 1e-9 {
		t.Errorf("x missing pct = %v, want 33.33", x.MissingPct)
	}
}

// Missing count and percentage stay mutually consistent: reconstructing the
// count from the rounded percentage lands within rounding tolerance.
func TestDescribeCountPctConsistency(t *testing.T) {
	cases := []string{
		"a\n1\n2\n3\n",
		"a,b\n1,\n,\n3,x\n4,y\n5,\n6,z\n7,\n",
		"a\nNA\nNA\nNA\n",
	}
	for _, csv := range cases {
		table := mustLoad(t, csv)
		rows := table.RowCount()
		for _, d := range Describe(table) {
			back := math.Round(d.MissingPct / 100 * float64(rows))
			if math.Abs(back-float64(d.Missing)) > 0.5 {
				t.Errorf("%q col %s: pct %v inconsistent with count %d of %d rows",
					csv, d.Name, d.MissingPct, d.Missing, rows)
			}
		}
	}
}

func TestDescribeEmptyTable(t *testing.T) {
	table := &Table{}
	if got := Describe(table); len(got) != 0 {
		t.Errorf("Describe(empty) = %v, want empty", got)
	}
}

func TestSummarize(t *testing.T) {
	table := mustLoad(t, "v,label\n1,a\n2,b\n3,c\n4,d\n5,e\n")

	sums := Summarize(table)
	if len(sums) != 1 {
		t.Fatalf("summaries = %d, want 1 (only the numeric column)", len(sums))
	}

	s := sums[0]
	if s.Name != "v" || s.Count != 5 {
		t.Errorf("summary = %+v", s)
	}
	if s.Mean != 3 {
		t.Errorf("mean = %v, want 3", s.Mean)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("min/max = %v/%v, want 1/5", s.Min, s.Max)
	}
	if !(s.Min <= s.Q1 && s.Q1 <= s.Median && s.Median <= s.Q3 && s.Q3 <= s.Max) {
		t.Errorf("quantiles out of order: %+v", s)
	}
}

func TestSummarizeSkipsMissing(t *testing.T) {
	table := mustLoad(t, "v\n2\nNA\n4\n")
	sums := Summarize(table)
	if len(sums) != 1 || sums[0].Count != 2 || sums[0].Mean != 3 {
		t.Errorf("summaries = %+v, want count 2 mean 3", sums)
	}
}
