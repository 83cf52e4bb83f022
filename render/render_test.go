package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/huzzy12/data-analysis-tool/chart"
	"github.com/huzzy12/data-analysis-tool/dataset"
)

// ============================================================================
// RENDERER TESTS
// ============================================================================

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func buildSpec(t *testing.T, csv string, req chart.Request) *chart.Spec {
	t.Helper()
	table, err := dataset.Load([]byte(csv), "test.csv")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	spec, err := chart.Build(table, req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return spec
}

func TestPNGAllKinds(t *testing.T) {
	const data = "region,units,price\nNorth,5,1.5\nSouth,7,2.5\nNorth,3,0.9\nEast,8,3.1\n"

	cases := []struct {
		name string
		req  chart.Request
	}{
		{"bar", chart.Request{Kind: chart.Bar, X: "region", Y: "units"}},
		{"line", chart.Request{Kind: chart.Line, X: "region", Y: "units"}},
		{"scatter", chart.Request{Kind: chart.Scatter, X: "units", Y: "price"}},
		{"histogram", chart.Request{Kind: chart.Histogram, X: "units", Bins: 4}},
		{"box", chart.Request{Kind: chart.Box, X: "price"}},
		{"correlation", chart.Request{Kind: chart.CorrelationMatrix}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := buildSpec(t, data, tc.req)
			png, err := PNG(spec)
			if err != nil {
				t.Fatalf("PNG failed: %v", err)
			}
			if !bytes.HasPrefix(png, pngMagic) {
				t.Errorf("output is not a PNG (%d bytes)", len(png))
			}
		})
	}
}

func TestPNGNilSpec(t *testing.T) {
	if _, err := PNG(nil); !errors.Is(err, ErrRender) {
		t.Errorf("err = %v, want ErrRender", err)
	}
}

func TestPNGUnknownKind(t *testing.T) {
	spec := &chart.Spec{Kind: chart.Kind("sunburst")}
	if _, err := PNG(spec); !errors.Is(err, ErrRender) {
		t.Errorf("err = %v, want ErrRender", err)
	}
}

func TestParseHexColor(t *testing.T) {
	c, ok := parseHexColor("#4f46e5")
	if !ok {
		t.Fatal("valid hex color rejected")
	}
	r, g, b, _ := c.RGBA()
	if r>>8 != 0x4f || g>>8 != 0x46 || b>>8 != 0xe5 {
		t.Errorf("parsed = %v", c)
	}
	if _, ok := parseHexColor("indigo"); ok {
		t.Error("non-hex string accepted")
	}
}
