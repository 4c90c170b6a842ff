package export

import (
	"encoding/xml"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/eulergrowth/internal/analysis"
	"github.com/san-kum/eulergrowth/internal/integrators"
)

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return
			}
			t.Fatalf("malformed svg: %v", err)
		}
	}
}

func TestComparisonToSVG(t *testing.T) {
	r := math.Ln2 / 0.5
	traj, err := integrators.Integrate(1, r, 0.1, 5)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	svg := ComparisonToSVG(analysis.Compare(traj, 1, r), 640, 480)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("unexpected svg envelope")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected 2 paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, ">euler</text>") || !strings.Contains(svg, ">analytical</text>") {
		t.Error("missing legend entries")
	}
	wellFormed(t, svg)
}

func TestSeriesToSVG_Degenerate(t *testing.T) {
	if svg := SeriesToSVG(nil, 100, 100); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}

	svg := SeriesToSVG([]Series{{Name: "a<b", Color: "#fff", Points: []XY{{0, 10}}}}, 100, 100)
	if !strings.Contains(svg, "<circle") {
		t.Error("expected a single dot for a one-point series")
	}
	if !strings.Contains(svg, "a&lt;b") {
		t.Error("legend was not escaped")
	}
	wellFormed(t, svg)
}
