package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/eulergrowth/internal/analysis"
)

type XY struct{ X, Y float64 }

type Series struct {
	Name   string
	Color  string
	Points []XY
}

// ComparisonToSVG plots the Euler samples against the closed-form curve.
func ComparisonToSVG(cmp *analysis.Comparison, width, height int) string {
	euler := Series{Name: "euler", Color: "#ff4444"}
	exact := Series{Name: "analytical", Color: "#00ccff"}
	for _, s := range cmp.Samples {
		euler.Points = append(euler.Points, XY{s.Time, s.Euler})
		exact.Points = append(exact.Points, XY{s.Time, s.Exact})
	}
	return SeriesToSVG([]Series{exact, euler}, width, height)
}

// SeriesToSVG draws every series as a polyline over shared axes. Series with
// fewer than two points are drawn as a single dot.
func SeriesToSVG(series []Series, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	project := func(p XY) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		if len(s.Points) == 1 {
			x, y := project(s.Points[0])
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="2" fill="%s"/>
`, x, y, s.Color)
			continue
		}

		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Color)
		for i, p := range s.Points {
			x, y := project(p)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	// Legend
	for i, s := range series {
		y := 16 + i*16
		fmt.Fprintf(&sb, `<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, y, s.Color, escape(s.Name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
