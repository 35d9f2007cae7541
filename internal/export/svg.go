package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/stochsim/internal/experiment"
	"github.com/san-kum/stochsim/internal/viz"
)

// CanvasToSVG draws every set dot of a Braille canvas as a circle.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	pw, ph := canvas.PixelSize()
	width, height := float64(pw)*scale, float64(ph)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height)

	r := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

type xy struct{ X, Y float64 }

// points flattens r to a plane: state index or 1D position by step, the
// first two axes of 2D and 3D paths, and the N(t) staircase for Poisson.
func points(r *experiment.Result) []xy {
	switch r.Process {
	case "markov":
		if r.Chain == nil {
			return nil
		}
		idx := r.Trace.Indices(r.Chain.Index)
		out := make([]xy, len(idx))
		for i, v := range idx {
			out[i] = xy{float64(i), v}
		}
		return out
	case "poisson":
		out := []xy{{0, 0}}
		for i, t := range r.Timeline {
			out = append(out, xy{t, float64(i)}, xy{t, float64(i + 1)})
		}
		return append(out, xy{r.Horizon, float64(len(r.Timeline))})
	default:
		out := make([]xy, len(r.Path))
		for i, p := range r.Path {
			if len(p) == 1 {
				out[i] = xy{float64(i), p[0]}
			} else if len(p) > 1 {
				out[i] = xy{p[0], p[1]}
			}
		}
		return out
	}
}

// TrajectorySVG renders r as a single polyline with the start marked.
func TrajectorySVG(r *experiment.Result, width, height int, strokeColor string) string {
	pts := points(r)
	if len(pts) == 0 {
		pts = []xy{{0, 0}}
	}

	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	project := func(p xy) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width), float64(height) - (p.Y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<title>%s seed %d</title>
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, r.Process, r.Seed, strokeColor)

	for i, p := range pts {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")

	sx, sy := project(pts[0])
	fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n</svg>", sx, sy, strokeColor)
	return sb.String()
}
