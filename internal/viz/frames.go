package viz

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/stochsim/internal/experiment"
	"github.com/san-kum/stochsim/internal/markov"
	"github.com/san-kum/stochsim/internal/poisson"
	"github.com/san-kum/stochsim/internal/stochastic"
)

// MaxFrames caps the number of frames produced for one result. Longer
// results are sampled evenly; the final sample is always kept.
const MaxFrames = 600

var ErrNothingToDraw = errors.New("viz: nothing to draw")

// Frames renders result cumulatively, one canvas per sample.
func Frames(r *experiment.Result, w, h int) ([]*Canvas, error) {
	if r == nil {
		return nil, ErrNothingToDraw
	}
	idx := sampleIndices(frameCount(r), MaxFrames)
	if len(idx) == 0 {
		return nil, ErrNothingToDraw
	}
	cam := NewCamera()
	out := make([]*Canvas, 0, len(idx))
	for _, i := range idx {
		c := NewCanvas(w, h)
		if err := Draw(c, r, i, cam); err != nil {
			return nil, err
		}
		out = append(out, c)
		cam.RotateY(0.04)
	}
	return out, nil
}

// frameCount is the number of distinct cumulative states of r. Poisson has
// one more than its arrival count for the empty starting frame.
func frameCount(r *experiment.Result) int {
	switch r.Process {
	case "markov":
		return len(r.Trace)
	case "poisson":
		return len(r.Timeline) + 1
	default:
		return len(r.Path)
	}
}

func sampleIndices(n, limit int) []int {
	if n <= 0 {
		return nil
	}
	if n <= limit {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, limit)
	stride := float64(n-1) / float64(limit-1)
	for k := 0; k < limit; k++ {
		out = append(out, int(math.Round(float64(k)*stride)))
	}
	return out
}

// Draw renders the state of r after sample upto onto c. cam is used for 3D
// paths only and may be nil otherwise.
func Draw(c *Canvas, r *experiment.Result, upto int, cam *Camera) error {
	switch r.Process {
	case "markov":
		if r.Chain == nil || len(r.Trace) == 0 {
			return ErrNothingToDraw
		}
		drawChain(c, r.Chain, r.Trace, clampIndex(upto, len(r.Trace)))
	case "poisson":
		drawArrivals(c, r.Timeline, r.Horizon, min(max(upto, 0), len(r.Timeline)))
	case "brownian", "walk":
		if len(r.Path) == 0 {
			return ErrNothingToDraw
		}
		upto = clampIndex(upto, len(r.Path))
		switch r.Path.Dim() {
		case 1:
			drawSeries(c, r.Path, upto)
		case 2:
			drawTrail(c, r.Path, upto)
		case 3:
			if cam == nil {
				cam = NewCamera()
			}
			drawPath3D(c, r.Path, upto, cam)
		default:
			return fmt.Errorf("viz: cannot draw %d-dimensional path", r.Path.Dim())
		}
	default:
		return fmt.Errorf("viz: cannot draw process %q", r.Process)
	}
	return nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// drawSeries plots a 1D path as position against step.
func drawSeries(c *Canvas, path stochastic.Path, upto int) {
	lo, hi := path.Bounds()
	vp := newViewport(c, 0, float64(len(path)-1), lo[0], hi[0], 2)
	pw, ph := c.PixelSize()

	// dotted line at the starting position
	_, by := vp.point(0, path[0][0])
	for x := 0; x < pw; x += 4 {
		c.Set(x, by)
	}

	px, py := vp.point(0, path[0][0])
	for i := 1; i <= upto; i++ {
		x, y := vp.point(float64(i), path[i][0])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
	c.FillCircle(px, py, 1)

	c.Label(0, 0, fmt.Sprintf("%.2f", hi[0]))
	c.Label(0, ph-1, fmt.Sprintf("%.2f", lo[0]))
}

// drawTrail plots a 2D path in the plane, start ringed, head filled.
func drawTrail(c *Canvas, path stochastic.Path, upto int) {
	lo, hi := path.Bounds()
	vp := newViewport(c, lo[0], hi[0], lo[1], hi[1], 3)

	sx, sy := vp.point(path[0][0], path[0][1])
	c.DrawCircle(sx, sy, 2)

	px, py := sx, sy
	for i := 1; i <= upto; i++ {
		x, y := vp.point(path[i][0], path[i][1])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
	c.FillCircle(px, py, 1)
}

func drawPath3D(c *Canvas, path stochastic.Path, upto int, cam *Camera) {
	wf := CreateAxesWireframe(1.2)
	wf.Append(PathWireframe(path, upto))
	Render3D(c, wf, cam)

	head := newNormalizer(path).apply(path[upto])
	pw, ph := c.PixelSize()
	if x, y, _, ok := cam.Project(head, pw, ph); ok {
		c.FillCircle(x, y, 1)
	}
}

// drawArrivals draws N(t) as a staircase over [0, horizon] with the first
// shown arrivals, plus a tick per arrival along the time axis.
func drawArrivals(c *Canvas, tl poisson.Timeline, horizon float64, shown int) {
	top := float64(len(tl))
	if top < 1 {
		top = 1
	}
	if horizon <= 0 {
		horizon = 1
	}
	vp := newViewport(c, 0, horizon, 0, top, 2)
	pw, ph := c.PixelSize()

	px, py := vp.point(0, 0)
	for i := 0; i < shown; i++ {
		x, y := vp.point(tl[i], float64(i))
		c.DrawLine(px, py, x, y)
		_, up := vp.point(tl[i], float64(i+1))
		c.DrawLine(x, y, x, up)
		px, py = x, up

		c.DrawLine(x, ph-1, x, ph-3)
	}
	if shown == len(tl) {
		x, _ := vp.point(horizon, 0)
		c.DrawLine(px, py, x, py)
	}

	c.Label(0, 0, fmt.Sprintf("N=%d", shown))
	c.Label(pw-8, ph-1, fmt.Sprintf("t=%.1f", horizon))
}

const nodeRadius = 3

type node struct{ x, y, ux, uy float64 }

// layoutChain places states evenly on a circle, first state at the top.
func layoutChain(c *Canvas, n int) []node {
	pw, ph := c.PixelSize()
	cx, cy := float64(pw)/2, float64(ph)/2
	radius := math.Min(cx, cy) - 3*nodeRadius - 6
	if radius < 2*nodeRadius {
		radius = 2 * nodeRadius
	}
	nodes := make([]node, n)
	if n == 1 {
		nodes[0] = node{cx, cy, 0, -1}
		return nodes
	}
	for i := range nodes {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		ux, uy := math.Cos(a), math.Sin(a)
		nodes[i] = node{cx + radius*ux, cy + radius*uy, ux, uy}
	}
	return nodes
}

// drawChain draws the state graph with the state at trace[upto] filled and
// the transition that led to it drawn thick.
func drawChain(c *Canvas, chain *markov.Chain, trace markov.Trace, upto int) {
	states := chain.States()
	nodes := layoutChain(c, len(states))

	cur, _ := chain.Index(trace[upto])
	prev := -1
	if upto > 0 {
		prev, _ = chain.Index(trace[upto-1])
	}
	labels := c.Width >= 40

	for _, e := range chain.Edges() {
		i, _ := chain.Index(e.From)
		j, _ := chain.Index(e.To)
		taken := i == prev && j == cur

		if e.Self {
			n := nodes[i]
			lx := n.x + n.ux*(nodeRadius+3)
			ly := n.y + n.uy*(nodeRadius+3)
			c.DrawCircle(int(lx), int(ly), 3)
			if taken {
				c.DrawCircle(int(lx), int(ly), 2)
			}
			if labels {
				c.Label(int(lx+n.ux*6), int(ly+n.uy*6), fmt.Sprintf("%.2f", e.Prob))
			}
			continue
		}

		a, b := nodes[i], nodes[j]
		dx, dy := b.x-a.x, b.y-a.y
		d := math.Hypot(dx, dy)
		if d < 1e-9 {
			continue
		}
		dx, dy = dx/d, dy/d
		// opposing directions of a bidirectional pair run side by side
		var ox, oy float64
		if e.Bidirectional {
			ox, oy = -dy*2, dx*2
		}
		x0 := int(a.x + dx*(nodeRadius+1) + ox)
		y0 := int(a.y + dy*(nodeRadius+1) + oy)
		x1 := int(b.x - dx*(nodeRadius+1) + ox)
		y1 := int(b.y - dy*(nodeRadius+1) + oy)
		if taken {
			c.DrawThickLine(x0, y0, x1, y1)
		} else {
			c.DrawLine(x0, y0, x1, y1)
		}
		arrowHead(c, x0, y0, x1, y1)
		if labels {
			c.Label(int(a.x+dx*d/3+ox*2), int(a.y+dy*d/3+oy*2), fmt.Sprintf("%.2f", e.Prob))
		}
	}

	for i, n := range nodes {
		if i == cur {
			c.FillCircle(int(n.x), int(n.y), nodeRadius)
		} else {
			c.DrawCircle(int(n.x), int(n.y), nodeRadius)
		}
		off := float64(nodeRadius + 6)
		if len(states) == 1 {
			off = 0
		}
		c.Label(int(n.x+n.ux*off)-len(states[i]), int(n.y+n.uy*off), states[i])
	}
}

func arrowHead(c *Canvas, x0, y0, x1, y1 int) {
	a := math.Atan2(float64(y1-y0), float64(x1-x0))
	for _, s := range []float64{-0.5, 0.5} {
		ax := x1 - int(math.Round(3*math.Cos(a+s)))
		ay := y1 - int(math.Round(3*math.Sin(a+s)))
		c.DrawLine(x1, y1, ax, ay)
	}
}
