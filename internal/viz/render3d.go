package viz

import (
	"math"
	"sort"

	"github.com/san-kum/stochsim/internal/stochastic"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// vecOf lifts a point of any supported dimension into 3D.
func vecOf(p stochastic.Point) Vec3 {
	var v Vec3
	if len(p) > 0 {
		v.X = p[0]
	}
	if len(p) > 1 {
		v.Y = p[1]
	}
	if len(p) > 2 {
		v.Z = p[2]
	}
	return v
}

// Camera orbits the origin and projects onto the canvas plane.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 5, Near: 0.1, RotX: 0.45, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to sub-pixel screen coordinates on a
// sw x sh surface. It returns x, y, depth and whether the point is on
// screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe           { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3)   { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p Vec3)     { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Append(o *Wireframe) { w.Edges = append(w.Edges, o.Edges...) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far-to-near onto the canvas.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

func CreateAxesWireframe(l float64) *Wireframe {
	w, o := NewWireframe(), Vec3{}
	w.AddEdge(o, Vec3{l, 0, 0})
	w.AddEdge(o, Vec3{0, l, 0})
	w.AddEdge(o, Vec3{0, 0, l})
	return w
}

// normalizer recentres a path on the origin and scales its largest extent
// to unit length so the camera framing is independent of step size.
type normalizer struct {
	centre Vec3
	scale  float64
}

func newNormalizer(path stochastic.Path) normalizer {
	lo, hi := path.Bounds()
	a, b := vecOf(lo), vecOf(hi)
	span := math.Max(b.X-a.X, math.Max(b.Y-a.Y, b.Z-a.Z))
	if span < 1e-12 {
		span = 1
	}
	return normalizer{centre: a.Add(b).Scale(0.5), scale: 2 / span}
}

func (n normalizer) apply(p stochastic.Point) Vec3 {
	return vecOf(p).Sub(n.centre).Scale(n.scale)
}

// PathWireframe builds the polyline through the first upto+1 points of path.
func PathWireframe(path stochastic.Path, upto int) *Wireframe {
	w := NewWireframe()
	if len(path) == 0 {
		return w
	}
	if upto >= len(path) {
		upto = len(path) - 1
	}
	n := newNormalizer(path)
	prev := n.apply(path[0])
	w.AddPoint(prev)
	for i := 1; i <= upto; i++ {
		cur := n.apply(path[i])
		w.AddEdge(prev, cur)
		prev = cur
	}
	return w
}
