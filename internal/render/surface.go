package render

import (
	"math"
	"sort"
)

type vec3 struct{ x, y, z float64 }

// camera orbits the origin; pitch, yaw and roll are radians.
type camera struct {
	pitch, yaw, roll float64
	zoom             float64
	distance         float64
}

func newCamera() *camera {
	return &camera{pitch: 0.55, yaw: -0.6, zoom: 1, distance: 50}
}

func (c *camera) rotate(dPitch, dYaw, dRoll float64) {
	c.pitch += dPitch
	c.yaw += dYaw
	c.roll += dRoll
}

func (c *camera) zoomBy(f float64) {
	c.zoom = math.Max(0.2, math.Min(8, c.zoom*f))
}

func (c *camera) orient(p vec3) vec3 {
	cp, sp := math.Cos(c.pitch), math.Sin(c.pitch)
	p.y, p.z = p.y*cp-p.z*sp, p.y*sp+p.z*cp
	cy, sy := math.Cos(c.yaw), math.Sin(c.yaw)
	p.x, p.z = p.x*cy+p.z*sy, -p.x*sy+p.z*cy
	cr, sr := math.Cos(c.roll), math.Sin(c.roll)
	p.x, p.y = p.x*cr-p.y*sr, p.x*sr+p.y*cr
	return p
}

// project maps p onto a w x h pixel plane. ok is false behind the eye.
func (c *camera) project(p vec3, w, h int) (sx, sy int, depth float64, ok bool) {
	r := c.orient(p)
	r.x, r.y, r.z = r.x*c.zoom, r.y*c.zoom, r.z*c.zoom
	if r.z >= c.distance-0.1 {
		return 0, 0, 0, false
	}
	persp := c.distance / (c.distance - r.z)
	scale := math.Min(float64(w), float64(h)) / 24
	sx = int(r.x*persp*scale) + w/2
	sy = int(-r.y*persp*scale) + h/2
	return sx, sy, r.z, true
}

type segment struct{ a, b vec3 }

// mesh builds the wireframe of u over a window of frames ending at frame,
// downsampled to at most maxCols x maxRows vertices. x spans [-10, 10],
// time spans [-10, 10] and u is scaled into [-4, 4].
func mesh(f *Field, frame, maxCols, maxRows int) []segment {
	if f == nil || f.Frames() == 0 || len(f.X) == 0 {
		return nil
	}
	lo, hi := f.Range()
	amp := math.Max(math.Abs(lo), math.Abs(hi))
	if amp == 0 {
		amp = 1
	}

	cols := sampleIndices(len(f.X), maxCols)
	end := clamp(frame, 0, f.Frames()-1)
	start := end - maxRows + 1
	if start < 0 {
		start = 0
	}
	rows := make([]int, 0, end-start+1)
	for k := start; k <= end; k++ {
		rows = append(rows, k)
	}

	vertex := func(ri, ci int) vec3 {
		x := axis(ci, len(cols))
		z := axis(ri, maxRows)
		return vec3{x: x, y: f.U[rows[ri]][cols[ci]] / amp * 4, z: z}
	}

	segs := make([]segment, 0, 2*len(rows)*len(cols))
	for ri := range rows {
		for ci := range cols {
			if ci+1 < len(cols) {
				segs = append(segs, segment{vertex(ri, ci), vertex(ri, ci+1)})
			}
			if ri+1 < len(rows) {
				segs = append(segs, segment{vertex(ri, ci), vertex(ri+1, ci)})
			}
		}
	}
	return segs
}

// draw renders segments far to near onto cv.
func draw(cv *canvas, cam *camera, segs []segment) {
	type projected struct {
		x0, y0, x1, y1 int
		depth          float64
	}
	w, h := cv.pixelSize()
	out := make([]projected, 0, len(segs))
	for _, s := range segs {
		x0, y0, d0, ok0 := cam.project(s.a, w, h)
		x1, y1, d1, ok1 := cam.project(s.b, w, h)
		if !ok0 || !ok1 {
			continue
		}
		out = append(out, projected{x0, y0, x1, y1, (d0 + d1) / 2})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].depth < out[j].depth })
	for _, p := range out {
		cv.line(p.x0, p.y0, p.x1, p.y1)
	}
}

// Snapshot draws frame of f from the default camera as unstyled braille text.
func Snapshot(f *Field, frame, cols, rows int) string {
	cv := newCanvas(cols, rows)
	draw(cv, newCamera(), mesh(f, frame, meshCols, meshRows))
	return cv.String()
}

func sampleIndices(n, limit int) []int {
	if limit < 2 {
		limit = 2
	}
	if n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, limit)
	for i := range idx {
		idx[i] = i * (n - 1) / (limit - 1)
	}
	return idx
}

func axis(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return -10 + 20*float64(i)/float64(n-1)
}
