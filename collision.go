package rowan

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// --- Hitbox configuration ---

// SetHitboxRect switches to a rectangular hitbox with a custom size and an
// offset from the sprite center. A custom size is used as-is and does not
// scale with the sprite. Switching away from a circle clears its radius.
func (s *Sprite) SetHitboxRect(width, height float64, offsetX, offsetY int) {
	s.hitboxShape = HitboxRect
	s.customW = width
	s.customH = height
	s.hasCustomSize = true
	s.offsetX = offsetX
	s.offsetY = offsetY
	s.radius = 0
}

// SetHitboxCircle switches to a circular hitbox with the given radius and an
// offset from the sprite center. Switching away from a rectangle clears its
// custom size.
func (s *Sprite) SetHitboxCircle(radius float64, offsetX, offsetY int) {
	s.hitboxShape = HitboxCircle
	s.radius = radius
	s.offsetX = offsetX
	s.offsetY = offsetY
	s.customW = 0
	s.customH = 0
	s.hasCustomSize = false
}

// ResetHitbox restores the default hitbox: a rectangle matching the frame
// size times the sprite scale, centered on the sprite.
func (s *Sprite) ResetHitbox() {
	s.hitboxShape = HitboxRect
	s.customW = 0
	s.customH = 0
	s.hasCustomSize = false
	s.offsetX = 0
	s.offsetY = 0
	s.radius = 0
}

// HitboxShape returns the active hitbox shape.
func (s *Sprite) HitboxShape() HitboxShape { return s.hitboxShape }

// HitboxRadius returns the circle radius (0 unless the shape is a circle).
func (s *Sprite) HitboxRadius() float64 { return s.radius }

// hitboxCenter returns the hitbox center pixel: the truncated sprite center
// plus the integer offset. Every collision path and DebugDraw derive the
// center through this one function so they can never disagree.
func (s *Sprite) hitboxCenter() (int, int) {
	cx, cy := s.renderCenter()
	return cx + s.offsetX, cy + s.offsetY
}

// hitboxSize returns the rectangle dimensions: the custom size if set,
// otherwise the frame size scaled by the sprite scale.
func (s *Sprite) hitboxSize() (w, h float64) {
	if s.hasCustomSize {
		return s.customW, s.customH
	}
	return float64(s.atlas.FrameWidth()) * s.scale, float64(s.atlas.FrameHeight()) * s.scale
}

// Corners returns the four world-space corners of the rectangular hitbox in
// clockwise order starting top-left, rotated with the sprite and translated
// to the truncated center. This is the exact geometry both collision testing
// and DebugDraw use.
func (s *Sprite) Corners() []cp.Vector {
	w, h := s.hitboxSize()
	halfW, halfH := w/2, h/2

	corners := []cp.Vector{
		{X: -halfW, Y: -halfH},
		{X: halfW, Y: -halfH},
		{X: halfW, Y: halfH},
		{X: -halfW, Y: halfH},
	}

	if s.rotation != 0 {
		// Negated to match the rendered rotation direction (Y grows down,
		// positive rotation is visually counter-clockwise).
		rad := -s.rotation * math.Pi / 180
		sin, cos := math.Sincos(rad)
		for i, c := range corners {
			corners[i] = cp.Vector{
				X: c.X*cos - c.Y*sin,
				Y: c.X*sin + c.Y*cos,
			}
		}
	}

	cx, cy := s.hitboxCenter()
	center := cp.Vector{X: float64(cx), Y: float64(cy)}
	for i := range corners {
		corners[i] = corners[i].Add(center)
	}
	return corners
}

// --- Collision tests ---

// CollidesWith reports whether the two sprites' hitboxes overlap. Dispatch
// depends on the shape pair: circle/circle, circle/rectangle, or
// rectangle/rectangle via the separating axis theorem. The test is
// symmetric: a.CollidesWith(b) == b.CollidesWith(a).
func (s *Sprite) CollidesWith(other *Sprite) bool {
	if s.hitboxShape == HitboxCircle && other.hitboxShape == HitboxCircle {
		return circleCircleCollision(s, other)
	}
	if s.hitboxShape == HitboxCircle {
		return circleRectCollision(s, other)
	}
	if other.hitboxShape == HitboxCircle {
		return circleRectCollision(other, s)
	}
	// Rect vs rect always goes through SAT on the shared corner geometry.
	// An axis-aligned fast path would be a second code path that could
	// drift from what DebugDraw shows.
	return separatingAxisTest(s.Corners(), other.Corners())
}

// CollidesWithGroup returns every sprite in others that collides with s,
// excluding s itself by identity. The whole group is always evaluated.
func (s *Sprite) CollidesWithGroup(others []*Sprite) []*Sprite {
	var hits []*Sprite
	for _, other := range others {
		if other == s {
			continue
		}
		if s.CollidesWith(other) {
			hits = append(hits, other)
		}
	}
	return hits
}

// circleCircleCollision tests two circle hitboxes by distance between
// truncated centers against the radius sum.
func circleCircleCollision(a, b *Sprite) bool {
	ax, ay := a.hitboxCenter()
	bx, by := b.hitboxCenter()
	center1 := cp.Vector{X: float64(ax), Y: float64(ay)}
	center2 := cp.Vector{X: float64(bx), Y: float64(by)}
	return center1.Distance(center2) <= a.radius+b.radius
}

// circleRectCollision tests a circle sprite against a rectangle sprite.
// An unrotated, default-sized rectangle uses the closest-point-on-AABB
// test; anything else goes through the general polygon path.
func circleRectCollision(circle, rect *Sprite) bool {
	ccx, ccy := circle.hitboxCenter()
	center := cp.Vector{X: float64(ccx), Y: float64(ccy)}

	if rect.rotation != 0 || rect.hasCustomSize {
		return circlePolygonCollision(center, circle.radius, rect.Corners())
	}

	w, h := rect.hitboxSize()
	rcx, rcy := rect.hitboxCenter()
	left := float64(rcx) - w/2
	right := float64(rcx) + w/2
	top := float64(rcy) - h/2
	bottom := float64(rcy) + h/2

	closest := cp.Vector{
		X: math.Max(left, math.Min(center.X, right)),
		Y: math.Max(top, math.Min(center.Y, bottom)),
	}
	return center.Distance(closest) <= circle.radius
}

// circlePolygonCollision reports whether a circle overlaps a polygon: either
// the center lies inside the polygon, or some edge passes within the radius.
func circlePolygonCollision(center cp.Vector, radius float64, polygon []cp.Vector) bool {
	if pointInPolygon(center, polygon) {
		return true
	}
	for i := range polygon {
		p1 := polygon[i]
		p2 := polygon[(i+1)%len(polygon)]
		if pointSegmentDistance(center, p1, p2) <= radius {
			return true
		}
	}
	return false
}

// separatingAxisTest reports whether two convex polygons overlap. For each
// edge normal of both polygons, both polygons are projected onto the axis;
// a gap on any axis means no collision. Zero-length edges are skipped since
// a zero vector cannot form a separating axis.
func separatingAxisTest(cornersA, cornersB []cp.Vector) bool {
	for _, corners := range [2][]cp.Vector{cornersA, cornersB} {
		for i := range corners {
			p1 := corners[i]
			p2 := corners[(i+1)%len(corners)]
			normal := p2.Sub(p1).Perp()
			length := normal.Length()
			if length == 0 {
				continue
			}
			axis := normal.Mult(1 / length)

			minA, maxA := projectOntoAxis(cornersA, axis)
			minB, maxB := projectOntoAxis(cornersB, axis)
			if maxA < minB || maxB < minA {
				return false
			}
		}
	}
	return true
}

// projectOntoAxis returns the min and max scalar projections of the corners
// onto a unit axis.
func projectOntoAxis(corners []cp.Vector, axis cp.Vector) (min, max float64) {
	min = corners[0].Dot(axis)
	max = min
	for _, c := range corners[1:] {
		p := c.Dot(axis)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

// pointInPolygon reports whether p lies inside the polygon using the
// ray-casting crossing count over a horizontal ray.
func pointInPolygon(p cp.Vector, polygon []cp.Vector) bool {
	inside := false
	n := len(polygon)
	p1 := polygon[0]
	for i := 1; i <= n; i++ {
		p2 := polygon[i%n]
		if p.Y > math.Min(p1.Y, p2.Y) && p.Y <= math.Max(p1.Y, p2.Y) && p.X <= math.Max(p1.X, p2.X) {
			var xIntersect float64
			if p1.Y != p2.Y {
				xIntersect = (p.Y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y) + p1.X
			}
			if p1.X == p2.X || p.X <= xIntersect {
				inside = !inside
			}
		}
		p1 = p2
	}
	return inside
}

// pointSegmentDistance returns the minimum distance from p to the finite
// segment a-b. A zero-length segment degenerates to point-to-point distance.
func pointSegmentDistance(p, a, b cp.Vector) float64 {
	line := b.Sub(a)
	lenSq := line.Dot(line)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(line) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := a.Add(line.Mult(t))
	return p.Distance(closest)
}

// --- Debug drawing ---

// hitboxColor is the overlay color for DebugDraw.
var hitboxColor = color.RGBA{G: 255, A: 255}

// DebugDraw outlines the hitbox on dst. The outline is exactly the geometry
// CollidesWith tests, derived through the same corner and center functions.
func (s *Sprite) DebugDraw(dst *ebiten.Image) {
	if s.hitboxShape == HitboxCircle {
		cx, cy := s.hitboxCenter()
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(s.radius), 2, hitboxColor, false)
		return
	}
	corners := s.Corners()
	for i := range corners {
		p1 := corners[i]
		p2 := corners[(i+1)%len(corners)]
		vector.StrokeLine(dst,
			float32(p1.X), float32(p1.Y),
			float32(p2.X), float32(p2.Y),
			2, hitboxColor, false)
	}
}
