package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ArchSquash flattens the half ring vertically into an oval-quarter look.
	ArchSquash = 0.666

	// MinArchSegments is the smallest segment count with acceptable curvature.
	MinArchSegments     = 8
	DefaultArchSegments = 32

	// PierLongRepeat is the fixed stone repeat along a pier's long faces.
	PierLongRepeat = 2
)

var (
	axisPX = mgl32.Vec3{1, 0, 0}
	axisNX = mgl32.Vec3{-1, 0, 0}
	axisPY = mgl32.Vec3{0, 1, 0}
	axisNY = mgl32.Vec3{0, -1, 0}
	axisPZ = mgl32.Vec3{0, 0, 1}
	axisNZ = mgl32.Vec3{0, 0, -1}
)

// boxCorners returns the eight corners indexed as pXYZ with 0 = min, 1 = max.
type boxCorners struct {
	p000, p001, p010, p011, p100, p101, p110, p111 mgl32.Vec3
}

func cornersOf(h mgl32.Vec3) boxCorners {
	sx, sy, sz := h[0], h[1], h[2]
	return boxCorners{
		p000: mgl32.Vec3{-sx, -sy, -sz}, p001: mgl32.Vec3{-sx, -sy, sz},
		p010: mgl32.Vec3{-sx, sy, -sz}, p011: mgl32.Vec3{-sx, sy, sz},
		p100: mgl32.Vec3{sx, -sy, -sz}, p101: mgl32.Vec3{sx, -sy, sz},
		p110: mgl32.Vec3{sx, sy, -sz}, p111: mgl32.Vec3{sx, sy, sz},
	}
}

func uvRect(u, v float32) (mgl32.Vec2, mgl32.Vec2, mgl32.Vec2, mgl32.Vec2) {
	return mgl32.Vec2{0, 0}, mgl32.Vec2{u, 0}, mgl32.Vec2{u, v}, mgl32.Vec2{0, v}
}

// BuildBox builds a box of the given half extents. Side faces repeat the
// texture uvScale times. The top face is rotated so V runs along X, which
// keeps road markings along the deck.
//
// A caller that scales an instance by s along X must multiply the X repeat
// by s itself (see UVMul on scene instances). The builder never infers it.
func BuildBox(half mgl32.Vec3, uvScale mgl32.Vec2) *Mesh {
	mustPositive("box", half[0], half[1], half[2])
	c := cornersOf(half)
	m := &Mesh{}
	ta, tb, tc, td := uvRect(uvScale[0], uvScale[1])

	m.addQuad(c.p100, c.p101, c.p111, c.p110, axisPX, ta, tb, tc, td)
	m.addQuad(c.p000, c.p010, c.p011, c.p001, axisNX, ta, tb, tc, td)

	// +Y: U along Z (uvScale.y), V along X (uvScale.x).
	m.addQuad(c.p010, c.p110, c.p111, c.p011, axisPY,
		mgl32.Vec2{0, 0}, mgl32.Vec2{0, uvScale[0]}, mgl32.Vec2{uvScale[1], uvScale[0]}, mgl32.Vec2{uvScale[1], 0})
	m.addQuad(c.p000, c.p001, c.p101, c.p100, axisNY, ta, tb, tc, td)

	m.addQuad(c.p001, c.p011, c.p111, c.p101, axisPZ, ta, tb, tc, td)
	m.addQuad(c.p000, c.p100, c.p110, c.p010, axisNZ, ta, tb, tc, td)
	return m
}

// BuildTieredBox is a box whose top face tiles densely with topUV while the
// sides use the sparser sideUV, so a wide flat top does not look stretched
// next to its thin sides.
func BuildTieredBox(half mgl32.Vec3, topUV, sideUV mgl32.Vec2) *Mesh {
	mustPositive("tiered box", half[0], half[1], half[2])
	sx, sy, sz := half[0], half[1], half[2]
	m := &Mesh{}

	m.addQuad(mgl32.Vec3{-sx, sy, -sz}, mgl32.Vec3{sx, sy, -sz}, mgl32.Vec3{sx, sy, sz}, mgl32.Vec3{-sx, sy, sz}, axisPY,
		mgl32.Vec2{0, 0}, mgl32.Vec2{0, topUV[1]}, mgl32.Vec2{topUV[0], topUV[1]}, mgl32.Vec2{topUV[0], 0})

	sa, sb, sc, sd := uvRect(sideUV[0], sideUV[1])
	m.addQuad(mgl32.Vec3{-sx, -sy, sz}, mgl32.Vec3{sx, -sy, sz}, mgl32.Vec3{sx, -sy, -sz}, mgl32.Vec3{-sx, -sy, -sz}, axisNY,
		sa, sb, sc, sd)

	m.addQuad(mgl32.Vec3{-sx, -sy, sz}, mgl32.Vec3{sx, -sy, sz}, mgl32.Vec3{sx, sy, sz}, mgl32.Vec3{-sx, sy, sz}, axisPZ,
		sa, sb, sc, sd)
	m.addQuad(mgl32.Vec3{sx, -sy, -sz}, mgl32.Vec3{-sx, -sy, -sz}, mgl32.Vec3{-sx, sy, -sz}, mgl32.Vec3{sx, sy, -sz}, axisNZ,
		sa, sb, sc, sd)

	// ±X faces run along Z, so U keeps the side density per unit length.
	uZ := sideUV[0] * (sz / sx)
	za, zb, zc, zd := uvRect(uZ, sideUV[1])
	m.addQuad(mgl32.Vec3{sx, -sy, sz}, mgl32.Vec3{sx, -sy, -sz}, mgl32.Vec3{sx, sy, -sz}, mgl32.Vec3{sx, sy, sz}, axisPX,
		za, zb, zc, zd)
	m.addQuad(mgl32.Vec3{-sx, -sy, -sz}, mgl32.Vec3{-sx, -sy, sz}, mgl32.Vec3{-sx, sy, sz}, mgl32.Vec3{-sx, sy, -sz}, axisNX,
		za, zb, zc, zd)
	return m
}

// BuildPierBox gives the long ±X faces a fixed PierLongRepeat along Z
// regardless of pier length.
func BuildPierBox(half mgl32.Vec3) *Mesh {
	mustPositive("pier box", half[0], half[1], half[2])
	c := cornersOf(half)
	m := &Mesh{}

	const vH = 1
	la, lb, lc, ld := uvRect(PierLongRepeat, vH)
	m.addQuad(c.p100, c.p101, c.p111, c.p110, axisPX, la, lb, lc, ld)
	// First edge runs along +Z, otherwise U/V would swap on this face.
	m.addQuad(c.p000, c.p001, c.p011, c.p010, axisNX, la, lb, lc, ld)

	ya, yb, yc, yd := uvRect(1, PierLongRepeat)
	m.addQuad(c.p010, c.p110, c.p111, c.p011, axisPY, ya, yb, yc, yd)
	m.addQuad(c.p000, c.p001, c.p101, c.p100, axisNY, ya, yb, yc, yd)

	ua, ub, uc, ud := uvRect(1, 1)
	m.addQuad(c.p001, c.p011, c.p111, c.p101, axisPZ, ua, ub, uc, ud)
	m.addQuad(c.p000, c.p100, c.p110, c.p010, axisNZ, ua, ub, uc, ud)
	return m
}

// BuildRibUnit builds a unit cube whose UVs come straight from the two
// local axes orthogonal to each face normal. Instances scaled
// non-uniformly keep the texture aligned with their own height.
func BuildRibUnit() *Mesh {
	const s = 0.5
	c := cornersOf(mgl32.Vec3{s, s, s})
	m := &Mesh{}

	zy := func(p mgl32.Vec3) mgl32.Vec2 { return mgl32.Vec2{(p[2] + s) / (2 * s), (p[1] + s) / (2 * s)} }
	xy := func(p mgl32.Vec3) mgl32.Vec2 { return mgl32.Vec2{(p[0] + s) / (2 * s), (p[1] + s) / (2 * s)} }
	xz := func(p mgl32.Vec3) mgl32.Vec2 { return mgl32.Vec2{(p[0] + s) / (2 * s), (p[2] + s) / (2 * s)} }

	face := func(a, b, cc, d, n mgl32.Vec3, uv func(mgl32.Vec3) mgl32.Vec2) {
		m.addQuad(a, b, cc, d, n, uv(a), uv(b), uv(cc), uv(d))
	}
	face(c.p100, c.p101, c.p111, c.p110, axisPX, zy)
	face(c.p000, c.p010, c.p011, c.p001, axisNX, zy)
	face(c.p001, c.p011, c.p111, c.p101, axisPZ, xy)
	face(c.p000, c.p100, c.p110, c.p010, axisNZ, xy)
	face(c.p010, c.p110, c.p111, c.p011, axisPY, xz)
	face(c.p000, c.p001, c.p101, c.p100, axisNY, xz)
	return m
}

// BuildCurb builds a long curb box repeating repX times along X on every
// long face and once on the end caps.
func BuildCurb(half mgl32.Vec3, repX float32) *Mesh {
	mustPositive("curb", half[0], half[1], half[2], repX)
	c := cornersOf(half)
	m := &Mesh{}
	const repY, repZ = 1, 1

	ea, eb, ec, ed := uvRect(repZ, repY)
	m.addQuad(c.p100, c.p101, c.p111, c.p110, axisPX, ea, eb, ec, ed)
	m.addQuad(c.p000, c.p010, c.p011, c.p001, axisNX, ea, eb, ec, ed)

	ta, tb, tc, td := uvRect(repX, repZ)
	m.addQuad(c.p010, c.p110, c.p111, c.p011, axisPY, ta, tb, tc, td)
	m.addQuad(c.p000, c.p100, c.p101, c.p001, axisNY, ta, tb, tc, td)

	sa, sb, sc, sd := uvRect(repX, repY)
	m.addQuad(c.p001, c.p011, c.p111, c.p101, axisPZ, sa, sb, sc, sd)
	m.addQuad(c.p000, c.p100, c.p110, c.p010, axisNZ, sa, sb, sc, sd)
	return m
}

// BuildArchRing extrudes a squashed half ring lying in the X-Y plane along
// Z. segments+1 samples are taken over 180 degrees. The result has outer,
// inner, front and back strips plus two end caps.
func BuildArchRing(segments int, outerRadius, thickness, halfDepth float32) *Mesh {
	if segments < MinArchSegments {
		panic(fmt.Sprintf("geom: arch ring needs at least %d segments, got %d", MinArchSegments, segments))
	}
	mustPositive("arch ring", outerRadius, thickness, halfDepth)
	innerRadius := outerRadius - thickness
	mustPositive("arch ring inner radius", innerRadius)

	ring := func(radius, z float32) []mgl32.Vec3 {
		pts := make([]mgl32.Vec3, 0, segments+1)
		for k := 0; k <= segments; k++ {
			ang := math.Pi * float64(k) / float64(segments)
			x := float32(math.Cos(ang)) * radius
			y := float32(math.Sin(ang)) * radius * ArchSquash
			pts = append(pts, mgl32.Vec3{x, y, z})
		}
		return pts
	}

	m := &Mesh{}
	emit := func(a, b, c, d mgl32.Vec3) {
		n := b.Sub(a).Cross(d.Sub(a))
		if l := n.Len(); l > 1e-8 {
			n = n.Mul(1 / l)
		}
		m.addQuad(a, b, c, d, n, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 1})
	}

	outerFront := ring(outerRadius, -halfDepth)
	outerBack := ring(outerRadius, halfDepth)
	innerFront := ring(innerRadius, -halfDepth)
	innerBack := ring(innerRadius, halfDepth)

	for k := 0; k < segments; k++ {
		emit(outerFront[k], outerFront[k+1], outerBack[k+1], outerBack[k])
	}
	for k := 0; k < segments; k++ {
		emit(innerBack[k], innerBack[k+1], innerFront[k+1], innerFront[k])
	}
	for k := 0; k < segments; k++ {
		emit(outerFront[k], outerFront[k+1], innerFront[k+1], innerFront[k])
	}
	for k := 0; k < segments; k++ {
		emit(innerBack[k], innerBack[k+1], outerBack[k+1], outerBack[k])
	}
	emit(outerFront[0], outerBack[0], innerBack[0], innerFront[0])
	emit(outerBack[segments], outerFront[segments], innerFront[segments], innerBack[segments])
	return m
}

// BuildWaterPlane builds a flat quad at y = 0 facing up.
func BuildWaterPlane(half, uvRepeat mgl32.Vec2) *Mesh {
	mustPositive("water plane", half[0], half[1])
	sx, sz := half[0], half[1]
	return &Mesh{
		Vertices: []Vertex{
			{Pos: mgl32.Vec3{-sx, 0, -sz}, Normal: axisPY, UV: mgl32.Vec2{0, 0}},
			{Pos: mgl32.Vec3{sx, 0, -sz}, Normal: axisPY, UV: mgl32.Vec2{uvRepeat[0], 0}},
			{Pos: mgl32.Vec3{sx, 0, sz}, Normal: axisPY, UV: mgl32.Vec2{uvRepeat[0], uvRepeat[1]}},
			{Pos: mgl32.Vec3{-sx, 0, sz}, Normal: axisPY, UV: mgl32.Vec2{0, uvRepeat[1]}},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
}

// BoxMapUV projects an object-space position onto the plane picked by the
// dominant axis of its normal. The lit shader uses the same rule for
// box-mapped draws.
func BoxMapUV(pos, normal, scale mgl32.Vec3) mgl32.Vec2 {
	ax := float32(math.Abs(float64(normal[0])))
	ay := float32(math.Abs(float64(normal[1])))
	az := float32(math.Abs(float64(normal[2])))
	switch {
	case ay >= ax && ay >= az:
		return mgl32.Vec2{pos[0] * scale[0], pos[2] * scale[2]}
	case ax >= ay && ax >= az:
		return mgl32.Vec2{pos[2] * scale[2], pos[1] * scale[1]}
	default:
		return mgl32.Vec2{pos[0] * scale[0], pos[1] * scale[1]}
	}
}
