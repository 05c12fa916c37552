package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproach(t *testing.T) {
	assert.Equal(t, 0.5, Approach(0, 1, 0.5))
	assert.Equal(t, 1.0, Approach(0.9, 1, 0.5))
	assert.Equal(t, 0.0, Approach(0.2, 0, 0.5))
	assert.Equal(t, 0.3, Approach(0.3, 0.3, 0.5))
}

func TestClampF(t *testing.T) {
	assert.Equal(t, 0.1, ClampF(-3, 0.1, 1.35))
	assert.Equal(t, 1.35, ClampF(2, 0.1, 1.35))
	assert.Equal(t, 0.7, ClampF(0.7, 0.1, 1.35))
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, WrapAngle(math.Pi/2+4*math.Pi), 1e-9)
	assert.InDelta(t, math.Pi, WrapAngle(-math.Pi), 1e-9)
}

func TestRandDeterministic(t *testing.T) {
	a, b := NewRand(1337), NewRand(1337)
	for i := 0; i < 16; i++ {
		require.Equal(t, a.NextU64(), b.NextU64())
	}
	r := NewRand(7)
	for i := 0; i < 100; i++ {
		f := r.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
}

func TestRandShuffleIsPermutation(t *testing.T) {
	vals := []int{0, 1, 2, 3, 4}
	NewRand(1337).Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, vals)
}

func TestModelMatrixOrder(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = mgl64.Vec3{math.Pi / 2, math.Pi / 2, 0}

	// Y·X: the X turn runs first on the point, then Y.
	got := TransformPoint(tr.ModelMatrix(), mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 1, got.X(), 1e-9)
	assert.InDelta(t, 0, got.Y(), 1e-9)
	assert.InDelta(t, 0, got.Z(), 1e-9)

	tr = NewTransform()
	tr.Position = mgl64.Vec3{1, 2, 3}
	tr.Scale = mgl64.Vec3{2, 2, 2}
	got = TransformPoint(tr.ModelMatrix(), mgl64.Vec3{1, 0, 0})
	assert.True(t, got.ApproxEqual(mgl64.Vec3{3, 2, 3}), "got %v", got)
}

func faceVerts(m *Mesh, n mgl32.Vec3) []Vertex {
	var out []Vertex
	for _, v := range m.Vertices {
		if v.Normal.ApproxEqual(n) {
			out = append(out, v)
		}
	}
	return out
}

func maxUV(vs []Vertex) mgl32.Vec2 {
	var mx mgl32.Vec2
	for _, v := range vs {
		mx[0] = float32(math.Max(float64(mx[0]), float64(v.UV[0])))
		mx[1] = float32(math.Max(float64(mx[1]), float64(v.UV[1])))
	}
	return mx
}

func TestBuildBox(t *testing.T) {
	half := mgl32.Vec3{12, 0.25, 4.5}
	m := BuildBox(half, mgl32.Vec2{6, 2})

	require.Len(t, m.Vertices, 24)
	require.Len(t, m.Indices, 36)
	assert.Equal(t, 12, m.TriangleCount())

	mn, mx := m.Bounds()
	assert.Equal(t, half.Mul(-1), mn)
	assert.Equal(t, half, mx)

	for _, v := range m.Vertices {
		assert.Greater(t, v.Pos.Dot(v.Normal), float32(0), "normal %v at %v points inward", v.Normal, v.Pos)
	}

	top := faceVerts(m, axisPY)
	require.Len(t, top, 4)
	assert.Equal(t, mgl32.Vec2{2, 6}, maxUV(top))
	for _, v := range top {
		// V follows the deck length.
		if v.Pos.X() > 0 {
			assert.Equal(t, float32(6), v.UV.Y())
		} else {
			assert.Equal(t, float32(0), v.UV.Y())
		}
	}

	side := faceVerts(m, axisPZ)
	assert.Equal(t, mgl32.Vec2{6, 2}, maxUV(side))
}

func TestBuildTieredBox(t *testing.T) {
	m := BuildTieredBox(mgl32.Vec3{22, 1.5, 28}, mgl32.Vec2{7, 7}, mgl32.Vec2{6, 0.5})
	require.Len(t, m.Vertices, 24)

	assert.Equal(t, mgl32.Vec2{7, 7}, maxUV(faceVerts(m, axisPY)))
	assert.Equal(t, mgl32.Vec2{6, 0.5}, maxUV(faceVerts(m, axisPZ)))

	end := maxUV(faceVerts(m, axisPX))
	assert.InDelta(t, 6*28.0/22.0, end.X(), 1e-5)
	assert.InDelta(t, 0.5, end.Y(), 1e-6)
}

func TestBuildPierBoxRepeatIgnoresLength(t *testing.T) {
	short := BuildPierBox(mgl32.Vec3{1.75, 2, 4.7})
	long := BuildPierBox(mgl32.Vec3{1.75, 2, 40})

	for _, m := range []*Mesh{short, long} {
		assert.Equal(t, mgl32.Vec2{PierLongRepeat, 1}, maxUV(faceVerts(m, axisPX)))
		assert.Equal(t, mgl32.Vec2{PierLongRepeat, 1}, maxUV(faceVerts(m, axisNX)))
		assert.Equal(t, mgl32.Vec2{1, 1}, maxUV(faceVerts(m, axisPZ)))
	}
	for _, v := range faceVerts(short, axisNX) {
		// U runs along +Z on both long faces.
		if v.Pos.Z() > 0 {
			assert.Equal(t, float32(PierLongRepeat), v.UV.X())
		} else {
			assert.Equal(t, float32(0), v.UV.X())
		}
	}
}

func TestBuildRibUnitUVFromLocalAxes(t *testing.T) {
	m := BuildRibUnit()
	mn, mx := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, mn)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, mx)

	for _, v := range m.Vertices {
		var want mgl32.Vec2
		switch {
		case v.Normal.X() != 0:
			want = mgl32.Vec2{v.Pos.Z() + 0.5, v.Pos.Y() + 0.5}
		case v.Normal.Z() != 0:
			want = mgl32.Vec2{v.Pos.X() + 0.5, v.Pos.Y() + 0.5}
		default:
			want = mgl32.Vec2{v.Pos.X() + 0.5, v.Pos.Z() + 0.5}
		}
		assert.Equal(t, want, v.UV)
	}
}

func TestBuildCurb(t *testing.T) {
	m := BuildCurb(mgl32.Vec3{12, 0.45, 0.45}, 6)
	assert.Equal(t, mgl32.Vec2{6, 1}, maxUV(faceVerts(m, axisPY)))
	assert.Equal(t, mgl32.Vec2{6, 1}, maxUV(faceVerts(m, axisNZ)))
	assert.Equal(t, mgl32.Vec2{1, 1}, maxUV(faceVerts(m, axisPX)))
}

func TestBuildArchRing(t *testing.T) {
	const seg = 32
	m := BuildArchRing(seg, 1, 0.03, 0.18)

	quads := 4*seg + 2
	assert.Len(t, m.Vertices, quads*4)
	assert.Len(t, m.Indices, quads*6)

	mn, mx := m.Bounds()
	assert.InDelta(t, -1, mn.X(), 1e-5)
	assert.InDelta(t, 1, mx.X(), 1e-5)
	assert.InDelta(t, 0, mn.Y(), 1e-5)
	assert.InDelta(t, ArchSquash, mx.Y(), 1e-5)
	assert.InDelta(t, -0.18, mn.Z(), 1e-6)
	assert.InDelta(t, 0.18, mx.Z(), 1e-6)

	for _, v := range m.Vertices {
		assert.InDelta(t, 1, v.Normal.Len(), 1e-4)
	}
}

func TestBuildArchRingRejectsCoarseSegments(t *testing.T) {
	assert.Panics(t, func() { BuildArchRing(MinArchSegments-1, 1, 0.03, 0.18) })
	assert.NotPanics(t, func() { BuildArchRing(MinArchSegments, 1, 0.03, 0.18) })
	assert.Panics(t, func() { BuildArchRing(DefaultArchSegments, 1, 1, 0.18) })
}

func TestDegenerateExtentsPanic(t *testing.T) {
	assert.Panics(t, func() { BuildBox(mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 1}) })
	assert.Panics(t, func() { BuildTieredBox(mgl32.Vec3{1, -1, 1}, mgl32.Vec2{1, 1}, mgl32.Vec2{1, 1}) })
	assert.Panics(t, func() { BuildPierBox(mgl32.Vec3{1, 1, 0}) })
	assert.Panics(t, func() { BuildCurb(mgl32.Vec3{1, 1, 1}, 0) })
	assert.Panics(t, func() { BuildWaterPlane(mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1}) })
}

func TestBuildWaterPlane(t *testing.T) {
	m := BuildWaterPlane(mgl32.Vec2{120, 80}, mgl32.Vec2{30, 20})
	require.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 2, 1, 0, 3, 2}, m.Indices)
	for _, v := range m.Vertices {
		assert.Equal(t, axisPY, v.Normal)
		assert.Equal(t, float32(0), v.Pos.Y())
	}
	assert.Equal(t, mgl32.Vec2{30, 20}, maxUV(m.Vertices))
}

func TestBoxMapUV(t *testing.T) {
	p := mgl32.Vec3{2, 3, 4}
	s := mgl32.Vec3{0.5, 1, 2}
	assert.Equal(t, mgl32.Vec2{1, 8}, BoxMapUV(p, axisPY, s))
	assert.Equal(t, mgl32.Vec2{8, 3}, BoxMapUV(p, axisNX, s))
	assert.Equal(t, mgl32.Vec2{1, 3}, BoxMapUV(p, axisPZ, s))
}

func TestInterleaved(t *testing.T) {
	m := BuildWaterPlane(mgl32.Vec2{1, 1}, mgl32.Vec2{1, 1})
	buf := m.Interleaved(nil)
	require.Len(t, buf, len(m.Vertices)*VertexFloats)
	assert.Equal(t, []float32{-1, 0, -1, 0, 1, 0, 0, 0}, buf[:VertexFloats])
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary()
	leaf := lib.Add("leaf", BuildBox(mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}))
	rib := lib.Add("rib", BuildRibUnit())

	assert.Equal(t, 2, lib.Len())
	assert.NotEqual(t, leaf, rib)
	id, ok := lib.ID("rib")
	assert.True(t, ok)
	assert.Equal(t, rib, id)
	assert.Equal(t, "leaf", lib.Name(leaf))
	_, ok = lib.ID("boat")
	assert.False(t, ok)

	assert.Panics(t, func() { lib.Add("leaf", BuildRibUnit()) })
	assert.Panics(t, func() { lib.MustID("boat") })

	var names []string
	lib.Each(func(_ MeshID, name string, _ *Mesh) { names = append(names, name) })
	assert.Equal(t, []string{"leaf", "rib"}, names)
}
