package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"bascule/internal/geom"
)

// Bridge layout in world units. The bridge runs along X, the river along Z.
const (
	DeckY       = 2.0
	PierX       = 6.0
	ApproachEnd = 43.0
	ArchSpanEnd = 30.0
	BankX       = 50.0

	leafMeshHalf  = 12.0 // half length of the shared deck mesh
	roadHalfWidth = 4.5
	deckHalfH     = 0.25
	curbHalfW     = 0.35
	curbHalfH     = 0.36
	curbSink      = 0.02

	archHalfDepth     = 0.40
	archUnitHalfDepth = 0.18
	ribsPerSpan       = 9
	ribHeightFactor   = 0.65
)

var deckUV = mgl32.Vec2{6, 2}

// Mesh names registered by the bridge.
const (
	MeshLeaf  = "leaf"
	MeshCurb  = "curb"
	MeshPier  = "pier"
	MeshArch  = "arch"
	MeshRib   = "rib"
	MeshBank  = "bank"
	MeshWater = "water"
)

type bridgeMeshes struct {
	leaf, curb, pier, arch, rib, bank, water geom.MeshID
}

func addBridgeMeshes(lib *geom.Library) bridgeMeshes {
	return bridgeMeshes{
		leaf:  lib.Add(MeshLeaf, geom.BuildBox(mgl32.Vec3{leafMeshHalf, deckHalfH, roadHalfWidth}, deckUV)),
		curb:  lib.Add(MeshCurb, geom.BuildCurb(mgl32.Vec3{leafMeshHalf, 0.45, 0.45}, 6)),
		pier:  lib.Add(MeshPier, geom.BuildPierBox(mgl32.Vec3{1.75, 2, 4.7})),
		arch:  lib.Add(MeshArch, geom.BuildArchRing(geom.DefaultArchSegments, 1, 0.03, archUnitHalfDepth)),
		rib:   lib.Add(MeshRib, geom.BuildRibUnit()),
		bank:  lib.Add(MeshBank, geom.BuildTieredBox(mgl32.Vec3{22, 1.5, 28}, mgl32.Vec2{7, 7}, mgl32.Vec2{6, 0.5})),
		water: lib.Add(MeshWater, geom.BuildWaterPlane(mgl32.Vec2{120, 80}, mgl32.Vec2{30, 20})),
	}
}

// LeafHinge is the world point the movable leaf rotates about.
func LeafHinge() mgl64.Vec3 { return mgl64.Vec3{-PierX, DeckY, 0} }

// LeafScaleX scales the shared deck mesh down to the movable span.
const LeafScaleX = PierX / leafMeshHalf

// LeafMatrix places the movable leaf for a lift in [0,1]. The mesh is
// scaled in its own frame before rotating so it never shears:
// T(hinge) · Rz(lift·maxAngle) · S(scaleX) · T(-localHinge).
func LeafMatrix(lift, maxAngleDeg float64) mgl64.Mat4 {
	h := LeafHinge()
	ang := lift * mgl64.DegToRad(maxAngleDeg)
	return mgl64.Translate3D(h[0], h[1], h[2]).
		Mul4(mgl64.HomogRotate3DZ(ang)).
		Mul4(mgl64.Scale3D(LeafScaleX, 1, 1)).
		Mul4(mgl64.Translate3D(leafMeshHalf, 0, 0))
}

// ApproachMatrix stretches the deck mesh over the fixed span [a, b] and
// returns the X scale it applied.
func ApproachMatrix(a, b float64) (mgl64.Mat4, float64) {
	center := 0.5 * (a + b)
	sx := 0.5 * (b - a) / leafMeshHalf
	return mgl64.Translate3D(center, DeckY, 0).Mul4(mgl64.Scale3D(sx, 1, 1)), sx
}

// DeckUVMul compensates the deck texture for an X scale. The deck's top
// face runs V along X, so the multiplier lands on V.
func DeckUVMul(scaleX float64) mgl64.Vec2 { return mgl64.Vec2{1, scaleX} }

// DeckRepeatX is the texture repeat along the deck length after scaling.
func DeckRepeatX(uvMul mgl64.Vec2) float64 { return float64(deckUV[0]) * uvMul[1] }

// CurbOffset is the curb placement in deck-local space; side is ±1.
func CurbOffset(side float64) mgl64.Vec3 {
	return mgl64.Vec3{0, (curbHalfH - deckHalfH) - curbSink, side * (roadHalfWidth + curbHalfW + curbSink)}
}

// CurbMatrix glues a curb to a deck segment by reusing its matrix.
func CurbMatrix(deck mgl64.Mat4, side float64) mgl64.Mat4 {
	o := CurbOffset(side)
	return deck.Mul4(mgl64.Translate3D(o[0], o[1], o[2]))
}

// Bridge is the static structure plus the movable leaf.
type Bridge struct {
	meshes   bridgeMeshes
	maxAngle float64
	lift     float64
}

func newBridge(m bridgeMeshes) *Bridge {
	return &Bridge{meshes: m, maxAngle: 75}
}

func (b *Bridge) Kind() Kind { return KindBridge }

func (b *Bridge) Lift() float64 { return b.lift }

func (b *Bridge) Update(w *World, _ float64) {
	b.lift = w.Lift
	b.maxAngle = w.Tuning.MaxLiftAngleDeg
}

func (b *Bridge) AppendInstances(dst []Instance) []Instance {
	m := b.meshes

	for _, x := range []float64{-BankX, BankX} {
		in := newInstance(m.bank, mgl64.Translate3D(x, 0, 0))
		in.Texture = TextureBrick
		in.Material = MaterialStone
		in.UVMul = mgl64.Vec2{4, 4}
		dst = append(dst, in)
	}

	type deck struct {
		model  mgl64.Mat4
		scaleX float64
	}
	left, lsx := ApproachMatrix(-ApproachEnd, -PierX)
	right, rsx := ApproachMatrix(PierX, ApproachEnd)
	decks := []deck{
		{left, lsx},
		{LeafMatrix(b.lift, b.maxAngle), LeafScaleX},
		{right, rsx},
	}
	for _, d := range decks {
		in := newInstance(m.leaf, d.model)
		in.Texture = TextureRoad
		in.Material = MaterialAsphalt
		in.UVMul = DeckUVMul(d.scaleX)
		dst = append(dst, in)
	}

	for _, x := range []float64{-PierX, PierX} {
		in := newInstance(m.pier, mgl64.Translate3D(x, 0, 0))
		in.Texture = TextureRock
		in.Material = MaterialStone
		dst = append(dst, in)
	}

	zSide := roadHalfWidth + curbHalfW
	for _, span := range [][2]float64{{-ArchSpanEnd, -PierX}, {PierX, ArchSpanEnd}} {
		for _, z := range []float64{zSide, -zSide} {
			dst = appendArchSpan(dst, m, span[0], span[1], z)
		}
	}

	for _, d := range decks {
		for _, side := range []float64{-1, 1} {
			in := newInstance(m.curb, CurbMatrix(d.model, side))
			in.Texture = TextureStone
			in.Material = MaterialStone
			in.BoxMap = true
			sx := d.scaleX
			if sx <= 0.0001 {
				sx = 1
			}
			in.BoxScale = mgl64.Vec3{0.5 * sx, 0.5, 0.5}
			dst = append(dst, in)
		}
	}

	water := newInstance(m.water, mgl64.Ident4())
	water.Pass = PassWater
	water.Texture = TextureWater
	return append(dst, water)
}

// RibPlacement returns the matrices of the vertical ribs under one arch.
func RibPlacement(x0, x1, z float64) []mgl64.Mat4 {
	cx := 0.5 * (x0 + x1)
	radius := 0.5 * (x1 - x0)
	baseY := DeckY + deckHalfH
	out := make([]mgl64.Mat4, 0, ribsPerSpan)
	for r := 1; r <= ribsPerSpan; r++ {
		t := float64(r) / float64(ribsPerSpan+1)
		xl := -1 + 2*t
		yl := math.Sqrt(math.Max(0, 1-xl*xl)) * ribHeightFactor
		h := yl * radius
		out = append(out, mgl64.Translate3D(cx+xl*radius, baseY+h*0.5, z).Mul4(mgl64.Scale3D(0.18, h, 0.22)))
	}
	return out
}

func appendArchSpan(dst []Instance, m bridgeMeshes, x0, x1, z float64) []Instance {
	cx := 0.5 * (x0 + x1)
	radius := 0.5 * (x1 - x0)
	arch := newInstance(m.arch, mgl64.Translate3D(cx, DeckY+deckHalfH, z).
		Mul4(mgl64.Scale3D(radius, radius, archHalfDepth/archUnitHalfDepth)))
	arch.Texture = TextureSteel
	arch.Material = MaterialSteel
	arch.UVMul = mgl64.Vec2{2, 2}
	dst = append(dst, arch)

	for _, rm := range RibPlacement(x0, x1, z) {
		rib := newInstance(m.rib, rm)
		rib.Texture = TextureSteel
		rib.Material = MaterialSteel
		rib.UVMul = mgl64.Vec2{1, 10}
		dst = append(dst, rib)
	}
	return dst
}
