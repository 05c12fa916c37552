// Package asset prepares externally authored models (cars, buses, the boat)
// for the scene: axis fixes, centring and rescaling, applied once per model.
package asset

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"bascule/internal/geom"
)

var errNoParts = errors.New("source returned no parts")

// Material is the per-part surface record a source supplies.
type Material struct {
	Diffuse   mgl32.Vec3
	Specular  float32
	Shininess float32
}

// Part is one material group of a model.
type Part struct {
	Mesh     *geom.Mesh
	Material Material
}

// Model is a prepared, immutable model.
type Model struct {
	Name  string
	Parts []Part
}

// Source supplies raw model parts by name.
type Source interface {
	Load(name string) ([]Part, error)
}

// Fix is a fixed axis correction for a source authored off-orientation.
type Fix uint8

const (
	// RotXNeg90 turns a Z-up model Y-up: (y, z) -> (z, -y).
	RotXNeg90 Fix = 1 << iota
	// RotY180 turns the model around: x and z are negated.
	RotY180
)

// Spec names a model and how to prepare it.
type Spec struct {
	Name       string
	TargetSize float64
	Fixes      Fix
}

// Loader prepares models from a Source and caches them by name.
type Loader struct {
	src   Source
	log   zerolog.Logger
	cache map[string]*Model
}

func NewLoader(src Source, log zerolog.Logger) *Loader {
	return &Loader{src: src, log: log, cache: make(map[string]*Model)}
}

// Prepare returns the normalised model for spec. The first call per name
// loads, fixes and normalises; later calls return the cached result. A
// source failure substitutes a white unit cube and is logged.
func (l *Loader) Prepare(spec Spec) *Model {
	if m, ok := l.cache[spec.Name]; ok {
		return m
	}
	if !(spec.TargetSize > 0) {
		panic(fmt.Sprintf("asset: %q has non-positive target size %v", spec.Name, spec.TargetSize))
	}

	parts, err := l.src.Load(spec.Name)
	if err == nil && len(parts) == 0 {
		err = errNoParts
	}
	if err != nil {
		l.log.Warn().Err(err).Str("model", spec.Name).Msg("model unavailable, using unit cube")
		parts = []Part{{Mesh: UnitCube(), Material: Material{Diffuse: mgl32.Vec3{1, 1, 1}, Shininess: 32}}}
	}

	out := &Model{Name: spec.Name, Parts: make([]Part, len(parts))}
	for i, p := range parts {
		out.Parts[i] = Part{Mesh: p.Mesh.Clone(), Material: p.Material}
		applyFixes(out.Parts[i].Mesh, spec.Fixes)
	}
	Normalize(out, float32(spec.TargetSize))

	l.cache[spec.Name] = out
	return out
}

func applyFixes(m *geom.Mesh, fixes Fix) {
	if fixes&RotXNeg90 != 0 {
		for i := range m.Vertices {
			v := &m.Vertices[i]
			v.Pos[1], v.Pos[2] = v.Pos[2], -v.Pos[1]
			v.Normal[1], v.Normal[2] = v.Normal[2], -v.Normal[1]
		}
	}
	if fixes&RotY180 != 0 {
		for i := range m.Vertices {
			v := &m.Vertices[i]
			v.Pos[0], v.Pos[2] = -v.Pos[0], -v.Pos[2]
			v.Normal[0], v.Normal[2] = -v.Normal[0], -v.Normal[2]
		}
	}
}

// Bounds returns the combined bounds of all parts.
func (m *Model) Bounds() (mn, mx mgl32.Vec3) {
	first := true
	for _, p := range m.Parts {
		if len(p.Mesh.Vertices) == 0 {
			continue
		}
		pmn, pmx := p.Mesh.Bounds()
		if first {
			mn, mx, first = pmn, pmx, false
			continue
		}
		for i := 0; i < 3; i++ {
			mn[i] = float32(math.Min(float64(mn[i]), float64(pmn[i])))
			mx[i] = float32(math.Max(float64(mx[i]), float64(pmx[i])))
		}
	}
	return
}

// Normalize centres the model on X/Z, rests it on y = 0 and scales it
// uniformly so its largest dimension equals target. All parts share one
// frame so multi-part models stay assembled. Degenerate models are left
// untouched.
func Normalize(m *Model, target float32) {
	mn, mx := m.Bounds()
	size := mx.Sub(mn)
	maxDim := float32(math.Max(float64(size[0]), math.Max(float64(size[1]), float64(size[2]))))
	if maxDim < 1e-6 {
		return
	}
	base := mgl32.Vec3{(mn[0] + mx[0]) * 0.5, mn[1], (mn[2] + mx[2]) * 0.5}
	s := target / maxDim
	for _, p := range m.Parts {
		for i := range p.Mesh.Vertices {
			v := &p.Mesh.Vertices[i]
			v.Pos = v.Pos.Sub(base).Mul(s)
		}
	}
}

// UnitCube is the fallback mesh: a box of side 1 centred on the origin.
func UnitCube() *geom.Mesh {
	return geom.BuildBox(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec2{1, 1})
}
