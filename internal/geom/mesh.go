package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout uploaded to the GPU: position, normal, uv.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	UV     mgl32.Vec2
}

// VertexFloats is the number of float32 values per interleaved vertex.
const VertexFloats = 8

// Mesh is an indexed triangle list. Built meshes are treated as immutable.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

func (m *Mesh) addQuad(a, b, c, d, n mgl32.Vec3, ta, tb, tc, td mgl32.Vec2) {
	start := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: a, Normal: n, UV: ta},
		Vertex{Pos: b, Normal: n, UV: tb},
		Vertex{Pos: c, Normal: n, UV: tc},
		Vertex{Pos: d, Normal: n, UV: td},
	)
	m.Indices = append(m.Indices, start, start+1, start+2, start, start+2, start+3)
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Bounds returns the axis-aligned min/max corners of all vertices.
func (m *Mesh) Bounds() (mn, mx mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	mn = m.Vertices[0].Pos
	mx = m.Vertices[0].Pos
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			mn[i] = float32(math.Min(float64(mn[i]), float64(v.Pos[i])))
			mx[i] = float32(math.Max(float64(mx[i]), float64(v.Pos[i])))
		}
	}
	return
}

// Interleaved flattens vertices for a single VBO upload.
func (m *Mesh) Interleaved(dst []float32) []float32 {
	dst = dst[:0]
	for _, v := range m.Vertices {
		dst = append(dst,
			v.Pos[0], v.Pos[1], v.Pos[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return dst
}

// Clone returns a deep copy that callers may transform freely.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Indices, m.Indices)
	return out
}

func mustPositive(shape string, vals ...float32) {
	for _, v := range vals {
		if !(v > 0) {
			panic(fmt.Sprintf("geom: %s with non-positive extent %v", shape, vals))
		}
	}
}

// Append copies o into m, moved by offset.
func (m *Mesh) Append(o *Mesh, offset mgl32.Vec3) {
	base := uint32(len(m.Vertices))
	for _, v := range o.Vertices {
		v.Pos = v.Pos.Add(offset)
		m.Vertices = append(m.Vertices, v)
	}
	for _, i := range o.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}
