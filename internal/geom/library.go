package geom

import "fmt"

// MeshID names a mesh registered in a Library.
type MeshID int

// Library is an append-only arena of meshes built once during setup.
type Library struct {
	meshes []*Mesh
	names  []string
	byName map[string]MeshID
}

func NewLibrary() *Library {
	return &Library{byName: make(map[string]MeshID)}
}

// Add registers mesh under name. Names are unique.
func (l *Library) Add(name string, mesh *Mesh) MeshID {
	if _, dup := l.byName[name]; dup {
		panic(fmt.Sprintf("geom: mesh %q registered twice", name))
	}
	if mesh == nil {
		panic(fmt.Sprintf("geom: nil mesh for %q", name))
	}
	id := MeshID(len(l.meshes))
	l.meshes = append(l.meshes, mesh)
	l.names = append(l.names, name)
	l.byName[name] = id
	return id
}

func (l *Library) ID(name string) (MeshID, bool) {
	id, ok := l.byName[name]
	return id, ok
}

func (l *Library) MustID(name string) MeshID {
	id, ok := l.byName[name]
	if !ok {
		panic(fmt.Sprintf("geom: unknown mesh %q", name))
	}
	return id
}

func (l *Library) Mesh(id MeshID) *Mesh { return l.meshes[id] }

func (l *Library) Name(id MeshID) string { return l.names[id] }

func (l *Library) Len() int { return len(l.meshes) }

// Each visits meshes in registration order.
func (l *Library) Each(fn func(id MeshID, name string, m *Mesh)) {
	for i, m := range l.meshes {
		fn(MeshID(i), l.names[i], m)
	}
}
