// Package models provides the meshes orrery draws: procedural spheres and
// rings, and triangle meshes loaded from glTF binaries.
package models

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds the attributes of one shared vertex.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle referencing three entries of Mesh.Vertices.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the distance from the origin to the farthest vertex. It
// bounds the mesh for sphere culling.
func (m *Mesh) Radius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = max(r, v.Position.Len())
	}
	return r
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// CalculateSmoothNormals computes area-weighted averaged vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position
		n := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(n)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies mat to every vertex. Normals go through the normal
// matrix so non-uniform scales keep them perpendicular to the surface.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := math3d.NormalMatrix(mat)
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = nm.MulVec3(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it so its farthest
// vertex lies at distance 1.
func (m *Mesh) Normalize() {
	m.CalculateBounds()
	m.Transform(math3d.Translate(m.Center().Scale(-1)))
	if r := m.Radius(); r > 0 {
		m.Transform(math3d.ScaleUniform(1 / r))
	}
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// VertexArray flattens the faces into the three-vertices-per-triangle
// sequence the renderer consumes. Faces with an out-of-range index are
// skipped.
func (m *Mesh) VertexArray(c render.Color) []render.Vertex {
	out := make([]render.Vertex, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		if !m.validFace(f) {
			continue
		}
		for _, idx := range f.V {
			v := m.Vertices[idx]
			out = append(out, render.Vertex{
				Position:  v.Position,
				Normal:    v.Normal,
				TexCoords: v.UV,
				Color:     c,
			})
		}
	}
	return out
}

func (m *Mesh) validFace(f Face) bool {
	for _, idx := range f.V {
		if idx < 0 || idx >= len(m.Vertices) {
			return false
		}
	}
	return true
}
