package models

import (
	"fmt"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// NewUVSphere builds a unit sphere from stacks latitude bands and slices
// longitude segments. Normals equal positions. The poles are single
// vertices so no zero-area triangles are emitted.
func NewUVSphere(stacks, slices int) *Mesh {
	stacks, slices = max(stacks, 2), max(slices, 3)
	m := NewMesh(fmt.Sprintf("uvsphere-%dx%d", stacks, slices))

	top := len(m.Vertices)
	m.Vertices = append(m.Vertices, MeshVertex{
		Position: math3d.Up(),
		Normal:   math3d.Up(),
		UV:       math3d.V2(0.5, 0),
	})

	// Ring rows 1..stacks-1, each with slices vertices.
	for i := 1; i < stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		y, r := math.Cos(phi), math.Sin(phi)
		for j := range slices {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			p := math3d.V3(r*math.Cos(theta), y, r*math.Sin(theta))
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: p,
				Normal:   p,
				UV:       math3d.V2(float64(j)/float64(slices), float64(i)/float64(stacks)),
			})
		}
	}

	bottom := len(m.Vertices)
	m.Vertices = append(m.Vertices, MeshVertex{
		Position: math3d.V3(0, -1, 0),
		Normal:   math3d.V3(0, -1, 0),
		UV:       math3d.V2(0.5, 1),
	})

	ring := func(i, j int) int { return 1 + (i-1)*slices + j%slices }

	for j := range slices {
		m.Faces = append(m.Faces, Face{V: [3]int{top, ring(1, j+1), ring(1, j)}})
	}
	for i := 1; i < stacks-1; i++ {
		for j := range slices {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j), ring(i+1, j+1)
			m.Faces = append(m.Faces, Face{V: [3]int{a, b, d}}, Face{V: [3]int{a, d, c}})
		}
	}
	for j := range slices {
		m.Faces = append(m.Faces, Face{V: [3]int{bottom, ring(stacks-1, j), ring(stacks-1, j+1)}})
	}

	m.CalculateBounds()
	return m
}

// NewRing builds a flat annulus in the XZ plane between the inner and outer
// radius, facing +Y. The ring shader bands it by distance from the center,
// so an outer radius of 1 shows every band.
func NewRing(inner, outer float64, segments int) (*Mesh, error) {
	if inner < 0 || outer <= inner {
		return nil, fmt.Errorf("invalid ring radii %v..%v", inner, outer)
	}
	segments = max(segments, 3)
	m := NewMesh(fmt.Sprintf("ring-%d", segments))

	for j := range segments {
		theta := 2 * math.Pi * float64(j) / float64(segments)
		c, s := math.Cos(theta), math.Sin(theta)
		u := float64(j) / float64(segments)
		m.Vertices = append(m.Vertices,
			MeshVertex{Position: math3d.V3(inner*c, 0, inner*s), Normal: math3d.Up(), UV: math3d.V2(u, 0)},
			MeshVertex{Position: math3d.V3(outer*c, 0, outer*s), Normal: math3d.Up(), UV: math3d.V2(u, 1)},
		)
	}
	for j := range segments {
		i0, o0 := 2*j, 2*j+1
		i1, o1 := (2*j+2)%(2*segments), (2*j+3)%(2*segments)
		m.Faces = append(m.Faces, Face{V: [3]int{i0, o0, o1}}, Face{V: [3]int{i0, o1, i1}})
	}

	m.CalculateBounds()
	return m, nil
}
