package models

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// writeTetrahedron saves a four-face GLB without normals.
func writeTetrahedron(t *testing.T, scale float32) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {scale, 0, 0}, {0, scale, 0}, {0, 0, scale},
	})
	idx := modeler.WriteIndices(doc, []uint16{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tetra",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}

	path := filepath.Join(t.TempDir(), "tetra.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.Normalize {
		t.Error("Normalize should default to true")
	}
}

func TestLoadGLB(t *testing.T) {
	path := writeTetrahedron(t, 4)

	t.Run("normalized", func(t *testing.T) {
		mesh, err := LoadGLB(path)
		if err != nil {
			t.Fatalf("LoadGLB: %v", err)
		}
		if mesh.VertexCount() != 4 || mesh.TriangleCount() != 4 {
			t.Fatalf("got %d vertices, %d faces", mesh.VertexCount(), mesh.TriangleCount())
		}
		if r := mesh.Radius(); math.Abs(r-1) > 1e-6 {
			t.Errorf("radius = %v, want 1", r)
		}
		for i, v := range mesh.Vertices {
			if math.Abs(v.Normal.Len()-1) > 1e-6 {
				t.Errorf("vertex %d normal length = %v", i, v.Normal.Len())
			}
		}
	})

	t.Run("raw", func(t *testing.T) {
		loader := &GLTFLoader{}
		mesh, err := loader.Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got := mesh.Size(); got.X != 4 || got.Y != 4 || got.Z != 4 {
			t.Errorf("size = %v, want (4,4,4)", got)
		}
		if n := mesh.Vertices[0].Normal; n.Len() != 0 {
			t.Errorf("normals generated without CalculateNormals: %v", n)
		}
	})
}

func TestLoadGLBWithoutTriangles(t *testing.T) {
	doc := gltf.NewDocument()
	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	if _, err := LoadGLB(path); err == nil {
		t.Error("expected error for a file without triangles")
	}
}
