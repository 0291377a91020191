package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/orrery/pkg/math3d"
)

// GLTFLoader loads glTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Generate smooth normals when the file carries none.
	CalculateNormals bool
	// Center the mesh and scale it to unit radius so it can stand in for
	// a unit sphere.
	Normalize bool
}

// NewGLTFLoader creates a loader with normal generation and normalization
// enabled.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		Normalize:        true,
	}
}

// LoadGLB loads a binary glTF (.glb) file with the default loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads every triangle primitive of every mesh in the document into
// one Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: no triangle primitives", mesh.Name)
	}

	if l.CalculateNormals && !hasNormals(mesh) {
		mesh.CalculateSmoothNormals()
	}
	if l.Normalize {
		mesh.Normalize()
	} else {
		mesh.CalculateBounds()
	}
	return mesh, nil
}

func hasNormals(m *Mesh) bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// processMesh appends the geometry of one glTF mesh to mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Lines and points have no area to rasterize.
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: vec3(p)}
			if i < len(normals) {
				v.Normal = vec3(normals[i])
			}
			if i < len(uvs) {
				// glTF puts V=0 at the top of the image.
				v.UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{V: [3]int{
				base + int(indices[i]),
				base + int(indices[i+1]),
				base + int(indices[i+2]),
			}}
			if !mesh.validFace(f) {
				return fmt.Errorf("index out of range in face %d", i/3)
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}
	return nil
}

func vec3(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}
