package renderer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTextureRepeat is how many times the water textures tile across the grid.
const DefaultTextureRepeat = 8

// SkyboxVertexCount is the vertex count of the non-indexed skybox cube.
const SkyboxVertexCount = 36

type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Mesh is CPU-side geometry. Indices is nil for meshes drawn as plain
// triangle lists.
type Mesh struct {
	Vertices     []Vertex
	Indices      []uint32
	HasTexCoords bool
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}

// FloatsPerVertex is 5 (position + uv) for textured meshes, 3 otherwise.
func (m *Mesh) FloatsPerVertex() int {
	if m.HasTexCoords {
		return 5
	}
	return 3
}

// Interleaved packs the vertices in the layout the vertex shaders expect:
// location 0 = vec3 position, location 1 = vec2 uv (textured meshes only).
func (m *Mesh) Interleaved() []float32 {
	n := m.FloatsPerVertex()
	data := make([]float32, 0, len(m.Vertices)*n)
	for _, v := range m.Vertices {
		data = append(data, v.Position[0], v.Position[1], v.Position[2])
		if m.HasTexCoords {
			data = append(data, v.TexCoord[0], v.TexCoord[1])
		}
	}
	return data
}

// GenerateWaterMesh builds a flat (resolution+1)² grid on the XZ plane,
// centered on the origin and size units wide, with textures tiled
// DefaultTextureRepeat times.
func GenerateWaterMesh(resolution int, size float32) (*Mesh, error) {
	return GenerateWaterMeshRepeat(resolution, size, DefaultTextureRepeat)
}

func GenerateWaterMeshRepeat(resolution int, size, repeat float32) (*Mesh, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("water mesh resolution must be at least 1, got %d", resolution)
	}
	if !(size > 0) || math.IsInf(float64(size), 0) {
		return nil, fmt.Errorf("water mesh size must be positive, got %g", size)
	}

	row := resolution + 1
	step := size / float32(resolution)
	half := float32(resolution) / 2

	mesh := &Mesh{
		Vertices:     make([]Vertex, 0, row*row),
		Indices:      make([]uint32, 0, 6*resolution*resolution),
		HasTexCoords: true,
	}

	for z := 0; z <= resolution; z++ {
		for x := 0; x <= resolution; x++ {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: mgl32.Vec3{(float32(x) - half) * step, 0, (float32(z) - half) * step},
				TexCoord: mgl32.Vec2{
					float32(x) / float32(resolution) * repeat,
					float32(z) / float32(resolution) * repeat,
				},
			})
		}
	}

	// Two triangles per cell, both wound counter-clockwise seen from +Y.
	for z := 0; z < resolution; z++ {
		for x := 0; x < resolution; x++ {
			topLeft := uint32(z*row + x)
			topRight := topLeft + 1
			bottomLeft := uint32((z+1)*row + x)
			bottomRight := bottomLeft + 1

			mesh.Indices = append(mesh.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	return mesh, nil
}

var skyboxPositions = [SkyboxVertexCount * 3]float32{
	// -Z
	-1, 1, -1,
	-1, -1, -1,
	1, -1, -1,
	1, -1, -1,
	1, 1, -1,
	-1, 1, -1,

	// -X
	-1, -1, 1,
	-1, -1, -1,
	-1, 1, -1,
	-1, 1, -1,
	-1, 1, 1,
	-1, -1, 1,

	// +X
	1, -1, -1,
	1, -1, 1,
	1, 1, 1,
	1, 1, 1,
	1, 1, -1,
	1, -1, -1,

	// +Z
	-1, -1, 1,
	-1, 1, 1,
	1, 1, 1,
	1, 1, 1,
	1, -1, 1,
	-1, -1, 1,

	// +Y
	-1, 1, -1,
	1, 1, -1,
	1, 1, 1,
	1, 1, 1,
	-1, 1, 1,
	-1, 1, -1,

	// -Y
	-1, -1, -1,
	-1, -1, 1,
	1, -1, -1,
	1, -1, -1,
	-1, -1, 1,
	1, -1, 1,
}

// GenerateSkyboxCube returns the 36-vertex unit cube drawn around the camera.
// Every face is wound counter-clockwise as seen from inside the cube.
func GenerateSkyboxCube() *Mesh {
	mesh := &Mesh{Vertices: make([]Vertex, SkyboxVertexCount)}
	for i := range mesh.Vertices {
		p := skyboxPositions[i*3 : i*3+3]
		mesh.Vertices[i].Position = mgl32.Vec3{p[0], p[1], p[2]}
	}
	return mesh
}
