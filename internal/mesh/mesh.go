// Package mesh loads triangle meshes from OBJ and GLB/glTF files and
// derives the statistics and GPU-ready geometry the viewer works with.
package mesh

import "math"

// Mesh is an indexed triangle mesh as produced by the loaders.
type Mesh struct {
	Positions [][3]float32
	Triangles [][3]uint32
}

// Stats summarizes mesh topology for display and RPC queries.
type Stats struct {
	VertexCount int
	EdgeCount   int
	FaceCount   int
	IsManifold  bool
	HoleCount   int
}

// Bounds returns the axis-aligned bounding box. An empty mesh returns zeros.
func (m *Mesh) Bounds() (min, max [3]float32) {
	if len(m.Positions) == 0 {
		return min, max
	}

	min = m.Positions[0]
	max = m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() [3]float32 {
	min, max := m.Bounds()
	return [3]float32{
		(min[0] + max[0]) / 2,
		(min[1] + max[1]) / 2,
		(min[2] + max[2]) / 2,
	}
}

// MaxDimension returns the largest extent of the bounding box.
func (m *Mesh) MaxDimension() float32 {
	min, max := m.Bounds()
	d := max[0] - min[0]
	if dy := max[1] - min[1]; dy > d {
		d = dy
	}
	if dz := max[2] - min[2]; dz > d {
		d = dz
	}
	return d
}

// Soup is the GPU-ready form of a mesh: a triangle soup re-centered at the
// origin, where every triangle owns three private vertex slots. Back holds
// the same triangles with reversed winding for the backface pass.
type Soup struct {
	Positions []float32 // x,y,z per vertex
	Front     []uint32
	Back      []uint32
}

// Soup expands the mesh into a centered triangle soup. Sharing nothing
// between triangles keeps the result correct regardless of any indexing
// quirks in the source file.
func (m *Mesh) Soup() *Soup {
	center := m.Center()

	s := &Soup{
		Positions: make([]float32, 0, len(m.Triangles)*9),
		Front:     make([]uint32, 0, len(m.Triangles)*3),
		Back:      make([]uint32, 0, len(m.Triangles)*3),
	}

	var next uint32
	for _, tri := range m.Triangles {
		for _, idx := range tri {
			if int(idx) >= len(m.Positions) {
				continue
			}
			p := m.Positions[idx]
			s.Positions = append(s.Positions, p[0]-center[0], p[1]-center[1], p[2]-center[2])
		}
		s.Front = append(s.Front, next, next+1, next+2)
		// reversed winding: (a, b, c) -> (a, c, b)
		s.Back = append(s.Back, next, next+2, next+1)
		next += 3
	}
	return s
}

// TriangleCount returns the number of triangles in the soup.
func (s *Soup) TriangleCount() int {
	return len(s.Front) / 3
}

// sanitize drops NaN/Inf positions that would poison the bounding box.
func sanitize(p [3]float32) bool {
	for _, v := range p {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
