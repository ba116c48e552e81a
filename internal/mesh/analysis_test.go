package mesh

import (
	"strings"
	"testing"
)

func TestAnalyzeCube(t *testing.T) {
	m, err := parseOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatal(err)
	}

	stats := m.Analyze()
	if stats.VertexCount != 8 {
		t.Errorf("VertexCount = %d, want 8", stats.VertexCount)
	}
	if stats.EdgeCount != 18 {
		t.Errorf("EdgeCount = %d, want 18", stats.EdgeCount)
	}
	if stats.FaceCount != 12 {
		t.Errorf("FaceCount = %d, want 12", stats.FaceCount)
	}
	if !stats.IsManifold {
		t.Error("closed cube should be manifold")
	}
	if stats.HoleCount != 0 {
		t.Errorf("HoleCount = %d, want 0", stats.HoleCount)
	}
}

func TestAnalyzeOpenQuad(t *testing.T) {
	// one quad split into two triangles: open surface, one boundary ring
	m := &Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Triangles: [][3]uint32{{0, 1, 2}, {0, 2, 3}},
	}

	stats := m.Analyze()
	if stats.IsManifold {
		t.Error("open surface should not be manifold")
	}
	if stats.HoleCount != 1 {
		t.Errorf("HoleCount = %d, want 1", stats.HoleCount)
	}
	if stats.EdgeCount != 5 {
		t.Errorf("EdgeCount = %d, want 5", stats.EdgeCount)
	}
}

func TestAnalyzeTwoSeparateTriangles(t *testing.T) {
	m := &Mesh{
		Positions: [][3]float32{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
			{5, 0, 0}, {6, 0, 0}, {5, 1, 0},
		},
		Triangles: [][3]uint32{{0, 1, 2}, {3, 4, 5}},
	}

	stats := m.Analyze()
	if stats.HoleCount != 2 {
		t.Errorf("HoleCount = %d, want 2 (one ring per triangle)", stats.HoleCount)
	}
	if stats.IsManifold {
		t.Error("bare triangles should not be manifold")
	}
}

func TestAnalyzeOversharedEdge(t *testing.T) {
	// three triangles sharing the edge 0-1
	m := &Mesh{
		Positions: [][3]float32{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, -1, 0},
		},
		Triangles: [][3]uint32{{0, 1, 2}, {0, 1, 3}, {0, 1, 4}},
	}

	stats := m.Analyze()
	if stats.IsManifold {
		t.Error("edge shared by three faces should break manifoldness")
	}
}

func TestAnalyzeEmptyMesh(t *testing.T) {
	stats := (&Mesh{}).Analyze()
	if stats.VertexCount != 0 || stats.EdgeCount != 0 || stats.FaceCount != 0 {
		t.Errorf("empty mesh stats = %+v", stats)
	}
	if stats.IsManifold {
		t.Error("empty mesh should not report manifold")
	}
}
