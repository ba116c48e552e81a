package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cubeOBJ = `# unit cube
v -0.5 -0.5 -0.5
v  0.5 -0.5 -0.5
v  0.5  0.5 -0.5
v -0.5  0.5 -0.5
v -0.5 -0.5  0.5
v  0.5 -0.5  0.5
v  0.5  0.5  0.5
v -0.5  0.5  0.5
f 1 2 3 4
f 5 8 7 6
f 1 5 6 2
f 2 6 7 3
f 3 7 8 4
f 5 1 4 8
`

func TestParseOBJCube(t *testing.T) {
	m, err := parseOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	if len(m.Positions) != 8 {
		t.Errorf("vertices = %d, want 8", len(m.Positions))
	}
	if len(m.Triangles) != 12 {
		t.Errorf("triangles = %d, want 12 (6 quads fan-triangulated)", len(m.Triangles))
	}
}

func TestParseOBJSlashReferences(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1/1 2/2/2 3//3
`
	m, err := parseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	if len(m.Triangles) != 1 {
		t.Fatalf("triangles = %d, want 1", len(m.Triangles))
	}
	if m.Triangles[0] != [3]uint32{0, 1, 2} {
		t.Errorf("triangle = %v, want [0 1 2]", m.Triangles[0])
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	m, err := parseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	if m.Triangles[0] != [3]uint32{0, 1, 2} {
		t.Errorf("triangle = %v, want [0 1 2]", m.Triangles[0])
	}
}

func TestParseOBJErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v 1 2 banana\n"},
		{"nan vertex", "v NaN 0 0\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
	}
	for _, tc := range cases {
		if _, err := parseOBJ(strings.NewReader(tc.src)); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}
}

func TestReadOBJFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	if err := os.WriteFile(path, []byte(cubeOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ReadOBJ(path)
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	if len(m.Positions) != 8 || len(m.Triangles) != 12 {
		t.Errorf("got %d vertices / %d triangles, want 8 / 12", len(m.Positions), len(m.Triangles))
	}
}

func TestSoupCentersAndReversesWinding(t *testing.T) {
	m := &Mesh{
		Positions: [][3]float32{{1, 1, 1}, {3, 1, 1}, {1, 3, 1}},
		Triangles: [][3]uint32{{0, 1, 2}},
	}
	s := m.Soup()

	if s.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", s.TriangleCount())
	}
	// bounding-box center (2,2,1) subtracted from the first vertex
	if s.Positions[0] != -1 || s.Positions[1] != -1 || s.Positions[2] != 0 {
		t.Errorf("first vertex = (%v,%v,%v), want (-1,-1,0)",
			s.Positions[0], s.Positions[1], s.Positions[2])
	}
	if s.Front[0] != 0 || s.Front[1] != 1 || s.Front[2] != 2 {
		t.Errorf("front indices = %v", s.Front)
	}
	if s.Back[0] != 0 || s.Back[1] != 2 || s.Back[2] != 1 {
		t.Errorf("back indices = %v, want reversed winding", s.Back)
	}
}
