package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadOBJ parses a Wavefront OBJ file. Only geometry is read: vertex
// positions and faces. Faces with more than three corners are fan
// triangulated; texture/normal references in face corners are ignored.
func ReadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	m, err := parseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

func parseOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, &FormatError{Msg: fmt.Sprintf("line %d: vertex needs 3 coordinates", lineNo)}
			}
			var p [3]float32
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, &FormatError{Msg: fmt.Sprintf("line %d: bad coordinate %q", lineNo, fields[i+1])}
				}
				p[i] = float32(v)
			}
			if !sanitize(p) {
				return nil, &FormatError{Msg: fmt.Sprintf("line %d: non-finite vertex coordinate", lineNo)}
			}
			m.Positions = append(m.Positions, p)

		case "f":
			if len(fields) < 4 {
				return nil, &FormatError{Msg: fmt.Sprintf("line %d: face needs at least 3 vertices", lineNo)}
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveOBJIndex(ref, len(m.Positions))
				if err != nil {
					return nil, &FormatError{Msg: fmt.Sprintf("line %d: %v", lineNo, err)}
				}
				corners = append(corners, idx)
			}
			// fan triangulation for polygons
			for i := 1; i+1 < len(corners); i++ {
				m.Triangles = append(m.Triangles, [3]uint32{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

// resolveOBJIndex converts one face corner reference ("7", "7/1", "7//3",
// "-1") into a zero-based vertex index. OBJ indices are 1-based; negative
// values count back from the most recent vertex.
func resolveOBJIndex(ref string, vertexCount int) (uint32, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}

	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", ref)
	}

	switch {
	case n > 0:
		n--
	case n < 0:
		n = vertexCount + n
	default:
		return 0, fmt.Errorf("face index 0 is not valid")
	}

	if n < 0 || n >= vertexCount {
		return 0, fmt.Errorf("face index %s out of range (have %d vertices)", ref, vertexCount)
	}
	return uint32(n), nil
}
