package mesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ReadGLB loads a mesh from a GLB or glTF file. Files holding a single mesh
// need no selector; files holding several require meshName, and selection
// errors enumerate every name the file contains so the caller can retry.
func ReadGLB(path, meshName string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading glTF file: %w", err)
	}

	if len(doc.Meshes) == 0 {
		return nil, &FormatError{Msg: "file contains no meshes"}
	}

	selected, err := selectMesh(doc, meshName)
	if err != nil {
		return nil, err
	}

	return extractMesh(doc, selected)
}

func selectMesh(doc *gltf.Document, meshName string) (*gltf.Mesh, error) {
	if len(doc.Meshes) == 1 && meshName == "" {
		return doc.Meshes[0], nil
	}

	if meshName == "" {
		return nil, &InputError{
			Msg:       fmt.Sprintf("file contains %d meshes; specify one with --mesh <name>", len(doc.Meshes)),
			Available: meshNames(doc),
		}
	}

	for _, m := range doc.Meshes {
		if m.Name == meshName {
			return m, nil
		}
	}
	return nil, &InputError{
		Msg:       fmt.Sprintf("mesh %q not found in file", meshName),
		Available: meshNames(doc),
	}
}

func meshNames(doc *gltf.Document) []string {
	names := make([]string, len(doc.Meshes))
	for i, m := range doc.Meshes {
		if m.Name == "" {
			names[i] = "<unnamed>"
		} else {
			names[i] = m.Name
		}
	}
	return names
}

// extractMesh concatenates all primitives of the selected mesh, rebasing
// indices as vertices accumulate. Non-indexed primitives get sequential
// generated indices.
func extractMesh(doc *gltf.Document, m *gltf.Mesh) (*Mesh, error) {
	out := &Mesh{}

	for _, prim := range m.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			return nil, &FormatError{Msg: "primitive has no position attribute"}
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("reading positions: %w", err)
		}

		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, positions...)

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, fmt.Errorf("reading indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		if len(indices)%3 != 0 {
			return nil, &FormatError{Msg: "index count is not a multiple of 3 (non-triangular faces)"}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			out.Triangles = append(out.Triangles, [3]uint32{
				base + indices[i],
				base + indices[i+1],
				base + indices[i+2],
			})
		}
	}

	return out, nil
}
