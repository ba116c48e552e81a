package mesh

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh from path, dispatching on the file extension. meshName
// selects a mesh inside multi-mesh GLB/glTF files and is ignored for OBJ.
func Load(path, meshName string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return ReadOBJ(path)
	case ".glb", ".gltf":
		return ReadGLB(path, meshName)
	default:
		return nil, &InputError{Msg: fmt.Sprintf("unsupported file format %q (expected .obj, .glb or .gltf)", filepath.Ext(path))}
	}
}
