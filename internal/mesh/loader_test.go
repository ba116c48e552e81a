package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	objPath := filepath.Join(dir, "cube.OBJ")
	if err := os.WriteFile(objPath, []byte(cubeOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(objPath, ""); err != nil {
		t.Errorf("Load(.OBJ): %v", err)
	}

	glbPath := filepath.Join(dir, "tri.glb")
	writeTriangleGLB(t, glbPath, "triangle")
	if _, err := Load(glbPath, ""); err != nil {
		t.Errorf("Load(.glb): %v", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("model.stl", "")
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
