package capture

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePNGCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "shot.png")

	const w, h = 4, 2
	pixels := make([]byte, w*h*4)
	// bottom row red, top row blue
	for x := 0; x < w; x++ {
		pixels[x*4] = 255   // row 0 (GL bottom)
		pixels[x*4+3] = 255 //
		top := (h-1)*w*4 + x*4
		pixels[top+2] = 255
		pixels[top+3] = 255
	}

	if err := WritePNG(path, pixels, w, h); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening result: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Errorf("size = %v, want %dx%d", img.Bounds(), w, h)
	}

	// the GL bottom row (red) must end up at the image bottom after the flip
	r, _, b, _ := img.At(0, h-1).RGBA()
	if r == 0 || b != 0 {
		t.Errorf("bottom-left pixel = r:%d b:%d, want red", r, b)
	}
	r, _, b, _ = img.At(0, 0).RGBA()
	if b == 0 || r != 0 {
		t.Errorf("top-left pixel = r:%d b:%d, want blue", r, b)
	}
}

func TestWritePNGSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := WritePNG(path, make([]byte, 10), 4, 4); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should not have been created")
	}
}
