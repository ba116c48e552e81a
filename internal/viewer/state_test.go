package viewer

import (
	"math"
	"testing"

	gomath "github.com/meshforge/meshview/pkg/math"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState().Snapshot()

	if s.CameraPosition != (gomath.Vec3{X: 5, Y: 3, Z: 5}) {
		t.Errorf("camera position = %v, want (5,3,5)", s.CameraPosition)
	}
	if s.CameraTarget != (gomath.Vec3{}) {
		t.Errorf("camera target = %v, want origin", s.CameraTarget)
	}
	if !s.ShowWireframe || !s.ShowUI || s.ShowBackfaces {
		t.Errorf("toggles = wireframe:%v backfaces:%v ui:%v, want true/false/true",
			s.ShowWireframe, s.ShowBackfaces, s.ShowUI)
	}
}

func TestStateForMeshFraming(t *testing.T) {
	s := StateForMesh(4).Snapshot()

	// distance = 4 * 2.5 = 10, eye along (0.5, 0.3, 1.0)
	want := gomath.Vec3{X: 5, Y: 3, Z: 10}
	if s.CameraPosition != want {
		t.Errorf("camera position = %v, want %v", s.CameraPosition, want)
	}
}

func TestTogglesXORParity(t *testing.T) {
	s := NewState()

	for _, n := range []int{1, 2, 3, 10, 11} {
		initial := s.Wireframe()
		for i := 0; i < n; i++ {
			s.SetWireframe(!s.Wireframe())
		}
		want := initial != (n%2 == 1)
		if got := s.Wireframe(); got != want {
			t.Errorf("after %d toggles from %v: got %v, want %v", n, initial, got, want)
		}
	}
}

func TestApplyAxisRotation90DegreesY(t *testing.T) {
	s := NewState()
	s.ApplyAxisRotation(gomath.Vec3{Y: 1}, math.Pi/2)

	r := s.Snapshot().ModelRotation
	const tol = 1e-4
	if absf(r.X) > tol || absf(r.Y-math.Pi/2) > tol || absf(r.Z) > tol {
		t.Errorf("rotation = %v, want (0, π/2, 0)", r)
	}
}

func TestApplyAxisRotationComposes(t *testing.T) {
	s := NewState()
	s.ApplyAxisRotation(gomath.Vec3{Y: 1}, math.Pi/4)
	s.ApplyAxisRotation(gomath.Vec3{Y: 1}, math.Pi/4)

	r := s.Snapshot().ModelRotation
	const tol = 1e-4
	if absf(r.Y-math.Pi/2) > tol {
		t.Errorf("two 45° Y rotations gave Y = %v, want π/2", r.Y)
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
