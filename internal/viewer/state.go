package viewer

import (
	"sync"

	"github.com/meshforge/meshview/internal/mesh"
	gomath "github.com/meshforge/meshview/pkg/math"
)

// State is the single source of truth shared by the render loop and the
// RPC layer. Every access goes through the mutex; critical sections are
// field reads and writes only, never blocking calls.
type State struct {
	mu sync.Mutex

	cameraPosition gomath.Vec3
	cameraTarget   gomath.Vec3
	modelRotation  gomath.Vec3 // Euler angles in radians
	showWireframe  bool
	showBackfaces  bool
	showUI         bool
	stats          mesh.Stats
}

// Snapshot is a consistent copy of every field, taken under one lock hold.
type Snapshot struct {
	CameraPosition gomath.Vec3
	CameraTarget   gomath.Vec3
	ModelRotation  gomath.Vec3
	ShowWireframe  bool
	ShowBackfaces  bool
	ShowUI         bool
	Stats          mesh.Stats
}

// NewState returns the startup defaults: camera at (5,3,5) looking at the
// origin, wireframe and UI overlay on, backfaces off.
func NewState() *State {
	return &State{
		cameraPosition: gomath.Vec3{X: 5, Y: 3, Z: 5},
		showWireframe:  true,
		showUI:         true,
	}
}

// StateForMesh frames the initial camera around a mesh of the given largest
// bounding-box dimension.
func StateForMesh(maxDim float32) *State {
	s := NewState()
	if maxDim > 0 {
		d := maxDim * 2.5
		s.cameraPosition = gomath.Vec3{X: 0.5 * d, Y: 0.3 * d, Z: 1.0 * d}
	}
	return s
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		CameraPosition: s.cameraPosition,
		CameraTarget:   s.cameraTarget,
		ModelRotation:  s.modelRotation,
		ShowWireframe:  s.showWireframe,
		ShowBackfaces:  s.showBackfaces,
		ShowUI:         s.showUI,
		Stats:          s.stats,
	}
}

func (s *State) SetCamera(position, target gomath.Vec3) {
	s.mu.Lock()
	s.cameraPosition = position
	s.cameraTarget = target
	s.mu.Unlock()
}

func (s *State) SetRotation(x, y, z float32) {
	s.mu.Lock()
	s.modelRotation = gomath.Vec3{X: x, Y: y, Z: z}
	s.mu.Unlock()
}

// ApplyAxisRotation composes an axis-angle rotation on top of the current
// model rotation and stores the result back as Euler angles.
func (s *State) ApplyAxisRotation(axis gomath.Vec3, angle float32) {
	s.mu.Lock()
	r := s.modelRotation
	s.mu.Unlock()

	current := gomath.EulerXYZ(r.X, r.Y, r.Z)
	combined := gomath.RotateAxis(axis.Normalize(), angle).Mul(current)
	x, y, z := combined.EulerAngles()

	s.mu.Lock()
	s.modelRotation = gomath.Vec3{X: x, Y: y, Z: z}
	s.mu.Unlock()
}

func (s *State) SetWireframe(on bool) { s.mu.Lock(); s.showWireframe = on; s.mu.Unlock() }
func (s *State) SetBackfaces(on bool) { s.mu.Lock(); s.showBackfaces = on; s.mu.Unlock() }
func (s *State) SetUI(on bool)        { s.mu.Lock(); s.showUI = on; s.mu.Unlock() }

func (s *State) Wireframe() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.showWireframe }
func (s *State) Backfaces() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.showBackfaces }
func (s *State) UI() bool        { s.mu.Lock(); defer s.mu.Unlock(); return s.showUI }

func (s *State) SetStats(st mesh.Stats) {
	s.mu.Lock()
	s.stats = st
	s.mu.Unlock()
}

func (s *State) Stats() mesh.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
