package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/meshforge/meshview/internal/engine/capture"
	"github.com/meshforge/meshview/internal/engine/input"
	"github.com/meshforge/meshview/internal/engine/overlay"
	"github.com/meshforge/meshview/internal/engine/renderer"
	"github.com/meshforge/meshview/internal/engine/window"
	"github.com/meshforge/meshview/internal/logger"
	"github.com/meshforge/meshview/internal/mesh"
	gomath "github.com/meshforge/meshview/pkg/math"
)

// Options configures the render loop.
type Options struct {
	Title   string
	Width   int
	Height  int
	VSync   bool
	RPCAddr string // shown in the overlay; empty hides the line
}

// Viewer owns the window, the GL resources and the render loop. Everything
// here runs on the render thread; the RPC layer talks to it exclusively
// through the state and the command queue.
type Viewer struct {
	opts  Options
	state *State
	queue *Queue

	win  *window.Window
	rend *renderer.Renderer
	ui   *overlay.Overlay
	in   *input.Input
	cam  *ArcBall

	modelPath string
	captures  []captureRequest
}

type captureRequest struct {
	path   string
	result chan error
}

// New creates a viewer around existing shared state and command queue.
func New(opts Options, state *State, queue *Queue) *Viewer {
	return &Viewer{
		opts:  opts,
		state: state,
		queue: queue,
		in:    input.New(),
	}
}

// Run opens the window, uploads the initial mesh (if any) and drives the
// frame loop until quit. It must be called from the main goroutine; the
// window package pins it to the OS thread. The queue is closed on return,
// so RPC pushes racing with shutdown fail cleanly.
func (v *Viewer) Run(initial *mesh.Mesh, initialPath string) error {
	defer v.queue.Close()

	win, err := window.New(window.Config{
		Title:  v.opts.Title,
		Width:  v.opts.Width,
		Height: v.opts.Height,
		VSync:  v.opts.VSync,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	v.win = win
	defer win.Close()

	drawW, drawH := win.DrawableSize()

	v.rend, err = renderer.New(drawW, drawH)
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	defer v.rend.Close()

	v.ui, err = overlay.New(drawW, drawH)
	if err != nil {
		return fmt.Errorf("initializing overlay: %w", err)
	}
	defer v.ui.Close()

	snap := v.state.Snapshot()
	v.cam = NewArcBall(snap.CameraPosition, snap.CameraTarget, drawW, drawH)

	if initial != nil {
		v.rend.Upload(initial.Soup())
		v.state.SetStats(initial.Analyze())
		v.modelPath = initialPath
	}

	logger.Info("viewer running",
		zap.String("model", v.modelPath),
		zap.String("rpc", v.opts.RPCAddr),
	)

	for {
		if quit := v.handleInput(); quit {
			return nil
		}
		if quit := v.applyCommands(); quit {
			return nil
		}
		v.drawFrame()
	}
}

// handleInput pumps SDL events and applies local input directly to the
// state and the camera. Returns true when the user asked to quit.
func (v *Viewer) handleInput() bool {
	if v.in.Update() {
		return true
	}

	for _, e := range v.in.Events() {
		switch e.Type {
		case input.EventWindowResize:
			// surface, overlay and camera viewport must resize together
			drawW, drawH := v.win.DrawableSize()
			v.rend.Resize(drawW, drawH)
			v.ui.Resize(drawW, drawH)
			v.cam.SetViewport(drawW, drawH)

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_W:
				v.state.SetWireframe(!v.state.Wireframe())
			case sdl.SCANCODE_B:
				v.state.SetBackfaces(!v.state.Backfaces())
			case sdl.SCANCODE_U:
				v.state.SetUI(!v.state.UI())
			case sdl.SCANCODE_Q, sdl.SCANCODE_ESCAPE:
				return true
			}

		case input.EventMouseDrag:
			switch e.Button {
			case sdl.BUTTON_LEFT:
				v.cam.Rotate(float32(e.DX), float32(e.DY))
			case sdl.BUTTON_RIGHT:
				v.cam.Pan(float32(e.DX), float32(e.DY))
			}
			v.publishCamera()

		case input.EventMouseWheel:
			v.cam.Zoom(e.WheelY)
			v.publishCamera()
		}
	}
	return false
}

// applyCommands drains the queue and applies every command in arrival
// order. Quit returns true immediately and discards the rest of the batch.
func (v *Viewer) applyCommands() bool {
	for i, cmd := range v.queue.Drain() {
		switch cmd.Kind {
		case CmdQuit:
			logger.Info("quit command received", zap.Int("discarded", i))
			return true

		case CmdLoadModel:
			v.loadModel(cmd.Path, cmd.MeshName)

		case CmdSetRotation:
			v.state.SetRotation(cmd.Vec.X, cmd.Vec.Y, cmd.Vec.Z)

		case CmdRotateAroundAxis:
			v.state.ApplyAxisRotation(cmd.Vec, cmd.Angle)

		case CmdSetCameraPosition:
			v.cam.SetPosition(cmd.Vec)
			v.publishCamera()

		case CmdSetCameraTarget:
			v.cam.SetTarget(cmd.Vec)
			v.publishCamera()

		case CmdSetWireframe:
			v.state.SetWireframe(cmd.On)
		case CmdSetBackfaces:
			v.state.SetBackfaces(cmd.On)
		case CmdSetUI:
			v.state.SetUI(cmd.On)

		case CmdScreenshot, CmdCaptureFrame:
			v.captures = append(v.captures, captureRequest{path: cmd.Path, result: cmd.Result})
		}
	}
	return false
}

// loadModel replaces the mesh wholesale. On any failure the current
// geometry, camera and stats are left untouched.
func (v *Viewer) loadModel(path, meshName string) {
	m, err := mesh.Load(path, meshName)
	if err != nil {
		logger.Error("model load failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return
	}

	v.rend.Upload(m.Soup())
	v.cam.Frame(m.MaxDimension())
	v.publishCamera()
	v.state.SetStats(m.Analyze())
	v.modelPath = path

	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", len(m.Positions)),
		zap.Int("triangles", len(m.Triangles)),
	)
}

func (v *Viewer) publishCamera() {
	v.state.SetCamera(v.cam.Eye(), v.cam.Target())
}

// drawFrame renders one frame and presents it. Captures requested this
// frame read the framebuffer back before the swap so they see exactly
// what was drawn.
func (v *Viewer) drawFrame() {
	snap := v.state.Snapshot()

	model := gomath.EulerXYZ(snap.ModelRotation.X, snap.ModelRotation.Y, snap.ModelRotation.Z)
	viewProj := v.cam.Projection().Mul(v.cam.View())

	v.rend.Draw(viewProj, model, renderer.Passes{
		Wireframe: snap.ShowWireframe,
		Backfaces: snap.ShowBackfaces,
	})

	if snap.ShowUI {
		v.ui.SetLines(v.overlayLines(snap))
		v.ui.Draw()
	}

	if len(v.captures) > 0 {
		pixels, w, h := v.rend.ReadPixels()
		for _, req := range v.captures {
			err := capture.WritePNG(req.path, pixels, w, h)
			if err != nil {
				logger.Error("capture failed",
					zap.String("path", req.path),
					zap.Error(err),
				)
			} else {
				logger.Info("frame captured", zap.String("path", req.path))
			}
			if req.result != nil {
				// buffered by the sender; never block the render thread
				select {
				case req.result <- err:
				default:
				}
			}
		}
		v.captures = v.captures[:0]
	}

	v.win.Swap()
}

func (v *Viewer) overlayLines(snap Snapshot) []string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	lines := []string{
		"LMB rotate   RMB pan   wheel zoom",
		fmt.Sprintf("[W]ireframe %s   [B]ackfaces %s   [U]I   [Q]uit", onOff(snap.ShowWireframe), onOff(snap.ShowBackfaces)),
	}
	if v.modelPath != "" {
		lines = append(lines, "model: "+filepath.Base(v.modelPath))
	}
	lines = append(lines,
		fmt.Sprintf("vertices %d   edges %d   faces %d", snap.Stats.VertexCount, snap.Stats.EdgeCount, snap.Stats.FaceCount),
		fmt.Sprintf("manifold %s   holes %d", yesNo(snap.Stats.IsManifold), snap.Stats.HoleCount),
	)
	if v.opts.RPCAddr != "" {
		lines = append(lines, "rpc: "+v.opts.RPCAddr)
	}
	return lines
}
