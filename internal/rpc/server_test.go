package rpc

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/meshforge/meshview/internal/mesh"
	"github.com/meshforge/meshview/internal/viewer"
)

type testRig struct {
	state  *viewer.State
	queue  *viewer.Queue
	client *Client
	url    string
}

func newTestRig(t *testing.T, captureEnabled bool) *testRig {
	t.Helper()

	state := viewer.NewState()
	queue := viewer.NewQueue()
	ts := httptest.NewServer(NewServer(state, queue, captureEnabled))
	t.Cleanup(ts.Close)

	return &testRig{
		state:  state,
		queue:  queue,
		client: NewClient(ts.URL),
		url:    ts.URL,
	}
}

// drainInBackground emulates the render thread for commands whose handler
// waits on the result channel.
func (r *testRig) drainInBackground(t *testing.T, reply error) {
	t.Helper()
	go func() {
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			for _, cmd := range r.queue.Drain() {
				if cmd.Result != nil {
					cmd.Result <- reply
					return
				}
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()
}

func TestToggleReadsThenEnqueuesExplicitSet(t *testing.T) {
	r := newTestRig(t, false)

	// wireframe starts enabled, so a toggle must ship Set(false)
	reply, err := r.client.ToggleWireframe()
	if err != nil {
		t.Fatalf("ToggleWireframe: %v", err)
	}
	if reply != "Wireframe disabled" {
		t.Errorf("reply = %q", reply)
	}

	cmds := r.queue.Drain()
	if len(cmds) != 1 || cmds[0].Kind != viewer.CmdSetWireframe || cmds[0].On {
		t.Fatalf("queued %+v, want SetWireframe(false)", cmds)
	}

	// the handler never writes state directly; only the render thread does
	if !r.state.Wireframe() {
		t.Error("toggle handler mutated state directly")
	}
}

func TestEnableDisable(t *testing.T) {
	r := newTestRig(t, false)

	reply, err := r.client.EnableBackfaces()
	if err != nil {
		t.Fatalf("EnableBackfaces: %v", err)
	}
	if reply != "Backfaces enabled" {
		t.Errorf("reply = %q", reply)
	}

	reply, err = r.client.DisableUI()
	if err != nil {
		t.Fatalf("DisableUI: %v", err)
	}
	if reply != "UI disabled" {
		t.Errorf("reply = %q", reply)
	}

	cmds := r.queue.Drain()
	if len(cmds) != 2 {
		t.Fatalf("queued %d commands, want 2", len(cmds))
	}
	if cmds[0].Kind != viewer.CmdSetBackfaces || !cmds[0].On {
		t.Errorf("cmds[0] = %+v, want SetBackfaces(true)", cmds[0])
	}
	if cmds[1].Kind != viewer.CmdSetUI || cmds[1].On {
		t.Errorf("cmds[1] = %+v, want SetUI(false)", cmds[1])
	}
}

func TestLoadModel(t *testing.T) {
	r := newTestRig(t, false)

	reply, err := r.client.LoadModel("/models/ship.glb", "hull")
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if reply != "Loading model: /models/ship.glb" {
		t.Errorf("reply = %q", reply)
	}

	cmds := r.queue.Drain()
	if len(cmds) != 1 {
		t.Fatalf("queued %d commands", len(cmds))
	}
	if cmds[0].Kind != viewer.CmdLoadModel || cmds[0].Path != "/models/ship.glb" || cmds[0].MeshName != "hull" {
		t.Errorf("cmd = %+v", cmds[0])
	}
}

func TestRotateAroundAxis(t *testing.T) {
	r := newTestRig(t, false)

	if _, err := r.client.RotateAroundAxis([3]float32{0, 1, 0}, "90d"); err != nil {
		t.Fatalf("RotateAroundAxis: %v", err)
	}

	cmds := r.queue.Drain()
	if len(cmds) != 1 || cmds[0].Kind != viewer.CmdRotateAroundAxis {
		t.Fatalf("queued %+v", cmds)
	}
	if cmds[0].Vec.Y != 1 {
		t.Errorf("axis = %v", cmds[0].Vec)
	}
	if math.Abs(float64(cmds[0].Angle)-math.Pi/2) > 0.001 {
		t.Errorf("angle = %v, want π/2", cmds[0].Angle)
	}
}

func TestRotateAroundAxisBadParams(t *testing.T) {
	r := newTestRig(t, false)

	err := r.client.Call("rotate_around_axis", []any{[]float32{0, 1}, "90d"}, nil)
	if err == nil || !strings.Contains(err.Error(), "Invalid axis") {
		t.Errorf("err = %v, want invalid axis", err)
	}

	err = r.client.Call("rotate_around_axis", []any{[]float32{0, 1, 0}, "90x"}, nil)
	if err == nil || !strings.Contains(err.Error(), "Invalid angle format") {
		t.Errorf("err = %v, want invalid angle", err)
	}

	if cmds := r.queue.Drain(); cmds != nil {
		t.Errorf("invalid requests queued %d commands", len(cmds))
	}
}

func TestGetStats(t *testing.T) {
	r := newTestRig(t, false)
	r.state.SetStats(mesh.Stats{
		VertexCount: 8,
		EdgeCount:   18,
		FaceCount:   12,
		IsManifold:  true,
	})

	stats, err := r.client.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	want := StatsResponse{Vertices: 8, Edges: 18, Faces: 12, IsManifold: true}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestClosedQueue(t *testing.T) {
	r := newTestRig(t, false)
	r.queue.Close()

	_, err := r.client.Quit()
	if err == nil || !strings.Contains(err.Error(), "Failed to send command") {
		t.Errorf("err = %v, want send failure", err)
	}
}

func TestUnknownMethod(t *testing.T) {
	r := newTestRig(t, false)

	err := r.client.Call("explode", []any{}, nil)
	if err == nil || !strings.Contains(err.Error(), "Method not found") {
		t.Errorf("err = %v, want method not found", err)
	}
}

func TestCaptureFrameGated(t *testing.T) {
	r := newTestRig(t, false)

	_, err := r.client.CaptureFrame("")
	if err == nil || !strings.Contains(err.Error(), "not enabled") {
		t.Errorf("err = %v, want capture-disabled error", err)
	}
	if cmds := r.queue.Drain(); cmds != nil {
		t.Errorf("gated method queued %d commands", len(cmds))
	}
}

func TestCaptureFrameEnabled(t *testing.T) {
	r := newTestRig(t, true)
	r.drainInBackground(t, nil)

	reply, err := r.client.CaptureFrame("/tmp/frame.png")
	if err != nil {
		t.Fatalf("CaptureFrame: %v", err)
	}
	if reply != "Frame captured to: /tmp/frame.png" {
		t.Errorf("reply = %q", reply)
	}
}

func TestScreenshotReportsSuccess(t *testing.T) {
	r := newTestRig(t, false)
	r.drainInBackground(t, nil)

	reply, err := r.client.Screenshot("/tmp/shot.png")
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if reply != "Screenshot saved to: /tmp/shot.png" {
		t.Errorf("reply = %q", reply)
	}
}

func TestScreenshotReportsFailure(t *testing.T) {
	r := newTestRig(t, false)
	r.drainInBackground(t, errors.New("disk full"))

	_, err := r.client.Screenshot("/tmp/shot.png")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("err = %v, want capture failure", err)
	}
}

func TestParseError(t *testing.T) {
	r := newTestRig(t, false)

	resp, err := http.Post(r.url, "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var decoded clientResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if decoded.Error == nil || decoded.Error.Code != codeParseError {
		t.Errorf("error = %+v, want code %d", decoded.Error, codeParseError)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRig(t, false)

	resp, err := http.Get(r.url)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
