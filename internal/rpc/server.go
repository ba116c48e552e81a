package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/meshforge/meshview/internal/logger"
	"github.com/meshforge/meshview/internal/viewer"
	gomath "github.com/meshforge/meshview/pkg/math"
)

// DefaultPort is the loopback port the viewer listens on unless configured
// otherwise.
const DefaultPort = 9001

// JSON-RPC 2.0 error codes.
const (
	codeSendFailed     = -32000
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeParseError     = -32700
)

// captureWait bounds how long a screenshot handler waits for the render
// thread to report the capture outcome before falling back to a
// fire-and-forget acknowledgement.
const captureWait = 2 * time.Second

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *rpcError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s (code %d): %v", e.Message, e.Code, e.Data)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// Server handles JSON-RPC requests concurrently; every handler either
// reads the shared state under a short lock or enqueues a command for the
// render thread, never both and never a GPU call.
type Server struct {
	state          *viewer.State
	queue          *viewer.Queue
	captureEnabled bool

	listener   net.Listener
	httpServer *http.Server
}

// NewServer wires the RPC surface to the shared state and command queue.
// captureEnabled gates the capture_frame method.
func NewServer(state *viewer.State, queue *viewer.Queue, captureEnabled bool) *Server {
	return &Server{
		state:          state,
		queue:          queue,
		captureEnabled: captureEnabled,
	}
}

// Start listens on loopback and serves in a background goroutine. It
// returns the bound address (useful with port 0 in tests).
func (s *Server) Start(port int) (string, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return "", fmt.Errorf("rpc listen: %w", err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("rpc server stopped", zap.Error(err))
		}
	}()

	logger.Info("rpc server listening", zap.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}

// Close stops accepting requests.
func (s *Server) Close() error {
	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "JSON-RPC requests must be POST", http.StatusMethodNotAllowed)
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, response{
			JSONRPC: "2.0",
			ID:      json.RawMessage("null"),
			Error:   &rpcError{Code: codeParseError, Message: "Parse error", Data: err.Error()},
		})
		return
	}

	result, rpcErr := s.dispatch(req.Method, req.Params)

	if req.ID == nil {
		// notification: applied, nothing to answer
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := response{JSONRPC: "2.0", ID: req.ID}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("writing rpc response", zap.Error(err))
	}
}

func (s *Server) dispatch(method string, params json.RawMessage) (any, *rpcError) {
	logger.Debug("rpc request", zap.String("method", method))

	switch method {
	case "load_model":
		return s.loadModel(params)
	case "set_rotation":
		return s.setRotation(params)
	case "rotate_around_axis":
		return s.rotateAroundAxis(params)
	case "set_camera_position":
		return s.setCameraPoint(params, viewer.CmdSetCameraPosition, "Set camera position to")
	case "set_camera_target":
		return s.setCameraPoint(params, viewer.CmdSetCameraTarget, "Set camera target to")

	case "enable_wireframe":
		return s.setToggle(viewer.CmdSetWireframe, "Wireframe", true)
	case "disable_wireframe":
		return s.setToggle(viewer.CmdSetWireframe, "Wireframe", false)
	case "toggle_wireframe":
		return s.setToggle(viewer.CmdSetWireframe, "Wireframe", !s.state.Wireframe())

	case "enable_backfaces":
		return s.setToggle(viewer.CmdSetBackfaces, "Backfaces", true)
	case "disable_backfaces":
		return s.setToggle(viewer.CmdSetBackfaces, "Backfaces", false)
	case "toggle_backfaces":
		return s.setToggle(viewer.CmdSetBackfaces, "Backfaces", !s.state.Backfaces())

	case "enable_ui":
		return s.setToggle(viewer.CmdSetUI, "UI", true)
	case "disable_ui":
		return s.setToggle(viewer.CmdSetUI, "UI", false)
	case "toggle_ui":
		return s.setToggle(viewer.CmdSetUI, "UI", !s.state.UI())

	case "get_stats":
		st := s.state.Stats()
		return StatsResponse{
			Vertices:   st.VertexCount,
			Edges:      st.EdgeCount,
			Faces:      st.FaceCount,
			IsManifold: st.IsManifold,
			Holes:      st.HoleCount,
		}, nil

	case "capture_frame":
		return s.captureFrame(params)
	case "screenshot":
		return s.screenshot(params)

	case "quit":
		if err := s.push(viewer.Command{Kind: viewer.CmdQuit}); err != nil {
			return nil, err
		}
		return "Viewer will quit", nil

	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: "Method not found", Data: method}
	}
}

// push enqueues a command, mapping a closed queue to the send-failed error
// the caller can act on.
func (s *Server) push(cmd viewer.Command) *rpcError {
	if err := s.queue.Push(cmd); err != nil {
		return &rpcError{Code: codeSendFailed, Message: "Failed to send command to viewer", Data: err.Error()}
	}
	return nil
}

func (s *Server) loadModel(params json.RawMessage) (any, *rpcError) {
	var args []json.RawMessage
	if err := json.Unmarshal(params, &args); err != nil || len(args) < 1 || len(args) > 2 {
		return nil, invalidParams("expected [path, mesh_name?]")
	}

	var path string
	if err := json.Unmarshal(args[0], &path); err != nil {
		return nil, invalidParams("path must be a string")
	}

	meshName := ""
	if len(args) == 2 && string(args[1]) != "null" {
		if err := json.Unmarshal(args[1], &meshName); err != nil {
			return nil, invalidParams("mesh_name must be a string")
		}
	}

	if err := s.push(viewer.Command{Kind: viewer.CmdLoadModel, Path: path, MeshName: meshName}); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Loading model: %s", path), nil
}

func (s *Server) setRotation(params json.RawMessage) (any, *rpcError) {
	v, rpcErr := parsePoint(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.push(viewer.Command{Kind: viewer.CmdSetRotation, Vec: v}); err != nil {
		return nil, err
	}
	return fmt.Sprintf("Set rotation to (%g, %g, %g)", v.X, v.Y, v.Z), nil
}

func (s *Server) rotateAroundAxis(params json.RawMessage) (any, *rpcError) {
	var args []json.RawMessage
	if err := json.Unmarshal(params, &args); err != nil || len(args) != 2 {
		return nil, invalidParams("expected [axis, angle]")
	}

	var axis []float32
	if err := json.Unmarshal(args[0], &axis); err != nil || len(axis) != 3 {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid axis", Data: "Axis must be [x, y, z]"}
	}

	var angle string
	if err := json.Unmarshal(args[1], &angle); err != nil {
		return nil, invalidParams("angle must be a string like '90d' or '1.57r'")
	}
	rad, err := ParseAngle(angle)
	if err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid angle format", Data: err.Error()}
	}

	cmd := viewer.Command{
		Kind:  viewer.CmdRotateAroundAxis,
		Vec:   gomath.Vec3{X: axis[0], Y: axis[1], Z: axis[2]},
		Angle: rad,
	}
	if rpcErr := s.push(cmd); rpcErr != nil {
		return nil, rpcErr
	}
	return fmt.Sprintf("Rotated around axis %v by %s", axis, angle), nil
}

func (s *Server) setCameraPoint(params json.RawMessage, kind viewer.CommandKind, verb string) (any, *rpcError) {
	v, rpcErr := parsePoint(params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	if err := s.push(viewer.Command{Kind: kind, Vec: v}); err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s (%g, %g, %g)", verb, v.X, v.Y, v.Z), nil
}

// setToggle implements every enable_/disable_/toggle_ method: the new
// value is decided here (for toggles by a short locked read of the current
// one) and shipped to the render thread as an explicit set command.
func (s *Server) setToggle(kind viewer.CommandKind, label string, on bool) (any, *rpcError) {
	if err := s.push(viewer.Command{Kind: kind, On: on}); err != nil {
		return nil, err
	}
	if on {
		return label + " enabled", nil
	}
	return label + " disabled", nil
}

func (s *Server) screenshot(params json.RawMessage) (any, *rpcError) {
	var args []string
	if err := json.Unmarshal(params, &args); err != nil || len(args) != 1 || args[0] == "" {
		return nil, invalidParams("expected [path]")
	}
	path := args[0]

	result := make(chan error, 1)
	if err := s.push(viewer.Command{Kind: viewer.CmdScreenshot, Path: path, Result: result}); err != nil {
		return nil, err
	}

	select {
	case err := <-result:
		if err != nil {
			return nil, &rpcError{Code: codeSendFailed, Message: "Screenshot failed", Data: err.Error()}
		}
		return fmt.Sprintf("Screenshot saved to: %s", path), nil
	case <-time.After(captureWait):
		return fmt.Sprintf("Screenshot will be saved to: %s", path), nil
	}
}

func (s *Server) captureFrame(params json.RawMessage) (any, *rpcError) {
	if !s.captureEnabled {
		return nil, &rpcError{
			Code:    codeMethodNotFound,
			Message: "Frame capture not enabled",
			Data:    "start the viewer with capture enabled to use frame capture",
		}
	}

	path := ""
	if len(params) > 0 {
		var args []json.RawMessage
		if err := json.Unmarshal(params, &args); err != nil || len(args) > 1 {
			return nil, invalidParams("expected [path?]")
		}
		if len(args) == 1 && string(args[0]) != "null" {
			if err := json.Unmarshal(args[0], &path); err != nil {
				return nil, invalidParams("path must be a string")
			}
		}
	}
	if path == "" {
		path = fmt.Sprintf("capture_%s.png", time.Now().Format("20060102_150405"))
	}

	result := make(chan error, 1)
	if err := s.push(viewer.Command{Kind: viewer.CmdCaptureFrame, Path: path, Result: result}); err != nil {
		return nil, err
	}

	select {
	case err := <-result:
		if err != nil {
			return nil, &rpcError{Code: codeSendFailed, Message: "Frame capture failed", Data: err.Error()}
		}
		return fmt.Sprintf("Frame captured to: %s", path), nil
	case <-time.After(captureWait):
		return "Frame capture triggered", nil
	}
}

func parsePoint(params json.RawMessage) (gomath.Vec3, *rpcError) {
	var coords []float32
	if err := json.Unmarshal(params, &coords); err != nil || len(coords) != 3 {
		return gomath.Vec3{}, invalidParams("expected [x, y, z]")
	}
	return gomath.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func invalidParams(detail string) *rpcError {
	return &rpcError{Code: codeInvalidParams, Message: "Invalid params", Data: detail}
}
