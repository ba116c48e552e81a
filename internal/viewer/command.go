// Package viewer holds the state shared between the render loop and the
// RPC layer: the mutex-guarded viewer state, the command queue feeding the
// render thread, and the arc-ball camera model.
package viewer

import (
	"errors"
	"sync"

	gomath "github.com/meshforge/meshview/pkg/math"
)

// CommandKind discriminates Command variants.
type CommandKind int

const (
	CmdLoadModel CommandKind = iota
	CmdSetRotation
	CmdRotateAroundAxis
	CmdSetCameraPosition
	CmdSetCameraTarget
	CmdSetWireframe
	CmdSetBackfaces
	CmdSetUI
	CmdScreenshot
	CmdCaptureFrame
	CmdQuit
)

// Command is a single instruction for the render thread. Commands are
// immutable once constructed and consumed exactly once.
type Command struct {
	Kind     CommandKind
	Path     string      // LoadModel, Screenshot, CaptureFrame
	MeshName string      // LoadModel
	Vec      gomath.Vec3 // rotation angles, camera point, or rotation axis
	Angle    float32     // RotateAroundAxis
	On       bool        // Set* toggles

	// Result, when non-nil, receives the outcome of commands whose effect
	// the sender wants to observe (screenshot/capture). It must be buffered;
	// the render thread sends without blocking and moves on.
	Result chan error
}

// ErrQueueClosed is returned by Push after the render loop has shut the
// queue down. Callers treat it as "viewer is gone", not as a crash.
var ErrQueueClosed = errors.New("command queue is closed")

// Queue is an unbounded multi-producer/single-consumer command queue.
// Producers never block; the consumer drains everything accumulated since
// the previous frame in one call.
type Queue struct {
	mu      sync.Mutex
	pending []Command
	closed  bool
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a command. It never blocks and gives no confirmation that
// the command was applied.
func (q *Queue) Push(c Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.pending = append(q.pending, c)
	return nil
}

// Drain removes and returns every queued command in arrival order. It
// returns nil immediately when nothing is queued.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Close rejects all future pushes. Commands already queued are discarded.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.pending = nil
}
