// Package input turns SDL2 events into the viewer's input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType discriminates Event variants.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDrag
	EventMouseWheel
)

// Event is one processed input event. For EventMouseDrag, DX/DY carry the
// cursor delta since the previous motion event and Button the held button.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	DX     int
	DY     int
	WheelY float32
	Button uint8
}

// Input polls SDL and keeps the held-button state needed to classify
// cursor motion as a rotate or pan drag.
type Input struct {
	events     []Event
	heldButton uint8
}

// New creates an input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls all pending SDL events. It returns true when the window
// manager asked the application to quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.heldButton = e.Button
			} else if e.Type == sdl.MOUSEBUTTONUP && e.Button == i.heldButton {
				i.heldButton = 0
			}

		case *sdl.MouseMotionEvent:
			if i.heldButton != 0 {
				i.events = append(i.events, Event{
					Type:   EventMouseDrag,
					DX:     int(e.XRel),
					DY:     int(e.YRel),
					Button: i.heldButton,
				})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseWheel,
				WheelY: float32(e.Y),
			})
		}
	}

	return quit
}

// Events returns the events collected by the last Update.
func (i *Input) Events() []Event {
	return i.events
}
