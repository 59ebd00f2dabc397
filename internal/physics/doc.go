// Package physics drives a window as a falling, bouncing body.
//
// An Engine owns the body state and the drag sample history. Platform events
// (ticks, drag start/end and position samples) are delivered through
// Engine.HandleEvent one at a time; the Engine estimates a release velocity
// from the drag samples and, while the window is not being dragged, advances
// the body one step per tick and asks the platform to move the window.
//
// The Engine is not safe for concurrent use. Drivers serialize events on a
// single goroutine, the same way a windowing system delivers messages.
package physics
