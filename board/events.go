package board

// Events are delivered to Engine.Handle. Pointer coordinates are client
// coordinates in logical pixels.

type PointerDown struct {
	Pointer int
	X, Y    float64
}
type PointerMove struct {
	Pointer int
	X, Y    float64
}
type PointerUp struct {
	Pointer int
}

// PointerCancel ends a stroke exactly like PointerUp. Hosts send it when
// the pointer leaves the capture area, is rejected as a palm or loses
// capture.
type PointerCancel struct {
	Pointer int
}

//----------

// WindowResize tells the engine that the layout may have changed. The
// geometry is recomputed once on the next AnimationFrame.
type WindowResize struct{}

// AnimationFrame is sent by the host once per displayed frame.
type AnimationFrame struct{}

// FullscreenChange carries the host's new fullscreen state.
type FullscreenChange struct {
	On bool
}
