package main

import "image"

// View owns the window between two view switches. The board and the help
// page are views; Handle returning a non-nil View hands the window over.
type View interface {
	// Connect gives the view the display it paints on.
	Connect(dctl *DisplayControl)

	// Handle runs the view's event loop until it exits, returning nil, or
	// switches, returning the view to run next.
	Handle() View

	// Attach lays the view out again after the window moved or resized.
	Attach(image.Rectangle)

	// Free is called once the view is popped. BoardView and HelpView
	// allocate no display images of their own, the palette swatches are
	// cached by DisplayControl, so for both it does nothing.
	Free()
}
