// Package viz draws graphs into the terminal.
//
// A [Renderer] paints the primitives of a [scene.Recorder] and the grid of
// a [graph.Frame] onto a braille [Canvas]. Its [Camera] doubles as the
// recorder's projector, so picking matches what is on screen.
//
// [Run] starts the interactive viewer:
//
//	←→↑↓  - Orbit the camera
//	+/-   - Zoom
//	Tab   - Cycle selection modes
//	Enter - Pick the item under the centre of the view
//	C     - Clear the selection
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	L     - Toggle labels
//	Q     - Quit
package viz
