// Package viz renders a running simulation in the terminal.
//
//   - [Canvas]: braille sub-pixel grid with per-cell color
//   - [CanvasDrawer]: a sim.Drawer that projects camera screen coordinates
//     onto a Canvas
//   - [Model]: Bubble Tea model that steps the system once per frame and
//     shows an energy chart next to the canvas
//
// # Key Bindings
//
//	Arrows - Pan the camera
//	+/w    - Zoom in
//	-/s    - Zoom out
//	C      - Recentre on the heaviest body
//	Space  - Pause/Resume simulation
//	Q/Esc  - Quit
//	?      - Show help
package viz
