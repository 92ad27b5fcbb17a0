// Package viz draws a particle engine in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps the engine at a fixed frame rate and renders it
//   - [Menu]: preset picker that hands off to a Model
//   - [Scene]: particle.Sink that projects frames onto a [Canvas]
//   - [Canvas]: braille dot grid with per-cell color
//   - [Camera]: orbiting perspective camera, zoom eased with a harmonica spring
//
// # Key Bindings
//
//	Space  - Toggle between formed and scattered
//	P      - Pause/Resume
//	.      - Single step while paused
//	Arrows - Orbit camera
//	+/-    - Zoom
//	T      - Cycle color themes
//	?      - Show help
//	Q      - Quit
package viz
