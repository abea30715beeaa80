// Package viz runs the ripple engine inside a Bubble Tea program.
//
// The program drives one engine frame per tick. Keys the engine understands
// are queued on the [Canvas] and consumed by the next frame; window size
// changes become resize requests, so the viewport only changes between
// frames.
//
//   - [Model]: the live ripple view with an optional energy panel
//   - [Picker]: a preset menu that launches a [Model]
//   - [Canvas]: an in-memory surface rendered with lipgloss
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	R      - Calm the surface
//	E      - Toggle the energy panel
//	T      - Cycle panel themes
//	Q/Esc  - Quit
//	Click  - Drop a raindrop under the pointer
package viz
