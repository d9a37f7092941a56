// Package viz renders the two DAC channels in the terminal.
//
// [Monitor] is a Bubble Tea model that ticks a running driver from the UI
// frame clock and plots channel 0 against channel 1 on a braille [Canvas],
// the way an oscilloscope in XY mode would show the analog outputs.
//
// # Key Bindings
//
//	Space - Pause/Resume ticking
//	C     - Clear the trace
//	T     - Cycle color themes
//	Q     - Quit
package viz
