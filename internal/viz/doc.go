// Package viz renders stochastic process results in the terminal.
//
//   - [Plot]: static asciigraph charts of a result's series
//   - [Frames]: cumulative Braille [Canvas] frames, one per sample
//   - [Player]: Bubble Tea model animating the frames
//   - [Menu]: process and preset picker that launches a Player
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	[ ]   - Step backward/forward
//
// # Recording
//
// Frames can be rasterized to a GIF either live with the G key or
// headlessly via [WriteGIF].
package viz
