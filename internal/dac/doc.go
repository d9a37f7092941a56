// Package dac defines the two-channel 8-bit output contract and its
// software backends.
//
// A [Device] is configured once per [Channel] and returns an [Output]
// handle that accepts codes in [0, MaxCode]. [Quantize] converts a scaled
// level into a code and is where out-of-range levels saturate.
//
// Backends:
//
//   - [Recorder]: in-memory history, used by tests and capture runs
//   - [LineWriter]: text lines for piping into another process
//   - [Null]: discards writes
//   - [Sysfs]: Linux IIO DAC attributes
//
// The audio package provides a DC-coupled stereo backend.
package dac
