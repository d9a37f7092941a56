// Package calib discovers the range of a trajectory and maps live states
// into it.
//
// [Calibrate] runs a fixed number of steps from an initial condition and
// returns the per-axis [Box] of every visited state. [Box.Normalize] then
// maps any state affinely into [0, 1] per axis. Values outside the
// calibration range are not clamped; saturation belongs to the output sink.
//
// An axis whose range is narrower than [MinWidth] is degenerate and always
// normalises to [Midpoint].
package calib
