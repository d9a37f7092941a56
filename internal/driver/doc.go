// Package driver turns a calibrated trajectory into a periodic pair of
// output codes.
//
// A [Driver] starts in [Calibrating]. [Driver.Calibrate] runs the range
// pass once and moves it to [Running]; there is no way back. Each
// [Driver.Tick] advances the live state, normalises it and writes both
// channels from that one state, so the channels never tear. [Driver.Run]
// repeats Tick and a [Clock] sleep forever.
//
// Drivers are not safe for concurrent use. Observers run on the ticking
// goroutine and must not block.
package driver
