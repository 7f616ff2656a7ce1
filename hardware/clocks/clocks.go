// This file is part of TrueDrive.
//
// TrueDrive is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// TrueDrive is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TrueDrive.  If not, see <https://www.gnu.org/licenses/>.

// Package clocks defines the cycle counter type shared by the machine and
// the disk units, and the constant crystal values that define the speed of
// the main clock.
//
// Every disk unit carries its own cycle counter, advanced in step with the
// main machine clock. The counters are used to timestamp the attach/detach
// lifecycle of disk images and to recompute video timing values after a
// snapshot has been restored.
package clocks

// Clock is a monotonic cycle counter. It only ever increases during
// emulation; a value of zero means the machine has not yet run.
type Clock uint64

// Crystal frequencies in MHz.
const (
	NTSC = 1.022727
	PAL  = 1.108405
)

// PAL VIC-I timing. The raster cycle and raster line for any clock value
// can be recomputed from these.
const (
	PALCyclesPerLine = 71
	PALScreenLines   = 312
)

// NTSC VIC-I timing.
const (
	NTSCCyclesPerLine = 65
	NTSCScreenLines   = 261
)
