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

// Package vic holds the register and timing state of the VIC-I video chip.
//
// The pixel-level raster engine is not part of this project. What is here
// is the state that engine runs on, and in particular the serialization of
// that state into the snapshot format, field for field. The raster cycle
// and raster line fields are recomputable from the machine clock; the
// snapshot reader uses that to detect a corrupted or drifted save-state.
package vic

import (
	"github.com/viceteam/truedrive/hardware/clocks"
)

// NumRegisters is the number of addressable VIC-I registers.
const NumRegisters = 16

// size of the colour RAM block carried in the VIC snapshot module.
const colorRAMSize = 0x400

// lightPen is the light pen trigger state.
type lightPen struct {
	State        int
	Triggered    int
	X            int
	Y            int
	XExtraBits   int
	TriggerCycle clocks.Clock
}

// raster is the position of the raster beam as the raster engine last left
// it. A small mirror of the values the video engine works with; enough for
// the engine to resume after a restore.
type raster struct {
	CurrentX    int
	CurrentLine int
	Blank       bool
}

// VIC is the full register/timing state of the VIC-I.
type VIC struct {
	InterlaceEnabled int
	InterlaceField   int

	// clock value at the start of the current frame
	FramestartCycle clocks.Clock

	// position of the beam, also derivable from the machine clock. see
	// Sync()
	RasterCycle int
	RasterLine  int

	Area       int
	FetchState int

	TextCols        int
	TextLines       int
	PendingTextCols int
	LineWasBlank    int
	Memptr          int
	MemptrInc       int
	RowCounter      int
	BufOffset       int

	LightPen lightPen

	Vbuf uint8

	ColorRAM [colorRAMSize]uint8
	Regs     [NumRegisters]uint8

	Raster raster

	// screen geometry, fixed by the video standard at construction
	cyclesPerLine int
	screenLines   int
}

// NewVIC is the preferred method of initialisation for the VIC type. The
// geometry arguments fix the video standard; see the clocks package for
// the PAL and NTSC values.
func NewVIC(cyclesPerLine int, screenLines int) *VIC {
	return &VIC{
		cyclesPerLine: cyclesPerLine,
		screenLines:   screenLines,
	}
}

// Store writes to one of the VIC's registers, updating the derived values
// the way the video engine would.
func (v *VIC) Store(reg int, value uint8) {
	reg &= NumRegisters - 1
	v.Regs[reg] = value

	switch reg {
	case 0x02:
		v.PendingTextCols = int(value & 0x7f)
	case 0x03:
		v.TextLines = int((value >> 1) & 0x3f)
	}
}

// Sync recomputes the beam position from the machine clock. The same
// relation is used after a snapshot restore to verify that the restored
// state and the restored clock agree.
func (v *VIC) Sync(clk clocks.Clock) {
	v.RasterCycle = v.rasterCycle(clk)
	v.RasterLine = v.rasterLine(clk)
	v.Raster.CurrentX = v.RasterCycle
	v.Raster.CurrentLine = v.RasterLine
}

func (v *VIC) rasterCycle(clk clocks.Clock) int {
	return int(clk % clocks.Clock(v.cyclesPerLine))
}

func (v *VIC) rasterLine(clk clocks.Clock) int {
	return int((clk / clocks.Clock(v.cyclesPerLine)) % clocks.Clock(v.screenLines))
}
