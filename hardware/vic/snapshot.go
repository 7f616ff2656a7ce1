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

package vic

import (
	"fmt"

	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/hardware/clocks"
	"github.com/viceteam/truedrive/logger"
	"github.com/viceteam/truedrive/snapshot"
)

const snapModuleName = "VIC-I"

// version of the VIC-I module schema. additive changes bump the minor
// number; changes to the order or width of existing fields bump the major
// number.
const (
	snapMajor = 0
	snapMinor = 4
)

// error pattern for the post-read consistency check.
const ErrInconsistent = "vic: %s value (%d) incorrect; should be %d"

// schema returns the wire layout of the VIC-I module. The order of entries
// is the wire format and must not change without a version bump.
func (v *VIC) schema() []snapshot.Entry {
	s := []snapshot.Entry{
		snapshot.DWordInt("interlace enabled", &v.InterlaceEnabled),
		snapshot.DWordInt("interlace field", &v.InterlaceField),
		snapshot.Clock("framestart cycle", &v.FramestartCycle),
		snapshot.ByteInt("raster cycle", &v.RasterCycle),

		// the raster line appears twice on the wire. the word copy predates
		// the doubleword field and is kept for layout compatibility
		snapshot.WordInt("raster line (word)", &v.RasterLine),

		snapshot.WordInt("area", &v.Area),
		snapshot.WordInt("fetch state", &v.FetchState),
		snapshot.DWordInt("raster line", &v.RasterLine),
		snapshot.DWordInt("text cols", &v.TextCols),
		snapshot.DWordInt("text lines", &v.TextLines),
		snapshot.DWordInt("pending text cols", &v.PendingTextCols),
		snapshot.DWordInt("line was blank", &v.LineWasBlank),
		snapshot.DWordInt("memptr", &v.Memptr),
		snapshot.DWordInt("memptr increment", &v.MemptrInc),
		snapshot.DWordInt("row counter", &v.RowCounter),
		snapshot.DWordInt("buffer offset", &v.BufOffset),
		snapshot.ByteInt("light pen state", &v.LightPen.State),
		snapshot.ByteInt("light pen triggered", &v.LightPen.Triggered),
		snapshot.DWordInt("light pen x", &v.LightPen.X),
		snapshot.DWordInt("light pen y", &v.LightPen.Y),
		snapshot.DWordInt("light pen x extra bits", &v.LightPen.XExtraBits),
		snapshot.Clock("light pen trigger cycle", &v.LightPen.TriggerCycle),
		snapshot.Byte("vbuf", &v.Vbuf),
		snapshot.Block("color RAM", v.ColorRAM[:]),
	}

	for i := range v.Regs {
		s = append(s, snapshot.Byte(fmt.Sprintf("register %02x", i), &v.Regs[i]))
	}

	s = append(s,
		snapshot.DWordInt("raster current x", &v.Raster.CurrentX),
		snapshot.DWordInt("raster current line", &v.Raster.CurrentLine),
		snapshot.DWordBool("raster blank", &v.Raster.Blank),
	)

	return s
}

// SnapshotWrite adds the VIC-I module to a snapshot container.
func (v *VIC) SnapshotWrite(s *snapshot.Writer) error {
	mod, err := s.Create(snapModuleName, snapMajor, snapMinor)
	if err != nil {
		return err
	}

	if err := mod.WriteSchema(v.schema()); err != nil {
		// close the incomplete module so the container stays walkable
		mod.Close()
		return err
	}

	return mod.Close()
}

// SnapshotRead restores the VIC-I from a snapshot container. The clk
// argument is the machine clock restored from the same container; the beam
// position stored in the module must agree with it or the restore fails.
func (v *VIC) SnapshotRead(s *snapshot.Reader, clk clocks.Clock) error {
	mod, err := s.Open(snapModuleName)
	if err != nil {
		return err
	}

	if err := mod.RequireVersion(snapMajor, snapMinor); err != nil {
		logger.Logf("vic", "%v", err)
		return err
	}

	if err := mod.ReadSchema(v.schema()); err != nil {
		return err
	}

	// registers are re-stored so that values derived from them are
	// recomputed. register stores have no other side effects
	for i := range v.Regs {
		v.Store(i, v.Regs[i])
	}

	// a restored beam position that disagrees with the restored clock is
	// corruption, not something to patch up. resuming emulation from a
	// drifted timing state produces visibly wrong behaviour
	if v.RasterCycle != v.rasterCycle(clk) {
		logger.Logf("vic", "cycle value (%d) incorrect; should be %d", v.RasterCycle, v.rasterCycle(clk))
		return curated.Errorf(ErrInconsistent, "cycle", v.RasterCycle, v.rasterCycle(clk))
	}
	if v.RasterLine != v.rasterLine(clk) {
		logger.Logf("vic", "raster line value (%d) incorrect; should be %d", v.RasterLine, v.rasterLine(clk))
		return curated.Errorf(ErrInconsistent, "raster line", v.RasterLine, v.rasterLine(clk))
	}

	return nil
}
