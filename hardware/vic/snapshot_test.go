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

package vic_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/hardware/clocks"
	"github.com/viceteam/truedrive/hardware/vic"
	"github.com/viceteam/truedrive/snapshot"
	"github.com/viceteam/truedrive/test"
)

func newTestVIC(clk clocks.Clock) *vic.VIC {
	v := vic.NewVIC(clocks.PALCyclesPerLine, clocks.PALScreenLines)

	v.FramestartCycle = clk - clk%clocks.Clock(clocks.PALCyclesPerLine*clocks.PALScreenLines)
	v.Area = 1
	v.FetchState = 2
	v.Memptr = 0x1e00
	v.MemptrInc = 22
	v.RowCounter = 11
	v.BufOffset = 3
	v.Vbuf = 0x55
	v.LightPen.X = 120
	v.LightPen.Y = 133
	v.LightPen.TriggerCycle = clk - 500

	for i := range v.ColorRAM {
		v.ColorRAM[i] = uint8(i)
	}
	for i := 0; i < vic.NumRegisters; i++ {
		v.Store(i, uint8(0xf0|i))
	}

	v.Sync(clk)
	return v
}

func writeVIC(t *testing.T, v *vic.VIC) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "vic.snap")
	f, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, err := snapshot.NewWriter(f, "VIC20")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, v.SnapshotWrite(s))

	return fn
}

func TestVICRoundTrip(t *testing.T) {
	clk := clocks.Clock(123456)
	out := newTestVIC(clk)
	fn := writeVIC(t, out)

	f, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, err := snapshot.NewReader(f)
	test.ExpectedSuccess(t, err)

	in := vic.NewVIC(clocks.PALCyclesPerLine, clocks.PALScreenLines)
	test.ExpectedSuccess(t, in.SnapshotRead(s, clk))

	test.Equate(t, in.RasterCycle, out.RasterCycle)
	test.Equate(t, in.RasterLine, out.RasterLine)
	test.Equate(t, uint64(in.FramestartCycle), uint64(out.FramestartCycle))
	test.Equate(t, in.Area, out.Area)
	test.Equate(t, in.FetchState, out.FetchState)
	test.Equate(t, in.Memptr, out.Memptr)
	test.Equate(t, in.MemptrInc, out.MemptrInc)
	test.Equate(t, in.RowCounter, out.RowCounter)
	test.Equate(t, in.BufOffset, out.BufOffset)
	test.Equate(t, in.Vbuf, out.Vbuf)
	test.Equate(t, in.LightPen.X, out.LightPen.X)
	test.Equate(t, in.LightPen.Y, out.LightPen.Y)
	test.Equate(t, uint64(in.LightPen.TriggerCycle), uint64(out.LightPen.TriggerCycle))

	for i := range in.ColorRAM {
		test.Equate(t, in.ColorRAM[i], out.ColorRAM[i])
	}
	for i := range in.Regs {
		test.Equate(t, in.Regs[i], out.Regs[i])
	}

	// values derived from the re-stored registers
	test.Equate(t, in.PendingTextCols, out.PendingTextCols)
	test.Equate(t, in.TextLines, out.TextLines)
}

func TestVICInconsistentClock(t *testing.T) {
	clk := clocks.Clock(123456)
	out := newTestVIC(clk)
	fn := writeVIC(t, out)

	f, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, err := snapshot.NewReader(f)
	test.ExpectedSuccess(t, err)

	// restoring against a clock that doesn't match the stored beam
	// position is corruption and fails the whole restore
	in := vic.NewVIC(clocks.PALCyclesPerLine, clocks.PALScreenLines)
	err = in.SnapshotRead(s, clk+1)
	test.ExpectedSuccess(t, curated.Is(err, vic.ErrInconsistent))
}

func TestVICVersionTooOld(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "vic.snap")
	f, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}

	// hand-build a container with a VIC-I module stamped with a version
	// older than the code requires
	s, err := snapshot.NewWriter(f, "VIC20")
	test.ExpectedSuccess(t, err)
	mod, err := s.Create("VIC-I", 0, 0)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, mod.Close())
	f.Close()

	rf, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer rf.Close()

	r, err := snapshot.NewReader(rf)
	test.ExpectedSuccess(t, err)

	in := vic.NewVIC(clocks.PALCyclesPerLine, clocks.PALScreenLines)
	err = in.SnapshotRead(r, 0)
	test.ExpectedSuccess(t, curated.Is(err, snapshot.ErrVersionTooOld))

	// destination state untouched by the failed read
	test.Equate(t, in.Memptr, 0)
	test.Equate(t, in.Vbuf, 0)
}
