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

package hardware_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/hardware"
	"github.com/viceteam/truedrive/hardware/drive"
	"github.com/viceteam/truedrive/test"
)

func snapshotMachine(t *testing.T, m *hardware.Machine) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "machine.snap")
	f, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	test.ExpectedSuccess(t, m.SnapshotWrite(f))
	return fn
}

func restoreMachine(t *testing.T, m *hardware.Machine, fn string) error {
	t.Helper()

	f, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	return m.SnapshotRead(f)
}

func TestMachineRoundTrip(t *testing.T) {
	out := hardware.NewMachine("VIC20")
	test.ExpectedSuccess(t, out.Drives.SetUnitType(8, drive.Type1541II))
	out.Step(250000)

	fn := snapshotMachine(t, out)

	in := hardware.NewMachine("VIC20")
	test.ExpectedSuccess(t, in.Drives.SetUnitType(8, drive.Type1541II))
	test.ExpectedSuccess(t, restoreMachine(t, in, fn))

	test.Equate(t, uint64(in.Clk), uint64(out.Clk))
	test.Equate(t, in.VIC.RasterCycle, out.VIC.RasterCycle)
	test.Equate(t, in.VIC.RasterLine, out.VIC.RasterLine)

	u, err := in.Drives.Unit(8)
	test.ExpectedSuccess(t, err)
	test.Equate(t, uint64(u.Clk), 250000)
	test.ExpectedSuccess(t, u.Type == drive.Type1541II)
}

func TestMachineNameMismatch(t *testing.T) {
	out := hardware.NewMachine("VIC20")
	out.Step(1000)
	fn := snapshotMachine(t, out)

	in := hardware.NewMachine("C64")
	err := restoreMachine(t, in, fn)
	test.ExpectedSuccess(t, curated.Is(err, hardware.ErrWrongMachine))

	// nothing restored
	test.Equate(t, uint64(in.Clk), 0)
}
