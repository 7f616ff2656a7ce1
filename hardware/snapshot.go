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

package hardware

import (
	"io"

	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/hardware/drive"
	"github.com/viceteam/truedrive/snapshot"
)

// error pattern for a snapshot taken on a different machine.
const ErrWrongMachine = "hardware: snapshot is for machine %s, not %s"

const machineModuleName = "MACHINE"

const (
	machineSnapMajor = 1
	machineSnapMinor = 0
)

func (m *Machine) schema() []snapshot.Entry {
	return []snapshot.Entry{
		snapshot.Clock("clock", &m.Clk),
	}
}

// SnapshotWrite writes the full machine state as a snapshot container:
// the machine clock, the VIC-I and every disk unit.
func (m *Machine) SnapshotWrite(w io.WriteSeeker) error {
	s, err := snapshot.NewWriter(w, m.Name)
	if err != nil {
		return err
	}

	mod, err := s.Create(machineModuleName, machineSnapMajor, machineSnapMinor)
	if err != nil {
		return err
	}
	if err := mod.WriteSchema(m.schema()); err != nil {
		mod.Close()
		return err
	}
	if err := mod.Close(); err != nil {
		return err
	}

	if err := m.VIC.SnapshotWrite(s); err != nil {
		return err
	}

	for i := 0; i < drive.NumDiskUnits; i++ {
		u, _ := m.Drives.Unit(drive.FirstUnit + i)
		if err := u.SnapshotWrite(s); err != nil {
			return err
		}
	}

	return nil
}

// SnapshotRead restores the full machine state from a snapshot container.
// The machine clock is restored first; the VIC-I restore validates its
// beam position against it.
func (m *Machine) SnapshotRead(r io.ReadSeeker) error {
	s, err := snapshot.NewReader(r)
	if err != nil {
		return err
	}

	if s.Machine() != m.Name {
		return curated.Errorf(ErrWrongMachine, s.Machine(), m.Name)
	}

	mod, err := s.Open(machineModuleName)
	if err != nil {
		return err
	}
	if err := mod.RequireVersion(machineSnapMajor, machineSnapMinor); err != nil {
		return err
	}
	if err := mod.ReadSchema(m.schema()); err != nil {
		return err
	}

	if err := m.VIC.SnapshotRead(s, m.Clk); err != nil {
		return err
	}

	for i := 0; i < drive.NumDiskUnits; i++ {
		u, _ := m.Drives.Unit(drive.FirstUnit + i)
		if err := u.SnapshotRead(s); err != nil {
			return err
		}
	}

	return nil
}
