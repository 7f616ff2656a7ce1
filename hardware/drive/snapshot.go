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

package drive

import (
	"fmt"

	"github.com/viceteam/truedrive/snapshot"
)

// attached images are not part of a snapshot. what is saved is the
// lifecycle state of each unit and mechanism: the clocks and the head
// position. restoring a snapshot therefore never re-attaches an image; the
// caller is expected to attach the same image before restoring.
const (
	snapMajor = 1
	snapMinor = 1
)

func (u *Unit) snapshotName() string {
	return fmt.Sprintf("DISKUNIT%d", u.Number)
}

func (d *Drive) snapshotName() string {
	return fmt.Sprintf("DRIVE%d:%d", d.unit.Number, d.drv)
}

func (u *Unit) schema() []snapshot.Entry {
	return []snapshot.Entry{
		snapshot.Clock("clock", &u.Clk),
		snapshot.DWordInt("drive model", (*int)(&u.Type)),
	}
}

func (d *Drive) schema() []snapshot.Entry {
	return []snapshot.Entry{
		snapshot.Clock("attach clock", &d.attachClk),
		snapshot.Clock("detach clock", &d.detachClk),
		snapshot.Clock("attach-detach clock", &d.attachDetachClk),
		snapshot.DWordInt("current half-track", &d.currentHalfTrack),
		snapshot.ByteInt("side", &d.side),
		snapshot.ByteBool("read only", &d.readOnly),
		snapshot.ByteInt("extend policy", (*int)(&d.extendPolicy)),
	}
}

// SnapshotWrite adds a module for the unit and one for each of its drive
// mechanisms to a snapshot container.
func (u *Unit) SnapshotWrite(s *snapshot.Writer) error {
	mod, err := s.Create(u.snapshotName(), snapMajor, snapMinor)
	if err != nil {
		return err
	}
	if err := mod.WriteSchema(u.schema()); err != nil {
		mod.Close()
		return err
	}
	if err := mod.Close(); err != nil {
		return err
	}

	for _, d := range u.Drives {
		mod, err := s.Create(d.snapshotName(), snapMajor, snapMinor)
		if err != nil {
			return err
		}
		if err := mod.WriteSchema(d.schema()); err != nil {
			mod.Close()
			return err
		}
		if err := mod.Close(); err != nil {
			return err
		}
	}

	return nil
}

// SnapshotRead restores the unit and its drive mechanisms from a snapshot
// container.
func (u *Unit) SnapshotRead(s *snapshot.Reader) error {
	mod, err := s.Open(u.snapshotName())
	if err != nil {
		return err
	}
	if err := mod.RequireVersion(snapMajor, snapMinor); err != nil {
		return err
	}
	if err := mod.ReadSchema(u.schema()); err != nil {
		return err
	}

	for _, d := range u.Drives {
		mod, err := s.Open(d.snapshotName())
		if err != nil {
			return err
		}
		if err := mod.RequireVersion(snapMajor, snapMinor); err != nil {
			return err
		}
		if err := mod.ReadSchema(d.schema()); err != nil {
			return err
		}
	}

	return nil
}
