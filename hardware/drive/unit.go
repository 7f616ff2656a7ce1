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
	"github.com/viceteam/truedrive/hardware/clocks"
)

// NumDiskUnits is the number of peripheral bus addresses that can host a
// disk unit.
const NumDiskUnits = 4

// FirstUnit is the lowest peripheral bus address of a disk unit. Unit
// numbers run from FirstUnit to FirstUnit+NumDiskUnits-1.
const FirstUnit = 8

// DrivesPerUnit is the maximum number of physical drive mechanisms in one
// unit. Dual-drive units such as the 2040 and 8050 have two.
const DrivesPerUnit = 2

// Unit is one disk unit on the peripheral bus. The drive model is fixed at
// configuration time and is independent of any image attached to the unit's
// drives.
type Unit struct {
	// the peripheral bus address of the unit (FirstUnit..FirstUnit+NumDiskUnits-1)
	Number int

	// the configured drive model. TypeNone means no unit is present at this
	// bus address
	Type Type

	// the unit's cycle counter, advanced in step with the machine clock
	Clk clocks.Clock

	Drives [DrivesPerUnit]*Drive
}

func newUnit(number int) *Unit {
	u := &Unit{
		Number: number,
		Type:   TypeNone,
	}
	for i := range u.Drives {
		u.Drives[i] = newDrive(u, i)
	}
	return u
}

// Step advances the unit's cycle counter.
func (u *Unit) Step(cycles int) {
	u.Clk += clocks.Clock(cycles)
}
