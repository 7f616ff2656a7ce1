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

// Package hardware assembles the emulated machine: the clock, the VIC-I
// and the disk units on the peripheral bus. The CPU and the pixel engine
// live elsewhere; what this package owns is the state that has to move
// together when a snapshot is taken or restored.
package hardware

import (
	"github.com/viceteam/truedrive/hardware/clocks"
	"github.com/viceteam/truedrive/hardware/drive"
	"github.com/viceteam/truedrive/hardware/vic"
)

// Machine is the top-level assembly of the emulated hardware.
type Machine struct {
	// the machine name is recorded in snapshot containers. restoring a
	// snapshot taken on a different machine is refused
	Name string

	// the main clock. every subsystem's cycle counter advances in step
	// with this
	Clk clocks.Clock

	VIC    *vic.VIC
	Drives *drive.Manager
}

// NewMachine is the preferred method of initialisation for the Machine
// type. The machine is PAL; the name appears in snapshot containers.
func NewMachine(name string) *Machine {
	return &Machine{
		Name:   name,
		VIC:    vic.NewVIC(clocks.PALCyclesPerLine, clocks.PALScreenLines),
		Drives: drive.NewManager(),
	}
}

// Step advances the machine by the given number of cycles. The disk units
// and the VIC beam position advance in step.
func (m *Machine) Step(cycles int) {
	m.Clk += clocks.Clock(cycles)
	m.Drives.Step(cycles)
	m.VIC.Sync(m.Clk)
}
