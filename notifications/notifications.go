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

// Package notifications allows communication from the drive emulation to
// whatever is presenting the emulation to the user. The drive sound
// emulation listens for these events; a GUI can use them to update disk
// status indicators.
//
// Delivery is synchronous and best-effort. A notification handler that
// returns an error does not affect the operation that raised the event.
package notifications

// Notice describes events raised by the drive emulation.
type Notice string

// List of defined notifications.
const (
	// a disk image has been attached to a drive
	NotifyDiskAttached Notice = "NotifyDiskAttached"

	// a disk image has been detached from a drive
	NotifyDiskDetached Notice = "NotifyDiskDetached"

	// the drive head has stepped to another half-track
	NotifyDriveSeek Notice = "NotifyDriveSeek"
)

// Notify is implemented by observers of drive events. The unit argument is
// the peripheral bus address; drive selects the mechanism within the unit.
type Notify interface {
	Notify(notice Notice, unit int, drive int) error
}
