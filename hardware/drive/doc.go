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

// Package drive emulates the disk units on the peripheral bus and the
// attachment of disk images to their drive mechanisms.
//
// A Manager owns NumDiskUnits units, addressed FirstUnit upwards. Each unit
// is configured with a drive model (SetUnitType) and hosts up to
// DrivesPerUnit mechanisms. Attach() validates that an image's format is
// physically compatible with the unit's drive model before loading the
// image's track data into buffers owned by the drive. Detach() flushes any
// modified track data back to the image and releases every buffer.
//
// Attach is transactional: if anything fails, including the read of the
// underlying image file, the drive is left exactly as it was. Detach always
// completes: a failure to write dirty data back to the image is logged and
// teardown continues, on the grounds that a write that has already failed
// once is not going to succeed on retry from here.
//
// All operations are synchronous and must only be called between emulation
// steps. The package does no locking of its own; a UI thread wanting to
// attach an image while the emulation is running must pause the emulation
// first.
package drive
