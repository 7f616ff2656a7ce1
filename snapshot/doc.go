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

// Package snapshot implements the versioned binary save-state format.
//
// A snapshot file is a container of named modules. Each module records the
// full register/timing state of one hardware subsystem as an ordered
// sequence of fixed-width fields. The field order is the wire format: there
// are no per-field tags in the file, so the write order and the read order
// must be identical. To make divergence impossible both directions walk the
// same declarative schema, a []Entry built with the Byte(), Word(), DWord(),
// Clock() and Block() constructors.
//
// Modules are stamped with a major.minor version when created. On read, the
// version found in the file is compared against the version the code
// requires. A module that is older than required is rejected outright; the
// field layout of an old module cannot be guessed at.
//
// All multi-byte fields are stored little-endian. A module header carries
// the module name (fixed 16 bytes), the version (2 bytes) and the total
// module size (4 bytes), which allows a reader to skip modules it does not
// recognise.
package snapshot
