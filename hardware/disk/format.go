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

package disk

// Format identifies the on-disk storage format of a disk image.
type Format int

// List of known disk image formats.
const (
	FormatNone Format = iota
	FormatD64
	FormatD67
	FormatD71
	FormatD80
	FormatD81
	FormatD82
	FormatD90
	FormatG64
	FormatG71
	FormatP64
	FormatX64
	FormatD1M
	FormatD2M
	FormatD4M
	FormatDHD
)

func (f Format) String() string {
	switch f {
	case FormatD64:
		return "D64"
	case FormatD67:
		return "D67"
	case FormatD71:
		return "D71"
	case FormatD80:
		return "D80"
	case FormatD81:
		return "D81"
	case FormatD82:
		return "D82"
	case FormatD90:
		return "D90"
	case FormatG64:
		return "G64"
	case FormatG71:
		return "G71"
	case FormatP64:
		return "P64"
	case FormatX64:
		return "X64"
	case FormatD1M:
		return "D1M"
	case FormatD2M:
		return "D2M"
	case FormatD4M:
		return "D4M"
	case FormatDHD:
		return "DHD"
	}
	return "unknown"
}

// Complicated returns true for formats that record more than the decoded
// sector payload. G64 and G71 store the raw GCR bitstream of every track;
// P64 stores the flux transitions themselves. The drive head emulation has
// more work to do with these formats.
func (f Format) Complicated() bool {
	return f == FormatP64 || f == FormatG64 || f == FormatG71
}

// Flux returns true for formats that store flux timing rather than decoded
// bytes. These formats use the P64 track buffers rather than the GCR track
// buffers.
func (f Format) Flux() bool {
	return f == FormatP64
}

// Attachable returns true for the formats the drive mechanism knows how to
// wire into its track buffers. Formats outside this set are served whole by
// the IEC bus emulation and never reach a mechanical drive.
func (f Format) Attachable() bool {
	switch f {
	case FormatD64, FormatD67, FormatD71, FormatG64, FormatG71, FormatP64, FormatX64:
		return true
	}
	return false
}
