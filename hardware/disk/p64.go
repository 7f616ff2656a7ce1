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

// P64 is the flux-level representation of a disk used by the P64 format.
// Rather than decoded bytes, each half-track is a list of the clock offsets
// at which a magnetic transition occurs.
//
// The type is owned by a drive in the same way as the GCR track set and is
// treated as opaque by everything other than the P64 codec.
type P64 struct {
	PulseStreams [MaxGCRTracks][]uint32
}

// NewP64 is the preferred method of initialisation for the P64 type.
func NewP64() *P64 {
	return &P64{}
}

// FreeAll releases the pulse stream of every half-track.
func (p *P64) FreeAll() {
	for i := range p.PulseStreams {
		p.PulseStreams[i] = nil
	}
}
