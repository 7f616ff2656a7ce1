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

// MaxGCRTracks is the number of per-track buffers in a GCR set. The head of
// a 1571 can reach 70 tracks on each side, at half-track granularity.
const MaxGCRTracks = 140

// Track is the buffer for one half-track of GCR data. The Size field rather
// than len(Data) is authoritative: a track read from a G64 image can occupy
// less than the allocated buffer.
type Track struct {
	Data []byte
	Size int
}

// GCR is the set of per-track buffers owned by a drive. The buffers are
// populated when an image is attached and released when it is detached; a
// populated track never outlives the attachment it was read from.
type GCR struct {
	Tracks [MaxGCRTracks]Track

	// tracks modified by the drive since the image was attached. flushed
	// back to the image by the detach writeback
	Dirty [MaxGCRTracks]bool
}

// NewGCR is the preferred method of initialisation for the GCR type.
func NewGCR() *GCR {
	return &GCR{}
}

// FreeAll releases every track buffer and resets every size to zero.
func (g *GCR) FreeAll() {
	for i := range g.Tracks {
		if g.Tracks[i].Data != nil {
			g.Tracks[i].Data = nil
			g.Tracks[i].Size = 0
		}
		g.Dirty[i] = false
	}
}

// Allocated returns the number of tracks currently holding a buffer.
func (g *GCR) Allocated() int {
	n := 0
	for i := range g.Tracks {
		if g.Tracks[i].Data != nil {
			n++
		}
	}
	return n
}
