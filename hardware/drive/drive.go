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
	"github.com/viceteam/truedrive/hardware/disk"
	"github.com/viceteam/truedrive/logger"
)

// ExtendPolicy says what the drive should do when a write reaches beyond
// the last track of the attached image.
type ExtendPolicy int

// List of valid ExtendPolicy values.
const (
	ExtendNever ExtendPolicy = iota
	ExtendAsk
	ExtendAccess
)

// attachment is the tagged state of a drive's image attachment. Exactly one
// buffer representation is live while an image is attached; neither is when
// the drive is empty. Illegal flag combinations cannot be expressed.
type attachment int

const (
	unattached attachment = iota
	gcrLoaded
	p64Loaded
)

// the half-track the head parks over when there is nothing better to do.
// half-track 36 is logical track 18, the directory track.
const parkedHalfTrack = 36

// Drive is one physical drive mechanism within a disk unit.
type Drive struct {
	unit *Unit
	drv  int

	// the attached image. borrowed from the caller of Attach(); never owned
	image *disk.Image

	readOnly bool

	// timestamps of the attachment lifecycle. attachDetachClk is only
	// stamped when an attach follows an earlier detach, which is what the
	// drive ROM's disk-change detection watches for
	attachClk       clocks.Clock
	detachClk       clocks.Clock
	attachDetachClk clocks.Clock

	// track buffers owned by the drive. wired into the image descriptor for
	// the duration of an attachment
	gcr *disk.GCR
	p64 *disk.P64

	state    attachment
	p64Dirty bool

	extendPolicy ExtendPolicy

	currentHalfTrack int
	side             int
}

func newDrive(unit *Unit, drv int) *Drive {
	return &Drive{
		unit:             unit,
		drv:              drv,
		gcr:              disk.NewGCR(),
		p64:              disk.NewP64(),
		currentHalfTrack: parkedHalfTrack,
	}
}

// Image returns the currently attached image, or nil when the drive is
// empty.
func (d *Drive) Image() *disk.Image {
	return d.image
}

// GCRLoaded returns true if the attached image is held in the GCR track
// buffers.
func (d *Drive) GCRLoaded() bool {
	return d.state == gcrLoaded
}

// P64Loaded returns true if the attached image is held as flux data.
func (d *Drive) P64Loaded() bool {
	return d.state == p64Loaded
}

// P64Dirty returns true if the flux data has been modified since the image
// was attached.
func (d *Drive) P64Dirty() bool {
	return d.state == p64Loaded && d.p64Dirty
}

// SetP64Dirty marks the flux data as modified. Meaningless unless a P64
// image is loaded.
func (d *Drive) SetP64Dirty() {
	if d.state == p64Loaded {
		d.p64Dirty = true
	}
}

// ComplicatedImageLoaded returns true if the attached image is one of the
// formats that record the raw bitstream or flux of every track. The value
// is derived from the image format; it is not stored.
func (d *Drive) ComplicatedImageLoaded() bool {
	return d.image != nil && d.image.Format.Complicated()
}

// ReadOnly returns true if the attached image cannot be written to. Always
// false when the drive is empty.
func (d *Drive) ReadOnly() bool {
	return d.readOnly
}

// GCR returns the drive's track buffer set.
func (d *Drive) GCR() *disk.GCR {
	return d.gcr
}

// P64 returns the drive's flux image handle.
func (d *Drive) P64() *disk.P64 {
	return d.p64
}

// AttachClk returns the clock value at which the current image was
// attached.
func (d *Drive) AttachClk() clocks.Clock {
	return d.attachClk
}

// DetachClk returns the clock value at which the previous image was
// detached.
func (d *Drive) DetachClk() clocks.Clock {
	return d.detachClk
}

// AttachDetachClk returns the clock value of the most recent attach that
// followed an earlier detach. Zero until such an attach has happened.
func (d *Drive) AttachDetachClk() clocks.Clock {
	return d.attachDetachClk
}

// CurrentHalfTrack returns the half-track the head is positioned over.
func (d *Drive) CurrentHalfTrack() int {
	return d.currentHalfTrack
}

// MarkGCRDirty records that the drive has modified the GCR data of a
// half-track. The track will be flushed back to the image on detach.
func (d *Drive) MarkGCRDirty(track int) {
	if track >= 0 && track < disk.MaxGCRTracks {
		d.gcr.Dirty[track] = true
	}
}

// setHalfTrack re-synchronises the head with the track buffers. It is
// idempotent: calling it with the current position is the normal case after
// an attach or detach, when the buffer under the head has changed but the
// head has not moved.
func (d *Drive) setHalfTrack(halfTrack int, side int) {
	if halfTrack < 2 {
		halfTrack = 2
	}
	if halfTrack > disk.MaxGCRTracks {
		halfTrack = disk.MaxGCRTracks
	}
	d.currentHalfTrack = halfTrack
	d.side = side
}

// gcrDataWriteback flushes modified GCR tracks back to the image's
// canonical encoding. A failed flush is logged and the dirty flags cleared;
// the drive does not retry.
func (d *Drive) gcrDataWriteback() {
	if d.image == nil {
		return
	}

	dirty := false
	for i := range d.gcr.Dirty {
		if d.gcr.Dirty[i] {
			dirty = true
			break
		}
	}
	if !dirty {
		return
	}

	if err := d.image.Medium.WriteBack(d.image); err != nil {
		logger.Logf("driveimage", "cannot write disk image back: %v", err)
	}

	for i := range d.gcr.Dirty {
		d.gcr.Dirty[i] = false
	}
}
