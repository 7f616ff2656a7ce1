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
	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/hardware/clocks"
	"github.com/viceteam/truedrive/hardware/disk"
	"github.com/viceteam/truedrive/logger"
	"github.com/viceteam/truedrive/notifications"
)

// error patterns for attach/detach operations.
const (
	ErrInvalidUnit         = "drive: invalid unit number (%d)"
	ErrInvalidDrive        = "drive: unit %d: invalid drive number (%d)"
	ErrIncompatibleFormat  = "driveimage: %v image is incompatible with the %v at unit %d"
	ErrUnsupportedAtAttach = "driveimage: attach: no support for %v images"
	ErrUnsupportedAtDetach = "driveimage: detach: no support for %v images"
	ErrAlreadyAttached     = "driveimage: unit %d drive %d: an image is already attached"
	ErrReadFailed          = "driveimage: %v"
)

// imageCompatibility is the relation between image formats and the drive
// models that can physically read them. A format absent from the table
// cannot be attached to any mechanical drive.
//
// The 2031, 2040, 3040 and 4040 are only read-compatible with the D64 and
// D67 single-density formats but validation does not distinguish the case.
var imageCompatibility = map[disk.Format][]Type{
	disk.FormatD64: singleDensityDrives,
	disk.FormatD67: singleDensityDrives,
	disk.FormatG64: singleDensityDrives,
	disk.FormatP64: singleDensityDrives,
	disk.FormatX64: singleDensityDrives,
	disk.FormatD71: {Type1571, Type1571CR},
	disk.FormatG71: {Type1571, Type1571CR},
	disk.FormatD81: {Type1581, Type2000, Type4000},
	disk.FormatD80: {Type1001, Type8050, Type8250},
	disk.FormatD82: {Type1001, Type8050, Type8250},
	disk.FormatD90: {Type9000},
	disk.FormatD1M: {Type2000, Type4000},
	disk.FormatD2M: {Type2000, Type4000},
	disk.FormatD4M: {Type2000, Type4000},
	disk.FormatDHD: {TypeCMDHD},
}

// every drive model with a 5.25" single-density mechanism.
var singleDensityDrives = []Type{
	Type1540, Type1541, Type1541II, Type1551, Type1570,
	Type1571, Type1571CR, Type2031, Type2040, Type3040, Type4040,
}

// ImageTypeToDriveType returns the drive model that best represents an
// image format. Used when a drive is to be configured automatically for an
// image the user has selected. Returns TypeNone for formats no mechanical
// drive can serve.
func ImageTypeToDriveType(format disk.Format) Type {
	switch format {
	case disk.FormatD64, disk.FormatG64, disk.FormatP64, disk.FormatX64:
		return Type1541II
	case disk.FormatD71, disk.FormatG71:
		return Type1571
	case disk.FormatD81:
		return Type1581
	case disk.FormatD1M, disk.FormatD2M:
		return Type2000
	case disk.FormatD4M:
		return Type4000
	case disk.FormatD67:
		return Type2040
	case disk.FormatD80:
		return Type8050
	case disk.FormatD82:
		return Type8250
	case disk.FormatD90:
		return Type9000
	case disk.FormatDHD:
		return TypeCMDHD
	}
	return TypeNone
}

// Manager is the registry of disk units and the entry point for attaching
// and detaching disk images.
type Manager struct {
	units [NumDiskUnits]*Unit

	// raised on attach/detach/seek. may be nil
	notify notifications.Notify
}

// NewManager is the preferred method of initialisation for the Manager
// type. All units start with no drive model configured.
func NewManager() *Manager {
	m := &Manager{}
	for i := range m.units {
		m.units[i] = newUnit(FirstUnit + i)
	}
	return m
}

// SetNotify registers an observer for drive events.
func (m *Manager) SetNotify(notify notifications.Notify) {
	m.notify = notify
}

// Unit returns the unit at the given peripheral bus address.
func (m *Manager) Unit(unit int) (*Unit, error) {
	if unit < FirstUnit || unit >= FirstUnit+NumDiskUnits {
		return nil, curated.Errorf(ErrInvalidUnit, unit)
	}
	return m.units[unit-FirstUnit], nil
}

// SetUnitType configures the drive model at a unit. The model is fixed for
// as long as any image is attached; reconfiguring a unit with an attached
// image is a caller error, guarded here.
func (m *Manager) SetUnitType(unit int, t Type) error {
	u, err := m.Unit(unit)
	if err != nil {
		return err
	}
	for _, d := range u.Drives {
		if d.image != nil {
			return curated.Errorf(ErrAlreadyAttached, unit, d.drv)
		}
	}
	u.Type = t
	return nil
}

// Step advances the cycle counter of every unit. Called in step with the
// machine clock.
func (m *Manager) Step(cycles int) {
	for _, u := range m.units {
		u.Step(cycles)
	}
}

// CheckImageFormat validates that an image format is physically compatible
// with the drive model configured at a unit.
func (m *Manager) CheckImageFormat(format disk.Format, unit int) error {
	u, err := m.Unit(unit)
	if err != nil {
		return err
	}

	for _, t := range imageCompatibility[format] {
		if u.Type == t {
			return nil
		}
	}

	return curated.Errorf(ErrIncompatibleFormat, format, u.Type, unit)
}

// Attach connects a disk image to a drive. On success the drive owns the
// image's track data until Detach() is called; the image descriptor itself
// remains owned by the caller.
//
// On any failure the drive is left exactly as it was before the call.
func (m *Manager) Attach(img *disk.Image, unit int, drv int) error {
	u, d, err := m.drive(unit, drv)
	if err != nil {
		return err
	}

	if d.image != nil {
		return curated.Errorf(ErrAlreadyAttached, unit, drv)
	}

	if err := m.CheckImageFormat(img.Format, unit); err != nil {
		return err
	}

	// the compatibility table restricts by drive model; this checks that
	// the attach path knows how to wire the format into the track buffers
	if !img.Format.Attachable() {
		return curated.Errorf(ErrUnsupportedAtAttach, img.Format)
	}

	// all validation passed. stamp the lifecycle clocks, keeping the old
	// values in case the image read fails
	prevAttachClk := d.attachClk
	prevAttachDetachClk := d.attachDetachClk
	prevExtendPolicy := d.extendPolicy

	d.readOnly = img.ReadOnly
	d.attachClk = u.Clk
	if d.detachClk > clocks.Clock(0) {
		d.attachDetachClk = u.Clk
	}
	d.extendPolicy = ExtendAsk

	logger.Logf("driveimage", "unit %d drive %d: attaching %v image (%s)", unit, drv, img.Format, img.Name)

	// the image borrows the drive's track buffers for the duration of the
	// attachment. decode operations write into drive-owned memory
	d.image = img
	img.GCR = d.gcr
	img.P64 = d.p64

	if err := img.Medium.ReadImage(img); err != nil {
		img.GCR = nil
		img.P64 = nil
		d.image = nil
		d.readOnly = false
		d.attachClk = prevAttachClk
		d.attachDetachClk = prevAttachDetachClk
		d.extendPolicy = prevExtendPolicy
		return curated.Errorf(ErrReadFailed, err)
	}

	if img.Format.Flux() {
		d.state = p64Loaded
		d.p64Dirty = false
	} else {
		d.state = gcrLoaded
	}

	// re-sync the head with the freshly loaded track buffers
	d.setHalfTrack(d.currentHalfTrack, d.side)

	if m.notify != nil {
		_ = m.notify.Notify(notifications.NotifyDiskAttached, unit, drv)
	}

	return nil
}

// Detach disconnects a disk image from a drive. Dirty data is flushed back
// to the image on a best-effort basis: a failed write-back is logged and
// teardown continues. The drive's track buffers are always released and the
// borrowed references in the image descriptor always invalidated.
func (m *Manager) Detach(img *disk.Image, unit int, drv int) error {
	u, d, err := m.drive(unit, drv)
	if err != nil {
		return err
	}

	if d.image != nil {
		if !img.Format.Attachable() {
			return curated.Errorf(ErrUnsupportedAtDetach, img.Format)
		}
		logger.Logf("driveimage", "unit %d drive %d: detaching %v image (%s)", unit, drv, img.Format, img.Name)
	}

	if d.P64Dirty() {
		d.p64Dirty = false
		if err := d.image.Medium.WriteP64Image(d.image); err != nil {
			logger.Logf("driveimage", "cannot write disk image back: %v", err)
		}
	} else {
		d.gcrDataWriteback()
	}

	d.gcr.FreeAll()
	d.p64.FreeAll()

	d.detachClk = u.Clk
	d.state = unattached
	d.readOnly = false

	// invalidate the borrowed buffer references in the same operation that
	// released the buffers
	if d.image != nil {
		d.image.GCR = nil
		d.image.P64 = nil
		d.image = nil
	}

	d.setHalfTrack(d.currentHalfTrack, d.side)

	if m.notify != nil {
		_ = m.notify.Notify(notifications.NotifyDiskDetached, unit, drv)
	}

	return nil
}

// Seek moves the head of a drive to a new half-track position. The
// position is clamped to the mechanical limits of the drive; a seek that
// does not move the head raises no notification.
func (m *Manager) Seek(unit int, drv int, halfTrack int, side int) error {
	_, d, err := m.drive(unit, drv)
	if err != nil {
		return err
	}

	prevHalfTrack := d.currentHalfTrack
	prevSide := d.side

	d.setHalfTrack(halfTrack, side)

	if m.notify != nil && (d.currentHalfTrack != prevHalfTrack || d.side != prevSide) {
		_ = m.notify.Notify(notifications.NotifyDriveSeek, unit, drv)
	}

	return nil
}

// Drive returns the drive mechanism at the given unit and drive number.
func (m *Manager) Drive(unit int, drv int) (*Drive, error) {
	_, d, err := m.drive(unit, drv)
	return d, err
}

func (m *Manager) drive(unit int, drv int) (*Unit, *Drive, error) {
	u, err := m.Unit(unit)
	if err != nil {
		return nil, nil, err
	}
	if drv < 0 || drv >= DrivesPerUnit {
		return nil, nil, curated.Errorf(ErrInvalidDrive, unit, drv)
	}
	return u, u.Drives[drv], nil
}
