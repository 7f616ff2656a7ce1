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

package snapshot

import (
	"io"

	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/hardware/clocks"
)

// Module is a named, versioned record being written into a snapshot
// container. Fields are appended with the primitive write functions or, for
// preference, with WriteSchema().
//
// The size field of the module header is only valid once Close() has been
// called. A module abandoned after a write failure should still be closed so
// that the container remains walkable for diagnostic purposes.
type Module struct {
	w    io.WriteSeeker
	name string

	// seek offset of the module header. the size field is patched on Close()
	start int64
}

func newModule(w io.WriteSeeker, name string, major uint8, minor uint8) (*Module, error) {
	start, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}

	n, err := padName(name)
	if err != nil {
		return nil, err
	}

	hdr := make([]byte, 0, nameLen+2+4)
	hdr = append(hdr, n...)
	hdr = append(hdr, major, minor)
	hdr = append(hdr, 0, 0, 0, 0)

	if _, err := w.Write(hdr); err != nil {
		return nil, curated.Errorf("snapshot: module %s: %v", name, err)
	}

	return &Module{w: w, name: name, start: start}, nil
}

// Close patches the size field in the module header. The module must not be
// written to after Close() has been called.
func (m *Module) Close() error {
	end, err := m.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return curated.Errorf("snapshot: module %s: %v", m.name, err)
	}

	size := make([]byte, 4)
	putLeUint32(size, uint32(end-m.start))

	if _, err := m.w.Seek(m.start+nameLen+2, io.SeekStart); err != nil {
		return curated.Errorf("snapshot: module %s: %v", m.name, err)
	}
	if _, err := m.w.Write(size); err != nil {
		return curated.Errorf("snapshot: module %s: %v", m.name, err)
	}
	if _, err := m.w.Seek(end, io.SeekStart); err != nil {
		return curated.Errorf("snapshot: module %s: %v", m.name, err)
	}

	return nil
}

func (m *Module) write(b []byte) error {
	if _, err := m.w.Write(b); err != nil {
		return curated.Errorf("snapshot: module %s: %v", m.name, err)
	}
	return nil
}

// WriteByte appends a single byte field.
func (m *Module) WriteByte(v byte) error {
	return m.write([]byte{v})
}

// WriteWord appends a 16bit field.
func (m *Module) WriteWord(v uint16) error {
	return m.write([]byte{byte(v), byte(v >> 8)})
}

// WriteDWord appends a 32bit field.
func (m *Module) WriteDWord(v uint32) error {
	b := make([]byte, 4)
	putLeUint32(b, v)
	return m.write(b)
}

// WriteClock appends a clock-width (64bit) field.
func (m *Module) WriteClock(v clocks.Clock) error {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return m.write(b)
}

// WriteBlock appends a bulk byte-array field. The length of the block is
// part of the module schema and is not stored in the file.
func (m *Module) WriteBlock(b []byte) error {
	return m.write(b)
}

// ModuleReader is a named module found in a snapshot container. The Major
// and Minor fields are the version stamped by the writer of the file.
type ModuleReader struct {
	r    io.ReadSeeker
	name string

	Major uint8
	Minor uint8

	// seek offset of the byte after the last field of the module
	end int64
}

// RequireVersion fails if the version found in the file is older than the
// version required by the caller, or carries a newer major number. Minor
// bumps are additive so a newer minor is readable; a newer major signals a
// change to the order or width of existing fields, and reading such a
// module would assign values to the wrong fields.
func (m *ModuleReader) RequireVersion(major uint8, minor uint8) error {
	if m.Major > major {
		return curated.Errorf(ErrVersionTooNew, m.name, m.Major, m.Minor, major, minor)
	}
	if m.Major < major || m.Minor < minor {
		return curated.Errorf(ErrVersionTooOld, m.name, m.Major, m.Minor, major, minor)
	}
	return nil
}

func (m *ModuleReader) read(b []byte) error {
	if _, err := io.ReadFull(m.r, b); err != nil {
		return curated.Errorf("snapshot: module %s: %v", m.name, err)
	}
	return nil
}

// ReadByte reads the next field as a single byte.
func (m *ModuleReader) ReadByte() (byte, error) {
	b := make([]byte, 1)
	if err := m.read(b); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadWord reads the next field as a 16bit value.
func (m *ModuleReader) ReadWord() (uint16, error) {
	b := make([]byte, 2)
	if err := m.read(b); err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// ReadDWord reads the next field as a 32bit value.
func (m *ModuleReader) ReadDWord() (uint32, error) {
	b := make([]byte, 4)
	if err := m.read(b); err != nil {
		return 0, err
	}
	return leUint32(b), nil
}

// ReadClock reads the next field as a clock-width (64bit) value.
func (m *ModuleReader) ReadClock() (clocks.Clock, error) {
	b := make([]byte, 8)
	if err := m.read(b); err != nil {
		return 0, err
	}
	var v clocks.Clock
	for i := 0; i < 8; i++ {
		v |= clocks.Clock(b[i]) << (8 * i)
	}
	return v, nil
}

// ReadBlock fills b with the next len(b) bytes of the module.
func (m *ModuleReader) ReadBlock(b []byte) error {
	return m.read(b)
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLeUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
