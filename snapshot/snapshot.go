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
)

// the magic string at the very start of every snapshot file. the trailing
// \032 stops naive text tools from printing the binary contents.
const magic = "TrueDrive Snapshot\032"

// version of the container format itself. not to be confused with the
// version carried by each module.
const (
	ContainerMajor = 2
	ContainerMinor = 0
)

// length of the fixed-width name fields in the container and module headers.
const nameLen = 16

// error patterns for snapshot operations.
const (
	ErrVersionTooOld  = "snapshot: module %s: version %d.%d is older than required version %d.%d"
	ErrVersionTooNew  = "snapshot: module %s: version %d.%d is newer than supported version %d.%d"
	ErrModuleNotFound = "snapshot: module %s: not found"
	ErrNotSnapshot    = "snapshot: %v: not a snapshot file"
	ErrInconsistent   = "snapshot: %s: %v"
)

// Writer creates a new snapshot container and appends modules to it.
type Writer struct {
	w io.WriteSeeker
}

// NewWriter writes a container header to w and returns a Writer with which
// modules can be appended. The machine name identifies the emulated machine
// the snapshot belongs to.
func NewWriter(w io.WriteSeeker, machine string) (*Writer, error) {
	if _, err := w.Write([]byte(magic)); err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}
	if _, err := w.Write([]byte{ContainerMajor, ContainerMinor}); err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}

	name, err := padName(machine)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(name); err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}

	return &Writer{w: w}, nil
}

// Create opens a new named module stamped with the given version. The
// returned Module must be closed before another module is created.
func (s *Writer) Create(name string, major uint8, minor uint8) (*Module, error) {
	return newModule(s.w, name, major, minor)
}

// Reader opens an existing snapshot container for reading.
type Reader struct {
	r       io.ReadSeeker
	machine string

	// seek offset of the first module header
	origin int64
}

// NewReader reads and validates the container header of r.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	b := make([]byte, len(magic)+2+nameLen)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}
	if string(b[:len(magic)]) != magic {
		return nil, curated.Errorf(ErrNotSnapshot, "bad magic")
	}

	s := &Reader{
		r:       r,
		machine: unpadName(b[len(magic)+2:]),
	}

	var err error
	s.origin, err = r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}

	return s, nil
}

// Machine returns the machine name stored in the container header.
func (s *Reader) Machine() string {
	return s.machine
}

// Open finds the named module in the container and positions the reader at
// its first field. Modules with other names are skipped over using the size
// recorded in their headers; the order of modules in the container does not
// matter.
func (s *Reader) Open(name string) (*ModuleReader, error) {
	if _, err := s.r.Seek(s.origin, io.SeekStart); err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}

	hdr := make([]byte, nameLen+2+4)
	for {
		start, err := s.r.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, curated.Errorf("snapshot: %v", err)
		}

		if _, err := io.ReadFull(s.r, hdr); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, curated.Errorf(ErrModuleNotFound, name)
			}
			return nil, curated.Errorf("snapshot: %v", err)
		}

		size := int64(leUint32(hdr[nameLen+2:]))

		// the recorded size includes the module header. anything smaller
		// means the file is corrupt and the walk cannot continue
		if size < int64(len(hdr)) {
			return nil, curated.Errorf(ErrNotSnapshot, "bad module size")
		}

		if unpadName(hdr[:nameLen]) == name {
			return &ModuleReader{
				r:     s.r,
				name:  name,
				Major: hdr[nameLen],
				Minor: hdr[nameLen+1],
				end:   start + size,
			}, nil
		}

		if _, err := s.r.Seek(start+size, io.SeekStart); err != nil {
			return nil, curated.Errorf("snapshot: %v", err)
		}
	}
}

// padName converts a name to the fixed-width form used in headers.
func padName(name string) ([]byte, error) {
	if len(name) >= nameLen {
		return nil, curated.Errorf("snapshot: name too long (%s)", name)
	}
	b := make([]byte, nameLen)
	copy(b, name)
	return b, nil
}

// unpadName is the inverse of padName.
func unpadName(b []byte) string {
	for i := 0; i < nameLen; i++ {
		if b[i] == 0 {
			return string(b[:i])
		}
	}
	return string(b[:nameLen])
}
