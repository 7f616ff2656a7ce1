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

// Package disk describes a parsed disk image as handed to the drive
// emulation. The file-format parsers that produce an Image, and the Medium
// implementations that perform real file I/O, live outside this project's
// core; the drive emulation only ever sees the descriptor defined here.
package disk

// Medium performs the real I/O for an image. Implementations sit over a
// file on the host filesystem, or over an in-memory buffer in tests.
type Medium interface {
	// ReadImage populates the track buffers wired into the image
	ReadImage(img *Image) error

	// WriteBack flushes modified GCR tracks to the underlying storage
	WriteBack(img *Image) error

	// WriteP64Image flushes the flux representation to the underlying
	// storage
	WriteP64Image(img *Image) error
}

// Image is a parsed, in-memory description of a storage medium. It is
// created by a file-format parser and passed by reference to the drive
// emulation's Attach() function. The caller retains ownership and releases
// the Image after Detach() returns.
type Image struct {
	Format   Format
	ReadOnly bool

	// the name of the underlying file. only used for logging
	Name string

	Medium Medium

	// track buffers borrowed from the attached drive. the drive wires these
	// in during Attach() and clears them again during Detach(), in the same
	// operation that releases the buffers. they must not be retained or
	// accessed when the image is not attached
	GCR *GCR
	P64 *P64
}
