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
	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/hardware/clocks"
)

// field widths on the wire.
type kind int

const (
	kindByte kind = iota
	kindWord
	kindDWord
	kindClock
	kindBlock
)

// Entry is one field in a module schema. It pairs a field's width on the
// wire with a pointer to the field in memory. The same Entry is used for
// writing and for reading, which is what guarantees the two directions can
// never disagree about field order or width.
type Entry struct {
	label string
	kind  kind
	ptr   interface{}
}

// Byte schedules a uint8 field for a single byte on the wire.
func Byte(label string, v *uint8) Entry {
	return Entry{label: label, kind: kindByte, ptr: v}
}

// ByteInt schedules an int field for a single byte on the wire.
func ByteInt(label string, v *int) Entry {
	return Entry{label: label, kind: kindByte, ptr: v}
}

// ByteBool schedules a bool field for a single byte on the wire.
func ByteBool(label string, v *bool) Entry {
	return Entry{label: label, kind: kindByte, ptr: v}
}

// Word schedules a uint16 field for two bytes on the wire.
func Word(label string, v *uint16) Entry {
	return Entry{label: label, kind: kindWord, ptr: v}
}

// WordInt schedules an int field for two bytes on the wire.
func WordInt(label string, v *int) Entry {
	return Entry{label: label, kind: kindWord, ptr: v}
}

// DWord schedules a uint32 field for four bytes on the wire.
func DWord(label string, v *uint32) Entry {
	return Entry{label: label, kind: kindDWord, ptr: v}
}

// DWordInt schedules an int field for four bytes on the wire.
func DWordInt(label string, v *int) Entry {
	return Entry{label: label, kind: kindDWord, ptr: v}
}

// DWordBool schedules a bool field for four bytes on the wire. Used for
// fields that were historically stored as full integers.
func DWordBool(label string, v *bool) Entry {
	return Entry{label: label, kind: kindDWord, ptr: v}
}

// Clock schedules a clock field for eight bytes on the wire.
func Clock(label string, v *clocks.Clock) Entry {
	return Entry{label: label, kind: kindClock, ptr: v}
}

// Block schedules a fixed-size byte array. The slice length is part of the
// schema; it is not stored in the file.
func Block(label string, b []byte) Entry {
	return Entry{label: label, kind: kindBlock, ptr: b}
}

// WriteSchema appends every field of the schema to the module, in order.
// The first field that fails to write aborts the walk.
func (m *Module) WriteSchema(schema []Entry) error {
	for _, e := range schema {
		var err error

		switch e.kind {
		case kindByte:
			switch v := e.ptr.(type) {
			case *uint8:
				err = m.WriteByte(*v)
			case *int:
				err = m.WriteByte(uint8(*v))
			case *bool:
				err = m.WriteByte(boolToByte(*v))
			default:
				err = curated.Errorf("unsupported type for byte field (%T)", v)
			}

		case kindWord:
			switch v := e.ptr.(type) {
			case *uint16:
				err = m.WriteWord(*v)
			case *int:
				err = m.WriteWord(uint16(*v))
			default:
				err = curated.Errorf("unsupported type for word field (%T)", v)
			}

		case kindDWord:
			switch v := e.ptr.(type) {
			case *uint32:
				err = m.WriteDWord(*v)
			case *int:
				err = m.WriteDWord(uint32(*v))
			case *bool:
				err = m.WriteDWord(uint32(boolToByte(*v)))
			default:
				err = curated.Errorf("unsupported type for dword field (%T)", v)
			}

		case kindClock:
			err = m.WriteClock(*e.ptr.(*clocks.Clock))

		case kindBlock:
			err = m.WriteBlock(e.ptr.([]byte))
		}

		if err != nil {
			return curated.Errorf("snapshot: module %s: field %s: %v", m.name, e.label, err)
		}
	}

	return nil
}

// ReadSchema assigns every field of the schema from the module, in order.
// The schema must be the same schema the module was written with.
func (m *ModuleReader) ReadSchema(schema []Entry) error {
	for _, e := range schema {
		var err error

		switch e.kind {
		case kindByte:
			var b uint8
			b, err = m.ReadByte()
			if err == nil {
				switch v := e.ptr.(type) {
				case *uint8:
					*v = b
				case *int:
					*v = int(b)
				case *bool:
					*v = b != 0
				default:
					err = curated.Errorf("unsupported type for byte field (%T)", v)
				}
			}

		case kindWord:
			var w uint16
			w, err = m.ReadWord()
			if err == nil {
				switch v := e.ptr.(type) {
				case *uint16:
					*v = w
				case *int:
					*v = int(w)
				default:
					err = curated.Errorf("unsupported type for word field (%T)", v)
				}
			}

		case kindDWord:
			var d uint32
			d, err = m.ReadDWord()
			if err == nil {
				switch v := e.ptr.(type) {
				case *uint32:
					*v = d
				case *int:
					*v = int(int32(d))
				case *bool:
					*v = d != 0
				default:
					err = curated.Errorf("unsupported type for dword field (%T)", v)
				}
			}

		case kindClock:
			var c clocks.Clock
			c, err = m.ReadClock()
			if err == nil {
				*e.ptr.(*clocks.Clock) = c
			}

		case kindBlock:
			err = m.ReadBlock(e.ptr.([]byte))
		}

		if err != nil {
			return curated.Errorf("snapshot: module %s: field %s: %v", m.name, e.label, err)
		}
	}

	return nil
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
