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

package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/hardware/clocks"
	"github.com/viceteam/truedrive/snapshot"
	"github.com/viceteam/truedrive/test"
)

// the state of an imaginary subsystem, with a field of every width.
type testState struct {
	a uint8
	b uint16
	c uint32
	d clocks.Clock
	e int
	f bool
	g []byte
}

func (st *testState) schema() []snapshot.Entry {
	return []snapshot.Entry{
		snapshot.Byte("a", &st.a),
		snapshot.Word("b", &st.b),
		snapshot.DWord("c", &st.c),
		snapshot.Clock("d", &st.d),
		snapshot.DWordInt("e", &st.e),
		snapshot.ByteBool("f", &st.f),
		snapshot.Block("g", st.g),
	}
}

func createSnapshot(t *testing.T, write func(*snapshot.Writer)) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "test.snap")
	f, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, err := snapshot.NewWriter(f, "TESTMACHINE")
	test.ExpectedSuccess(t, err)
	write(s)

	return fn
}

func openSnapshot(t *testing.T, fn string) (*snapshot.Reader, *os.File) {
	t.Helper()

	f, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}

	s, err := snapshot.NewReader(f)
	test.ExpectedSuccess(t, err)

	return s, f
}

func TestRoundTrip(t *testing.T) {
	out := testState{
		a: 0xa5,
		b: 0x1234,
		c: 0xdeadbeef,
		d: clocks.Clock(0x123456789abcdef0),
		e: -12345,
		f: true,
		g: []byte{0x01, 0x02, 0x03, 0x04},
	}

	fn := createSnapshot(t, func(s *snapshot.Writer) {
		mod, err := s.Create("TEST", 1, 0)
		test.ExpectedSuccess(t, err)
		test.ExpectedSuccess(t, mod.WriteSchema(out.schema()))
		test.ExpectedSuccess(t, mod.Close())
	})

	s, f := openSnapshot(t, fn)
	defer f.Close()

	test.Equate(t, s.Machine(), "TESTMACHINE")

	in := testState{g: make([]byte, 4)}
	mod, err := s.Open("TEST")
	test.ExpectedSuccess(t, err)
	test.Equate(t, mod.Major, 1)
	test.Equate(t, mod.Minor, 0)
	test.ExpectedSuccess(t, mod.RequireVersion(1, 0))
	test.ExpectedSuccess(t, mod.ReadSchema(in.schema()))

	test.Equate(t, in.a, out.a)
	test.Equate(t, in.b, out.b)
	test.Equate(t, in.c, out.c)
	test.Equate(t, uint64(in.d), uint64(out.d))
	test.Equate(t, in.e, out.e)
	test.Equate(t, in.f, out.f)
	for i := range in.g {
		test.Equate(t, in.g[i], out.g[i])
	}
}

func TestVersionGate(t *testing.T) {
	out := testState{g: []byte{}}

	fn := createSnapshot(t, func(s *snapshot.Writer) {
		mod, err := s.Create("TEST", 1, 2)
		test.ExpectedSuccess(t, err)
		test.ExpectedSuccess(t, mod.WriteSchema(out.schema()))
		test.ExpectedSuccess(t, mod.Close())
	})

	s, f := openSnapshot(t, fn)
	defer f.Close()

	mod, err := s.Open("TEST")
	test.ExpectedSuccess(t, err)

	// the exact version and older minors are fine
	test.ExpectedSuccess(t, mod.RequireVersion(1, 2))
	test.ExpectedSuccess(t, mod.RequireVersion(1, 0))

	// a module that is too old for the reader fails closed
	test.ExpectedSuccess(t, curated.Is(mod.RequireVersion(1, 3), snapshot.ErrVersionTooOld))
	test.ExpectedSuccess(t, curated.Is(mod.RequireVersion(2, 0), snapshot.ErrVersionTooOld))

	// so does a module whose major version the reader has never heard of.
	// the layout of its fields cannot be known
	test.ExpectedSuccess(t, curated.Is(mod.RequireVersion(0, 9), snapshot.ErrVersionTooNew))
}

func TestVersionGateNewerMajor(t *testing.T) {
	out := testState{g: []byte{}}

	fn := createSnapshot(t, func(s *snapshot.Writer) {
		mod, err := s.Create("TEST", 9, 0)
		test.ExpectedSuccess(t, err)
		test.ExpectedSuccess(t, mod.WriteSchema(out.schema()))
		test.ExpectedSuccess(t, mod.Close())
	})

	s, f := openSnapshot(t, fn)
	defer f.Close()

	mod, err := s.Open("TEST")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, curated.Is(mod.RequireVersion(0, 4), snapshot.ErrVersionTooNew))
}

func TestModuleLookup(t *testing.T) {
	first := testState{a: 1, g: []byte{}}
	second := testState{a: 2, g: []byte{}}

	fn := createSnapshot(t, func(s *snapshot.Writer) {
		mod, err := s.Create("FIRST", 1, 0)
		test.ExpectedSuccess(t, err)
		test.ExpectedSuccess(t, mod.WriteSchema(first.schema()))
		test.ExpectedSuccess(t, mod.Close())

		mod, err = s.Create("SECOND", 1, 0)
		test.ExpectedSuccess(t, err)
		test.ExpectedSuccess(t, mod.WriteSchema(second.schema()))
		test.ExpectedSuccess(t, mod.Close())
	})

	s, f := openSnapshot(t, fn)
	defer f.Close()

	// modules can be opened in any order
	in := testState{g: []byte{}}
	mod, err := s.Open("SECOND")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, mod.ReadSchema(in.schema()))
	test.Equate(t, in.a, 2)

	mod, err = s.Open("FIRST")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, mod.ReadSchema(in.schema()))
	test.Equate(t, in.a, 1)

	_, err = s.Open("MISSING")
	test.ExpectedSuccess(t, curated.Is(err, snapshot.ErrModuleNotFound))
}

func TestNotASnapshot(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "not.snap")
	if err := os.WriteFile(fn, []byte("certainly not a snapshot file, this. padding to header length"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, err = snapshot.NewReader(f)
	test.ExpectedSuccess(t, curated.Is(err, snapshot.ErrNotSnapshot))
}

func TestNameTooLong(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.snap")
	f, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	s, err := snapshot.NewWriter(f, "TESTMACHINE")
	test.ExpectedSuccess(t, err)

	_, err = s.Create("A MODULE NAME LONGER THAN THE HEADER FIELD", 1, 0)
	test.ExpectedFailure(t, err)
}
