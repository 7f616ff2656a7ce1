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

package drivesound_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/viceteam/truedrive/drivesound"
	"github.com/viceteam/truedrive/notifications"
	"github.com/viceteam/truedrive/test"
)

func TestRecording(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "drive.wav")

	r := drivesound.New(fn)
	test.ExpectedSuccess(t, r.Notify(notifications.NotifyDiskAttached, 8, 0))
	test.ExpectedSuccess(t, r.Notify(notifications.NotifyDriveSeek, 8, 0))
	test.ExpectedSuccess(t, r.Notify(notifications.NotifyDiskDetached, 8, 0))
	test.ExpectedSuccess(t, r.End())

	// the file must decode as a valid single-channel WAV
	f, err := os.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.ExpectedSuccess(t, dec.IsValidFile())
	test.Equate(t, int(dec.NumChans), 1)
	test.Equate(t, int(dec.SampleRate), drivesound.SampleFreq)
}
