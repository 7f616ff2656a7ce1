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

// Package drivesound synthesises the mechanical noises of a disk drive and
// writes them to disk as a WAV file. Note that audio data is buffered in
// memory in its entirety and written out by End(). It is therefore probably
// only suitable for short sessions and testing purposes.
//
// The Recorder implements the notifications.Notify interface: it listens
// for attach, detach and seek events and appends the appropriate noise for
// each.
package drivesound

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/viceteam/truedrive/curated"
	"github.com/viceteam/truedrive/logger"
	"github.com/viceteam/truedrive/notifications"
)

// SampleFreq is the sample frequency of the recording.
const SampleFreq = 44100

// durations of the synthesised noises, in samples.
const (
	clickDur = SampleFreq / 200 // 5ms
	clunkDur = SampleFreq / 20  // 50ms
)

// Recorder accumulates drive noise. One Recorder covers all units; the
// noises of a dual-drive unit are indistinguishable anyway.
type Recorder struct {
	filename string
	buffer   []int
}

// New is the preferred method of initialisation for the Recorder type.
func New(filename string) *Recorder {
	return &Recorder{
		filename: filename,
		buffer:   make([]int, 0, SampleFreq),
	}
}

// Notify implements the notifications.Notify interface.
func (r *Recorder) Notify(notice notifications.Notice, unit int, drv int) error {
	switch notice {
	case notifications.NotifyDiskAttached:
		r.clunk()
	case notifications.NotifyDiskDetached:
		r.clunk()
	case notifications.NotifyDriveSeek:
		r.click()
	}
	return nil
}

// a short stepper-motor tick.
func (r *Recorder) click() {
	r.impulse(clickDur, 12000)
}

// the heavier noise of the head banging against the stop, heard on attach
// and detach when the drive re-seeks.
func (r *Recorder) clunk() {
	r.impulse(clunkDur, 20000)
}

// impulse appends a decaying square pulse of the given length and initial
// amplitude.
func (r *Recorder) impulse(dur int, amplitude int) {
	for i := 0; i < dur; i++ {
		v := amplitude - (amplitude*i)/dur
		if i%64 >= 32 {
			v = -v
		}
		r.buffer = append(r.buffer, v)
	}

	// a short silence separating this noise from the next
	for i := 0; i < clickDur; i++ {
		r.buffer = append(r.buffer, 0)
	}
}

// End writes the accumulated recording to the WAV file. The Recorder
// should not be used after End() has been called.
func (r *Recorder) End() (rerr error) {
	f, err := os.Create(r.filename)
	if err != nil {
		return curated.Errorf("drivesound: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("drivesound: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, SampleFreq, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleFreq,
		},
		Data:           r.buffer,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return curated.Errorf("drivesound: %v", err)
	}

	logger.Logf("drivesound", "writing drive noise to %s", r.filename)

	if err := enc.Close(); err != nil {
		return curated.Errorf("drivesound: %v", err)
	}

	return nil
}
