// This file is part of Goeinstein.
//
// Goeinstein is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Goeinstein is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Goeinstein.  If not, see <https://www.gnu.org/licenses/>.

package sound_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/goeinstein/hardware/sound"
	"github.com/jetsetilly/goeinstein/test"
)

// writeWAV creates a 16 bit WAV file in the test's temporary directory.
func writeWAV(t *testing.T, rate int, chans int, data []int) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "input.wav")
	f, err := os.Create(filename)
	test.DemandSuccess(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, chans, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: chans, SampleRate: rate},
		Data:   data,
	}
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())

	return filename
}

func TestLoadWAV(t *testing.T) {
	filename := writeWAV(t, sound.SampleRate, 1, []int{100, -100, 200, -200})

	in, err := sound.LoadInput(filename)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, in.Remaining(), 4)

	samples := make([]int16, 6)
	n := in.Read(samples)
	test.ExpectEquality(t, n, 4)
	test.ExpectEquality(t, samples[0], int16(100))
	test.ExpectEquality(t, samples[3], int16(-200))
	test.ExpectEquality(t, samples[5], int16(0))
	test.ExpectEquality(t, in.Remaining(), 0)

	in.Rewind()
	test.ExpectEquality(t, in.Remaining(), 4)
}

func TestLoadWAVStereo(t *testing.T) {
	// the second channel is ignored and the data is resampled
	filename := writeWAV(t, sound.SampleRate*2, 2, []int{1, 9, 2, 9, 3, 9, 4, 9})

	in, err := sound.LoadInput(filename)
	test.DemandSuccess(t, err)

	samples := make([]int16, 2)
	test.ExpectEquality(t, in.Read(samples), 2)
	test.ExpectEquality(t, samples[0], int16(1))
	test.ExpectEquality(t, samples[1], int16(3))
}

func TestLoadInputErrors(t *testing.T) {
	_, err := sound.LoadInput(filepath.Join(t.TempDir(), "missing.wav"))
	test.ExpectFailure(t, err)

	filename := filepath.Join(t.TempDir(), "input.ogg")
	test.DemandSuccess(t, os.WriteFile(filename, []byte("OggS"), 0644))
	_, err = sound.LoadInput(filename)
	test.ExpectFailure(t, err)

	filename = filepath.Join(t.TempDir(), "bad.wav")
	test.DemandSuccess(t, os.WriteFile(filename, []byte("not a wav file"), 0644))
	_, err = sound.LoadInput(filename)
	test.ExpectFailure(t, err)
}
