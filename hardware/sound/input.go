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

package sound

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/goeinstein/curated"
)

// Input is a source of input samples for the sound manager. Once all the
// samples have been read the input supplies silence.
type Input struct {
	crit    sync.Mutex
	samples []int16
	cursor  int
}

// NewInput creates an input from samples already at SampleRate.
func NewInput(samples []int16) *Input {
	return &Input{samples: samples}
}

// LoadInput decodes a WAV or MP3 file. Only the first channel is used and
// the data is resampled to SampleRate.
func LoadInput(filename string) (*Input, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("sound: %v", err)
	}
	defer f.Close()

	var samples []int16
	var rate int

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		samples, rate, err = decodeWAV(f)
	case ".mp3":
		samples, rate, err = decodeMP3(f)
	default:
		return nil, curated.Errorf("sound: %v", "unsupported input file type")
	}
	if err != nil {
		return nil, curated.Errorf("sound: %v", err)
	}

	return NewInput(resample(samples, rate, SampleRate)), nil
}

func decodeWAV(r io.ReadSeeker) ([]int16, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, curated.Errorf("wav: %v", "not a valid wav file")
	}

	chans := int(dec.NumChans)
	if chans == 0 {
		return nil, 0, curated.Errorf("wav: %v", "no channels")
	}

	buf := &audio.IntBuffer{
		Format: dec.Format(),
		Data:   make([]int, 4096*chans),
	}

	var samples []int16
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, 0, curated.Errorf("wav: %v", err)
		}
		if n == 0 {
			break // for loop
		}

		// first channel only
		for i := 0; i < n; i += chans {
			samples = append(samples, to16Bit(buf.Data[i], buf.SourceBitDepth))
		}
	}

	return samples, int(dec.SampleRate), nil
}

// to16Bit converts a sample decoded from a WAV file to a signed 16 bit value.
// eight bit WAV data is unsigned.
func to16Bit(v int, depth int) int16 {
	switch depth {
	case 8:
		return int16((v - 0x80) << 8)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	}
	return int16(v)
}

// the go-mp3 stream is always 16 bit little-endian stereo.
func decodeMP3(r io.Reader) ([]int16, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, curated.Errorf("mp3: %v", err)
	}

	var samples []int16
	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)

		// left channel only
		for i := 0; i+1 < n; i += 4 {
			samples = append(samples, int16(uint16(chunk[i])|uint16(chunk[i+1])<<8))
		}

		if err == io.EOF {
			break // for loop
		}
		if err != nil {
			return nil, 0, curated.Errorf("mp3: %v", err)
		}
	}

	return samples, dec.SampleRate(), nil
}

// resample with the nearest sample.
func resample(samples []int16, from int, to int) []int16 {
	if from == to || from <= 0 || len(samples) == 0 {
		return samples
	}

	n := int(int64(len(samples)) * int64(to) / int64(from))
	out := make([]int16, n)
	for i := range out {
		out[i] = samples[int64(i)*int64(from)/int64(to)]
	}
	return out
}

// Read fills samples with the next input samples. Returns the number of
// samples that came from the input. The remainder is silence.
func (in *Input) Read(samples []int16) int {
	in.crit.Lock()
	defer in.crit.Unlock()

	n := copy(samples, in.samples[in.cursor:])
	in.cursor += n
	clear(samples[n:])
	return n
}

// Remaining returns the number of samples not yet read.
func (in *Input) Remaining() int {
	in.crit.Lock()
	defer in.crit.Unlock()
	return len(in.samples) - in.cursor
}

// Rewind to the start of the input.
func (in *Input) Rewind() {
	in.crit.Lock()
	defer in.crit.Unlock()
	in.cursor = 0
}
