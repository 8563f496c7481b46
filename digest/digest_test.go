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

package digest_test

import (
	"image"
	"testing"

	"github.com/jetsetilly/goeinstein/digest"
	"github.com/jetsetilly/goeinstein/test"
)

type screen struct {
	img *image.Gray
}

func (s *screen) Image() *image.Gray {
	return s.img
}

func TestVideo(t *testing.T) {
	scr := &screen{img: image.NewGray(image.Rect(0, 0, 4, 4))}
	dig := digest.NewVideo(scr)

	var _ digest.Digest = dig

	zero := dig.Hash()
	a := dig.Snapshot()
	test.ExpectInequality(t, a, zero)
	test.ExpectEquality(t, dig.Hash(), a)

	// the same screen again produces a different value because of chaining
	b := dig.Snapshot()
	test.ExpectInequality(t, b, a)
	test.ExpectEquality(t, dig.Frames(), 2)

	// the sequence repeats after a reset
	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), zero)
	test.ExpectEquality(t, dig.Snapshot(), a)

	scr.img.Pix[5] = 0xff
	test.ExpectInequality(t, dig.Snapshot(), b)
}

func TestAudio(t *testing.T) {
	dig := digest.NewAudio()
	var _ digest.Digest = dig

	zero := dig.Hash()

	// no samples leaves the digest unchanged
	test.DemandSuccess(t, dig.WriteSamples(nil))
	test.ExpectEquality(t, dig.Hash(), zero)

	samples := make([]int16, 1000)
	for i := range samples {
		samples[i] = int16(i * 31)
	}
	test.DemandSuccess(t, dig.WriteSamples(samples))
	a := dig.Hash()
	test.ExpectInequality(t, a, zero)

	other := digest.NewAudio()
	test.DemandSuccess(t, other.WriteSamples(samples[:300]))
	test.DemandSuccess(t, other.WriteSamples(samples[300:]))
	test.ExpectEquality(t, other.Hash(), a)

	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), zero)
}
