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

package serial_test

import (
	"testing"

	"github.com/jetsetilly/goeinstein/hardware/serial"
	"github.com/jetsetilly/goeinstein/test"
)

func TestRing(t *testing.T) {
	r := serial.NewRing(4)
	test.ExpectEquality(t, r.Empty(), true)
	test.ExpectEquality(t, r.Free(), 4)

	test.ExpectEquality(t, r.Produce([]byte{1, 2, 3}), 3)
	test.ExpectEquality(t, r.Len(), 3)

	b, ok := r.Consume()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, b, byte(1))

	// wraps around the end of the buffer. only two bytes fit
	test.ExpectEquality(t, r.Produce([]byte{4, 5, 6}), 2)
	test.ExpectEquality(t, r.Full(), true)

	for _, e := range []byte{2, 3, 4, 5} {
		b, ok = r.Consume()
		test.ExpectEquality(t, ok, true)
		test.ExpectEquality(t, b, e)
	}

	_, ok = r.Consume()
	test.ExpectEquality(t, ok, false)
	test.ExpectEquality(t, r.Empty(), true)
}

func TestRingNoOverwrite(t *testing.T) {
	r := serial.NewRing(serial.RingSize)
	data := make([]byte, serial.RingSize+100)
	for i := range data {
		data[i] = byte(i)
	}

	test.ExpectEquality(t, r.Produce(data), serial.RingSize)
	test.ExpectEquality(t, r.Produce(data), 0)

	b, _ := r.Consume()
	test.ExpectEquality(t, b, byte(0))
}
