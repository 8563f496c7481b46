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

package serial

// RingSize is the capacity of the receive buffer of the host ports.
const RingSize = 8192

// Ring is a fixed capacity FIFO of bytes. Ring does not do any locking of its
// own.
//
// Produce never overwrites unconsumed bytes. Bytes that do not fit are not
// accepted and it is up to the producer to try again later.
type Ring struct {
	data  []byte
	head  int
	count int
}

// NewRing is the preferred method of initialisation for the Ring type.
func NewRing(size int) *Ring {
	return &Ring{data: make([]byte, size)}
}

// Produce adds bytes to the ring. Returns the number of bytes accepted, which
// will be less than len(p) if the ring has insufficient free space.
func (r *Ring) Produce(p []byte) int {
	n := min(len(p), r.Free())
	tail := (r.head + r.count) % len(r.data)
	c := copy(r.data[tail:], p[:n])
	copy(r.data, p[c:n])
	r.count += n
	return n
}

// Consume removes the oldest byte from the ring. Returns false if the ring is
// empty.
func (r *Ring) Consume() (byte, bool) {
	if r.count == 0 {
		return 0, false
	}
	b := r.data[r.head]
	r.head = (r.head + 1) % len(r.data)
	r.count--
	return b, true
}

// Len returns the number of bytes in the ring.
func (r *Ring) Len() int {
	return r.count
}

// Free returns the number of bytes that can be added to the ring.
func (r *Ring) Free() int {
	return len(r.data) - r.count
}

// Empty returns true if there are no bytes in the ring.
func (r *Ring) Empty() bool {
	return r.count == 0
}

// Full returns true if no more bytes can be added to the ring.
func (r *Ring) Full() bool {
	return r.count == len(r.data)
}
