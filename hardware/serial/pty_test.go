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

//go:build linux || darwin

package serial_test

import (
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/jetsetilly/goeinstein/hardware/serial"
	"github.com/jetsetilly/goeinstein/logger"
	"github.com/jetsetilly/goeinstein/test"
)

func TestPTY(t *testing.T) {
	const location = 0x7e570001

	ints := &interrupts{}
	pt, err := serial.NewPTY(logger.NewLogger(100), ints, location)
	if err != nil {
		t.Skipf("pseudo-terminal not available: %v", err)
	}

	link, err := os.Readlink(serial.LinkPath(location))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, link, pt.SlaveName())

	f, err := os.OpenFile(pt.Link(), os.O_RDWR, 0)
	test.DemandSuccess(t, err)
	defer f.Close()

	_, err = f.Write([]byte("newton"))
	test.DemandSuccess(t, err)

	deadline := time.Now().Add(2 * time.Second)
	for pt.Buffered() < 6 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	test.DemandEquality(t, pt.Buffered(), 6)
	test.ExpectEquality(t, pt.RxBufFull(), true)
	test.ExpectInequality(t, ints.count.Load(), int64(0))

	var s []byte
	for pt.RxBufFull() {
		s = append(s, pt.GetByte())
	}
	test.ExpectEquality(t, string(s), "newton")

	// writes from the guest arrive at the slave
	pt.PutByte('x')
	b := make([]byte, 1)
	_, err = f.Read(b)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b[0], byte('x'))

	test.ExpectSuccess(t, pt.Close())
	_, err = os.Lstat(serial.LinkPath(location))
	test.ExpectEquality(t, os.IsNotExist(err), true)
}

func newTestPTY(t *testing.T, location uint32) (*serial.PTY, *interrupts) {
	t.Helper()
	ints := &interrupts{}
	pt, err := serial.NewPTY(logger.NewLogger(100), ints, location)
	if err != nil {
		t.Skipf("pseudo-terminal not available: %v", err)
	}
	t.Cleanup(func() {
		_ = pt.Close()
	})
	return pt, ints
}

// nothing reads the slave so the pseudo-terminal eventually fills up. the
// guest must not be held up by that
func TestPTYPutByteFull(t *testing.T) {
	pt, ints := newTestPTY(t, 0x7e570002)

	const total = 1 << 18

	done := make(chan bool)
	go func() {
		for i := 0; i < total; i++ {
			pt.PutByte(uint8(i))
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("PutByte did not return")
	}

	test.ExpectInequality(t, pt.Dropped(), uint64(0))
	test.ExpectEquality(t, ints.count.Load(), int64(total))
	test.ExpectEquality(t, pt.TxBufEmpty(), true)
}

// bytes written to the slave while the guest is consuming them arrive in
// order and the receive flag is clear exactly when the ring is empty.
func TestPTYConcurrent(t *testing.T) {
	pt, _ := newTestPTY(t, 0x7e570003)

	f, err := os.OpenFile(pt.Link(), os.O_RDWR, 0)
	test.DemandSuccess(t, err)
	defer f.Close()

	rng := rand.New(rand.NewSource(0))
	total := serial.RingSize*3 + rng.Intn(serial.RingSize)

	go func() {
		data := make([]byte, total)
		for i := range data {
			data[i] = uint8(i)
		}
		for len(data) > 0 {
			n := 1 + rng.Intn(512)
			if n > len(data) {
				n = len(data)
			}
			if _, err := f.Write(data[:n]); err != nil {
				return
			}
			data = data[n:]
		}
	}()

	deadline := time.Now().Add(20 * time.Second)
	for i := 0; i < total; {
		if time.Now().After(deadline) {
			t.Fatalf("received %d of %d bytes", i, total)
		}

		n, status := pt.BufferedAndStatus()
		if (n == 0) != (status&serial.RxCharAvailable == 0) {
			t.Fatalf("%d bytes buffered with status %08x", n, status)
		}
		if n == 0 {
			time.Sleep(time.Millisecond)
			continue
		}

		b := pt.GetByte()
		if b != uint8(i) {
			t.Fatalf("byte %d: got %02x, want %02x", i, b, uint8(i))
		}
		i++
	}

	test.ExpectEquality(t, pt.RxBufFull(), false)
	test.ExpectEquality(t, pt.Buffered(), 0)
}

func TestPTYCloseTwice(t *testing.T) {
	pt, _ := newTestPTY(t, 0x7e570004)
	test.ExpectSuccess(t, pt.Close())
	test.ExpectSuccess(t, pt.Close())
}
