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

package primitives_test

import (
	"testing"

	"github.com/jetsetilly/goeinstein/test"
)

func TestFlashIdentify(t *testing.T) {
	m := newMachine()

	m.call(0x00000001, 0, 0x34000000, 0x0000ff00, data)
	test.ExpectEquality(t, m.r0(), uint32(1))

	expected := []uint32{0x00000089, 0x00000000, 0x00000002, 0x00000002, 0x00200000, 0x00010000}
	for i, e := range expected {
		test.ExpectEquality(t, m.word(data+uint32(i*4)), e, i)
	}

	for _, mask := range []uint32{0xff000000, 0x00ff0000, 0x000000ff} {
		m.call(0x00000001, 0, 0x34000000, mask, data)
		test.ExpectEquality(t, m.r0(), uint32(1), mask)
	}
}

func TestFlashIdentifyNotFound(t *testing.T) {
	m := newMachine()

	for i := uint32(0); i < 6; i++ {
		_ = m.mem.Write(data+i*4, 0xdeadbeef)
	}

	for _, mask := range []uint32{0x12345678, 0xffff0000, 0x0000ffff, 0x00000000} {
		m.call(0x00000001, 0xff, 0x34000000, mask, data)
		test.ExpectEquality(t, m.r0(), uint32(0), mask)
		for i := uint32(0); i < 6; i++ {
			test.ExpectEquality(t, m.word(data+i*4), uint32(0xdeadbeef))
		}
	}
}

func TestFlashDoErase(t *testing.T) {
	m := newMachine()

	// not flash
	m.call(0x00000010, 0, data, 0x10000)
	test.ExpectEquality(t, m.r0(), uint32(0xffffd6be))

	// bad length
	m.call(0x00000010, 0, flash, 0x12345)
	test.ExpectEquality(t, m.r0(), uint32(0xffffd6be))

	m.call(0x00000010, 0x1234, flash, 0x10000)
	test.ExpectEquality(t, m.r0(), uint32(0))
}

func TestFlashWrite(t *testing.T) {
	m := newMachine()

	// flash range object with a 32 bit virtual table
	_ = m.mem.Write(obj, 0x0001e3d4)
	m.stackArg(obj)

	m.call(0x00000008, 0, 0x12345678, 0xffffffff, flash+0x100)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.word(flash+0x100), uint32(0x12345678))

	// unaligned address fails
	m.call(0x00000008, 0, 0x12345678, 0xffffffff, flash+0x102)
	test.ExpectEquality(t, m.r0(), uint32(0xffffd6be))

	// 16 bit virtual table. bits can only be cleared
	_ = m.mem.Write(obj, 0x0001e3c8)
	m.call(0x00000008, 0, 0x0000ffff, 0xffff0000, flash+0x100)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.word(flash+0x100), uint32(0x00005678))
}

func TestFlashStartErase(t *testing.T) {
	m := newMachine()

	_ = m.mem.Write(obj, 0x0001e180)
	m.stackArg(obj)
	m.call(0x00000008, 0, 0x00000000, 0xffffffff, flash+0x1fffc)
	test.ExpectEquality(t, m.word(flash+0x1fffc), uint32(0))

	// 32 bit flash erases blocks of 0x20000 bytes
	m.call(0x00000009, 0, obj, flash+0x4)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.word(flash+0x1fffc), uint32(0xffffffff))

	m.call(0x00000009, 0, obj, data)
	test.ExpectEquality(t, m.r0(), uint32(0xffffd6be))
}

func TestFlashBeginWrite(t *testing.T) {
	m := newMachine()

	m.call(0x0000000d, 0, 0, flash)
	test.ExpectEquality(t, m.r0(), uint32(0))

	m.call(0x0000000d, 0, 0, data)
	test.ExpectEquality(t, m.r0(), uint32(0xffffd6be))
}

func TestFlashIsEraseComplete(t *testing.T) {
	m := newMachine()
	_ = m.mem.Write(data, 0xffffffff)
	m.call(0x0000000b, 0, 0, 0, data)
	test.ExpectEquality(t, m.r0(), uint32(1))
	test.ExpectEquality(t, m.word(data), uint32(0))
}
