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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/hardware/memory"
	"github.com/jetsetilly/goeinstein/test"
)

func TestReadWrite(t *testing.T) {
	mem := memory.NewDefaultMemory()
	ram := uint32(memory.DefaultRAMOrigin)

	test.ExpectSuccess(t, mem.Write(ram, 0x11223344))
	v, err := mem.Read(ram)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x11223344))

	// big-endian byte order
	b, err := mem.ReadB(ram)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, uint8(0x11))

	// unaligned read is rotated
	v, err = mem.Read(ram + 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x44112233))

	_, err = mem.ReadAligned(ram + 1)
	test.ExpectSuccess(t, curated.Is(err, memory.AlignmentFault))

	test.ExpectSuccess(t, mem.WriteB(ram+3, 0xff))
	v, _ = mem.Read(ram)
	test.ExpectEquality(t, v, uint32(0x112233ff))
}

func TestFaults(t *testing.T) {
	mem := memory.NewDefaultMemory()

	_, err := mem.Read(0x10000000)
	test.ExpectSuccess(t, curated.Is(err, memory.AddressFault))

	// the last word of RAM is addressable but a word straddling the end is not
	end := uint32(memory.DefaultRAMOrigin + memory.DefaultRAMSize)
	test.ExpectSuccess(t, mem.Write(end-4, 1))
	test.ExpectFailure(t, mem.WriteB(end, 1))

	// flash cannot be written to directly
	test.ExpectFailure(t, mem.Write(memory.DefaultFlashOrigin, 0))
}

func TestReadString(t *testing.T) {
	mem := memory.NewDefaultMemory()
	ram := uint32(memory.DefaultRAMOrigin)
	test.DemandSuccess(t, mem.Poke(ram, []byte("hello world\x00")))

	s, err := mem.ReadString(ram, 74)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "hello world")

	// buffer is too small for the entire string
	s, err = mem.ReadString(ram, 6)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, s, "hello")
}

func TestFlash(t *testing.T) {
	mem := memory.NewDefaultMemory()
	flash := uint32(memory.DefaultFlashOrigin)

	// flash is erased on creation
	v, err := mem.Read(flash)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xffffffff))

	// only bits selected by the mask are programmed
	test.ExpectSuccess(t, mem.WriteToFlash32Bits(0x12345678, 0xffff0000, flash))
	v, _ = mem.Read(flash)
	test.ExpectEquality(t, v, uint32(0x1234ffff))

	// programming cannot set bits
	test.ExpectSuccess(t, mem.WriteToFlash32Bits(0xffffffff, 0xffffffff, flash))
	v, _ = mem.Read(flash)
	test.ExpectEquality(t, v, uint32(0x1234ffff))

	test.ExpectSuccess(t, mem.WriteToFlash16Bits(0xaaaa5555, 0x0000ffff, flash+4))
	v, _ = mem.Read(flash + 4)
	test.ExpectEquality(t, v, uint32(0xffff5555))

	// erase the block containing an address in the middle of the block
	test.ExpectSuccess(t, mem.EraseFlash(flash+0x100, 0x10000))
	v, _ = mem.Read(flash)
	test.ExpectEquality(t, v, uint32(0xffffffff))

	// out of range
	test.ExpectFailure(t, mem.EraseFlash(0x10000000, 0x10000))
	test.ExpectFailure(t, mem.EraseFlash(flash, 0x3000))
	test.ExpectFailure(t, mem.WriteToFlash32Bits(0, 0xffffffff, memory.DefaultRAMOrigin))

	off, err := mem.TranslateAndCheckFlashAddress(flash + 0x20)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, off, uint32(0x20))
	_, err = mem.TranslateAndCheckFlashAddress(memory.DefaultRAMOrigin)
	test.ExpectSuccess(t, curated.Is(err, memory.FlashFault))
}

func TestFlashPower(t *testing.T) {
	mem := memory.NewDefaultMemory()
	test.ExpectFailure(t, mem.FlashPowered())
	mem.PowerOnFlash()
	test.ExpectSuccess(t, mem.FlashPowered())
	mem.PowerOffFlash()
	test.ExpectFailure(t, mem.FlashPowered())
}
