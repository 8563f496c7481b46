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

package memory

import (
	"encoding/binary"

	"github.com/jetsetilly/goeinstein/curated"
)

// TranslateAndCheckFlashAddress returns the offset of the address into the
// flash region. An address outside of flash is a fault.
func (mem *Memory) TranslateAndCheckFlashAddress(address uint32) (uint32, error) {
	if !mem.flash.contains(address, 1) {
		return 0, curated.Errorf(FlashFault, address)
	}
	return address - mem.flash.origin, nil
}

// EraseFlash erases the block of the given length that contains address.
// Length must be a power of two.
func (mem *Memory) EraseFlash(address uint32, length uint32) error {
	if length == 0 || length&(length-1) != 0 {
		return curated.Errorf(FlashFault, address)
	}

	offset, err := mem.TranslateAndCheckFlashAddress(address)
	if err != nil {
		return err
	}

	start := offset &^ (length - 1)
	if uint64(start)+uint64(length) > uint64(len(mem.flash.data)) {
		return curated.Errorf(FlashFault, address)
	}

	for i := range mem.flash.data[start : start+length] {
		mem.flash.data[start+uint32(i)] = erased
	}
	return nil
}

// program clears bits in flash. only bits selected by the mask are changed
// and bits can only be cleared, never set.
func (mem *Memory) program(offset uint32, word uint32, mask uint32) {
	old := binary.BigEndian.Uint32(mem.flash.data[offset:])
	binary.BigEndian.PutUint32(mem.flash.data[offset:], old&(word|^mask))
}

// WriteToFlash32Bits programs a word of flash that is arranged as a single
// 32 bit wide device.
func (mem *Memory) WriteToFlash32Bits(word uint32, mask uint32, address uint32) error {
	if address&0x03 != 0 {
		return curated.Errorf(AlignmentFault, address)
	}
	offset, err := mem.TranslateAndCheckFlashAddress(address)
	if err != nil {
		return err
	}
	if offset+4 > uint32(len(mem.flash.data)) {
		return curated.Errorf(FlashFault, address)
	}
	mem.program(offset, word, mask)
	return nil
}

// WriteToFlash16Bits programs a word of flash that is arranged as two 16 bit
// wide devices. Each half of the word is programmed separately.
func (mem *Memory) WriteToFlash16Bits(word uint32, mask uint32, address uint32) error {
	if address&0x03 != 0 {
		return curated.Errorf(AlignmentFault, address)
	}
	offset, err := mem.TranslateAndCheckFlashAddress(address)
	if err != nil {
		return err
	}
	if offset+4 > uint32(len(mem.flash.data)) {
		return curated.Errorf(FlashFault, address)
	}
	if mask&0xffff0000 != 0 {
		mem.program(offset, word, mask&0xffff0000)
	}
	if mask&0x0000ffff != 0 {
		mem.program(offset, word, mask&0x0000ffff)
	}
	return nil
}

// PowerOnFlash turns on the flash power supply.
func (mem *Memory) PowerOnFlash() {
	mem.flashPowered = true
}

// PowerOffFlash turns off the flash power supply.
func (mem *Memory) PowerOffFlash() {
	mem.flashPowered = false
}

// FlashPowered returns true if the flash power supply is on.
func (mem *Memory) FlashPowered() bool {
	return mem.flashPowered
}
