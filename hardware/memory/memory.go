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

// Package memory is a flat model of the emulated machine's address space,
// made up of a RAM region and a flash region. Values are stored big-endian.
//
// Memory faults are returned as curated errors. Native primitives turn
// faults into guest error codes where the guest expects one and ignore
// them otherwise.
package memory

import (
	"encoding/binary"
	"math/bits"
	"strings"

	"github.com/jetsetilly/goeinstein/curated"
)

// Error patterns.
const (
	AddressFault   = "memory: address fault (%08x)"
	AlignmentFault = "memory: alignment fault (%08x)"
	FlashFault     = "memory: flash fault (%08x)"
)

// Default layout of the address space.
const (
	DefaultRAMOrigin   = 0x04000000
	DefaultRAMSize     = 0x00400000
	DefaultFlashOrigin = 0x02000000
	DefaultFlashSize   = 0x00400000
)

// value of erased flash.
const erased = 0xff

type region struct {
	origin uint32
	data   []byte
}

func (r region) contains(address uint32, size uint32) bool {
	return address >= r.origin && uint64(address)+uint64(size) <= uint64(r.origin)+uint64(len(r.data))
}

// Memory is the address space of the emulated machine.
type Memory struct {
	ram   region
	flash region

	flashPowered bool
}

// NewMemory is the preferred method of initialisation for the Memory type.
// Flash is initialised to the erased state.
func NewMemory(ramOrigin, ramSize, flashOrigin, flashSize uint32) *Memory {
	mem := &Memory{
		ram:   region{origin: ramOrigin, data: make([]byte, ramSize)},
		flash: region{origin: flashOrigin, data: make([]byte, flashSize)},
	}
	for i := range mem.flash.data {
		mem.flash.data[i] = erased
	}
	return mem
}

// NewDefaultMemory returns an instance of Memory with the default layout.
func NewDefaultMemory() *Memory {
	return NewMemory(DefaultRAMOrigin, DefaultRAMSize, DefaultFlashOrigin, DefaultFlashSize)
}

// returns the slice of memory starting at address. the slice is at least size
// bytes long.
func (mem *Memory) mapAddress(address uint32, size uint32) ([]byte, error) {
	if mem.ram.contains(address, size) {
		return mem.ram.data[address-mem.ram.origin:], nil
	}
	if mem.flash.contains(address, size) {
		return mem.flash.data[address-mem.flash.origin:], nil
	}
	return nil, curated.Errorf(AddressFault, address)
}

// Read a 32 bit word. Unaligned reads return the aligned word rotated, in the
// same way as the ARM LDR instruction.
func (mem *Memory) Read(address uint32) (uint32, error) {
	v, err := mem.ReadAligned(address &^ 0x03)
	if err != nil {
		return 0, err
	}
	return bits.RotateLeft32(v, -int(address&0x03)*8), nil
}

// ReadAligned reads a 32 bit word from a word aligned address.
func (mem *Memory) ReadAligned(address uint32) (uint32, error) {
	if address&0x03 != 0 {
		return 0, curated.Errorf(AlignmentFault, address)
	}
	d, err := mem.mapAddress(address, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(d), nil
}

// ReadB reads a single byte.
func (mem *Memory) ReadB(address uint32) (uint8, error) {
	d, err := mem.mapAddress(address, 1)
	if err != nil {
		return 0, err
	}
	return d[0], nil
}

// Write a 32 bit word. The address is aligned before writing. Flash cannot be
// written to with this function.
func (mem *Memory) Write(address uint32, value uint32) error {
	address &^= 0x03
	if !mem.ram.contains(address, 4) {
		return curated.Errorf(AddressFault, address)
	}
	binary.BigEndian.PutUint32(mem.ram.data[address-mem.ram.origin:], value)
	return nil
}

// WriteB writes a single byte. Flash cannot be written to with this function.
func (mem *Memory) WriteB(address uint32, value uint8) error {
	if !mem.ram.contains(address, 1) {
		return curated.Errorf(AddressFault, address)
	}
	mem.ram.data[address-mem.ram.origin] = value
	return nil
}

// ReadString reads a null terminated string. At most max-1 characters are
// read, as though the string was being copied into a buffer of max bytes.
func (mem *Memory) ReadString(address uint32, max int) (string, error) {
	s := strings.Builder{}
	for i := 0; i < max-1; i++ {
		b, err := mem.ReadB(address + uint32(i))
		if err != nil {
			return s.String(), err
		}
		if b == 0x00 {
			break
		}
		s.WriteByte(b)
	}
	return s.String(), nil
}

// Poke copies data into memory, including flash, without any of the flash
// programming rules. For use when preparing memory for tests and scripts.
func (mem *Memory) Poke(address uint32, data []byte) error {
	d, err := mem.mapAddress(address, uint32(len(data)))
	if err != nil {
		return err
	}
	copy(d, data)
	return nil
}
