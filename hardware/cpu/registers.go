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

// Package cpu provides the register file of the emulated ARM processor. The
// instruction interpreter itself is not part of goeinstein. The register
// file is the interface through which native primitives exchange arguments
// and results with guest code.
package cpu

import (
	"fmt"
	"strings"
)

// NumRegisters is the number of general purpose registers visible to guest
// code in user mode.
const NumRegisters = 16

// Register indices with special meaning.
const (
	SP = 13
	LR = 14
	PC = 15
)

// Registers is the register file of the processor.
type Registers struct {
	r [NumRegisters]uint32
}

// NewRegisters is the preferred method of initialisation for the Registers
// type.
func NewRegisters() *Registers {
	return &Registers{}
}

// GetRegister returns the value of the numbered register. Out of range
// register numbers return zero.
func (r *Registers) GetRegister(n int) uint32 {
	if n < 0 || n >= NumRegisters {
		return 0
	}
	return r.r[n]
}

// SetRegister sets the value of the numbered register. Out of range register
// numbers are ignored.
func (r *Registers) SetRegister(n int, v uint32) {
	if n < 0 || n >= NumRegisters {
		return
	}
	r.r[n] = v
}

// Snapshot creates a copy of the register file.
func (r *Registers) Snapshot() *Registers {
	n := *r
	return &n
}

// Reset all registers to zero.
func (r *Registers) Reset() {
	r.r = [NumRegisters]uint32{}
}

func (r *Registers) String() string {
	s := strings.Builder{}
	for i, v := range r.r {
		if i > 0 {
			if i%4 == 0 {
				s.WriteString("\n")
			} else {
				s.WriteString(" ")
			}
		}
		s.WriteString(fmt.Sprintf("R%-2d=%08x", i, v))
	}
	return s.String()
}
