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

// Package primitives implements the native primitives of the emulated Newton.
//
// The ROM device drivers of the Newton are replaced by small stubs that
// execute a reserved coprocessor instruction. The CPU traps the instruction
// and hands the instruction word to Dispatch(), which decodes it and runs the
// host implementation of the driver function.
//
// An instruction word with bit 31 set is a virtualized call and the lower 31
// bits identify the call. Otherwise, the second byte selects the device class
// and the lowest byte selects the opcode within that class:
//
//	0	flash
//	1	platform
//	2	sound
//	3	battery
//	4	screen
//	5	tablet
//	6	serial chip
//	7	in translator
//	8	out translator
//	9	host calls
//	10	network
//	11	host bridge
//
// Arguments are passed in the guest registers in the same way as a normal
// function call. R0 to R3 hold the first four arguments and further arguments
// are on the stack at R13+4. The result is returned in R0.
//
// Unknown classes and unknown opcodes are never fatal. They are logged,
// together with the guest program counter, and the emulation continues.
package primitives
