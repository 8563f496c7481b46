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

// Package scripting controls a Newton machine from a Lua script. Scripts are
// run with gopher-lua and have access to the following functions:
//
//	dispatch(instruction)       execute a native primitive
//	reg(n)                      value of register n
//	setreg(n, value)            set register n
//	peek(address)               word at address
//	peekb(address)              byte at address
//	poke(address, value)        write word to address
//	pokestr(address, string)    write null terminated string to address
//	save(filename)              save driver state
//	load(filename)              load driver state
//	power()                     press the power switch
//	paused()                    true if the guest has paused the system
//	quitting()                  true if the guest has asked to quit
//	screenshot([filename], [scale])
//	digest()                    screen and sound digests (see digest package)
//	log(message)                add message to the log
//	dump(filename)              write a graph of the machine in DOT format
//
// Numbers are passed as Lua numbers. Addresses and register values are
// truncated to 32 bits.
//
// An error in a script, including a memory fault caused by peek or poke,
// stops the script. The error is returned by Run() or RunString().
package scripting
