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

package cpu_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/goeinstein/hardware/cpu"
	"github.com/jetsetilly/goeinstein/test"
)

func TestRegisters(t *testing.T) {
	r := cpu.NewRegisters()
	r.SetRegister(0, 0xffffd6be)
	r.SetRegister(cpu.PC, 0x00018000)
	r.SetRegister(16, 1)
	r.SetRegister(-1, 1)

	test.ExpectEquality(t, r.GetRegister(0), uint32(0xffffd6be))
	test.ExpectEquality(t, r.GetRegister(cpu.PC), uint32(0x00018000))
	test.ExpectEquality(t, r.GetRegister(16), uint32(0))

	s := r.Snapshot()
	r.Reset()
	test.ExpectEquality(t, r.GetRegister(0), uint32(0))
	test.ExpectEquality(t, s.GetRegister(0), uint32(0xffffd6be))

	test.ExpectSuccess(t, strings.HasPrefix(s.String(), "R0 =ffffd6be R1 =00000000"))
	test.ExpectEquality(t, strings.Count(s.String(), "\n"), 3)
}
