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

	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/test"
)

func TestScheduleOutputBuffer(t *testing.T) {
	m := newMachine()
	snd := &sound{}
	m.emu.snd = snd

	m.stackArg(0x400)
	m.call(0x00000205, 0, 0x04100000, 0x400, 0x04200000)
	test.ExpectEquality(t, m.r0(), uint32(0))

	b1, b2 := m.prim.OutputBuffers()
	test.ExpectEquality(t, b1, uint32(0x04100000))
	test.ExpectEquality(t, b2, uint32(0x04200000))

	m.call(0x00000207, 0, 0, 0x100)
	m.call(0x00000207, 0, 1, 0x200)
	m.call(0x00000207, 0, 0xffffffff, 0x300)

	test.DemandEquality(t, len(snd.output), 3)
	test.ExpectEquality(t, snd.output[0], scheduled{0x04100000, 0x100})
	test.ExpectEquality(t, snd.output[1], scheduled{0x04200000, 0x200})
	test.ExpectEquality(t, snd.output[2], scheduled{0x04200000, 0x300})
}

func TestScheduleInputBuffer(t *testing.T) {
	m := newMachine()
	snd := &sound{}
	m.emu.snd = snd

	m.call(0x00000206, 0, 0x04110000, 0x400, 0x04220000)
	m.call(0x00000208, 0, 1, 0x80)
	test.DemandEquality(t, len(snd.input), 1)
	test.ExpectEquality(t, snd.input[0], scheduled{0x04220000, 0x80})
}

func TestInputVolume(t *testing.T) {
	m := newMachine()

	m.call(0x00000219, 0, 0x80)
	test.ExpectEquality(t, m.prim.InputVolume(), uint8(0x80))
	m.call(0x0000021a)
	test.ExpectEquality(t, m.r0(), uint32(0x80))

	m.call(0x00000219, 0, 0x1234)
	test.ExpectEquality(t, m.prim.InputVolume(), uint8(0xff))
	m.call(0x0000021a)
	test.ExpectEquality(t, m.r0(), uint32(0xff))
}

func TestOutputControl(t *testing.T) {
	m := newMachine()
	snd := &sound{}
	m.emu.snd = snd

	m.call(0x0000020d)
	m.call(0x00000213)
	test.ExpectEquality(t, m.r0(), uint32(1))
	m.call(0x0000020f)
	m.call(0x00000213)
	test.ExpectEquality(t, m.r0(), uint32(0))

	m.call(0x00000217, 0, 0x42)
	m.call(0x00000218)
	test.ExpectEquality(t, m.r0(), uint32(0x42))

	m.call(0x0000021f, 0, 0x10, 0x20)
	test.ExpectEquality(t, snd.masks, [2]uint32{0x10, 0x20})
}

func TestSoundHardwareInfo(t *testing.T) {
	m := newMachine()

	m.call(0x00000203)
	test.ExpectEquality(t, int32(m.r0()), primitives.ErrSoundHardwareInfo)

	m.call(0x00000204, 0, data)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.word(data+0x0c), uint32(0x54600000))
	test.ExpectEquality(t, m.word(data+0x18), uint32(1))
}
