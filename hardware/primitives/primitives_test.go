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
	"math/rand"
	"testing"

	"github.com/jetsetilly/goeinstein/hardware/cpu"
	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/hardware/serial"
	"github.com/jetsetilly/goeinstein/logger"
	"github.com/jetsetilly/goeinstein/test"
)

func TestVirtualizedCalls(t *testing.T) {
	m := newMachine()
	vc := &virtualized{}
	m.emu.vc = vc

	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		id := rng.Uint32() & 0x7fffffff
		before := *m.cpu.Snapshot()
		m.prim.Dispatch(primitives.VirtualizedBit | id)
		test.DemandEquality(t, len(vc.ids), i+1)
		test.ExpectEquality(t, vc.ids[i], id)
		test.ExpectEquality(t, *m.cpu, before)
	}
}

func TestVirtualizedCallsMissing(t *testing.T) {
	m := newMachine()
	m.prim.Dispatch(primitives.VirtualizedBit | 0x1234)
	test.ExpectEquality(t, m.log.Len(), 1)
}

func TestUnknownClass(t *testing.T) {
	m := newMachine()

	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		// class is at least 12 and bit 31 is clear
		class := 12 + rng.Uint32()%(0x7fffff-12)
		instruction := class<<8 | rng.Uint32()&0xff

		for r := 0; r < cpu.NumRegisters; r++ {
			m.cpu.SetRegister(r, rng.Uint32())
		}
		before := *m.cpu.Snapshot()
		m.log.Clear()

		m.prim.Dispatch(instruction)
		test.ExpectEquality(t, *m.cpu, before, instruction)
		test.ExpectEquality(t, m.log.Len(), 1, instruction)
	}
}

func TestUnknownClassDiagnostic(t *testing.T) {
	m := newMachine()
	m.cpu.SetRegister(cpu.PC, 0x00123456)
	m.prim.Dispatch(0x0000c001)

	var entry logger.Entry
	m.log.BorrowLog(func(e []logger.Entry) {
		test.DemandEquality(t, len(e), 1)
		entry = e[0]
	})
	test.ExpectEquality(t, entry.Detail, "unimplemented native primitive 0000c001 (pc=00123456)")
}

// the host bridge is unknown unless the emulator has one
func TestHostBridgeUnavailable(t *testing.T) {
	m := newMachine()
	m.cpu.SetRegister(0, 0x5555)
	m.prim.Dispatch(0x00000b01)
	test.ExpectEquality(t, m.r0(), uint32(0x5555))
	test.ExpectEquality(t, m.log.Len(), 1)
}

func TestUnknownOpcode(t *testing.T) {
	m := newMachine()
	for _, instruction := range []uint32{0x000000ff, 0x000001ff, 0x00000255, 0x00000701, 0x00000801, 0x00000a99} {
		m.log.Clear()
		m.call(instruction, 0x1234)
		test.ExpectEquality(t, m.r0(), uint32(0), instruction)
		test.ExpectEquality(t, m.log.Len(), 1, instruction)
	}
}

func TestNoEmulator(t *testing.T) {
	m := newMachine()
	m.prim.SetEmulator(nil)
	m.cpu.SetRegister(0, 0x77)
	m.prim.Dispatch(0x00000001)
	test.ExpectEquality(t, m.r0(), uint32(0x77))
	test.ExpectEquality(t, m.log.Len(), 1)
}

func TestLogMask(t *testing.T) {
	m := newMachine()

	m.call(0x00000002)
	test.ExpectEquality(t, m.log.Len(), 0)

	m.prim.SetLogMask(1 << 0)
	m.call(0x00000002)
	test.ExpectEquality(t, m.log.Len(), 1)

	// another class is not traced
	m.call(0x00000302)
	test.ExpectEquality(t, m.log.Len(), 1)
}

func TestNilManager(t *testing.T) {
	m := newMachine()
	m.call(0x00000207, 0x5555, 0, 0x100)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.log.Len(), 1)
}

func TestSerialLegacyRange(t *testing.T) {
	m := newMachine()

	// reading the location from R0+0x10 would fault for this value of R0
	for op := uint32(0x00); op <= 0x2f; op++ {
		m.log.Clear()
		m.call(0x00000600|op, 0xfffffff0)
		test.ExpectEquality(t, m.r0(), uint32(0), op)
		test.ExpectEquality(t, m.log.Len(), 0, op)
	}

	// the location is read for opcodes from 0x30
	m.log.Clear()
	m.call(0x00000632, 0xfffffff0)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.log.Len(), 1)
}

func TestSerialWithoutHostPort(t *testing.T) {
	m := newMachine()
	_ = m.mem.Write(obj+0x10, 0x11112222)

	for _, op := range []uint32{0x35, 0x37, 0x38, 0x39, 0x3b, 0x42, 0x4b, 0x53} {
		m.call(0x00000600|op, obj, 0x41)
		test.ExpectEquality(t, m.r0(), uint32(0), op)
	}
	test.ExpectEquality(t, m.prim.SerialLocation(), uint32(0x11112222))
	test.ExpectEquality(t, m.log.Len(), 0)
}

func TestSerialHostPort(t *testing.T) {
	const location = 0x6578746d

	m := newMachine()
	ports := serial.NewPorts()
	test.DemandSuccess(t, ports.Add(serial.NewLoopback(location, nil)))
	m.emu.ports = ports
	_ = m.mem.Write(obj+0x10, location)

	// RxBufFull
	m.call(0x00000639, obj)
	test.ExpectEquality(t, m.r0(), uint32(0))

	// PutByte
	m.call(0x00000635, obj, 0x41)
	m.call(0x00000635, obj, 0x42)
	test.ExpectEquality(t, m.r0(), uint32(0))

	m.call(0x00000639, obj)
	test.ExpectEquality(t, m.r0(), uint32(1))

	// GetByte
	m.call(0x00000637, obj)
	test.ExpectEquality(t, m.r0(), uint32(0x41))

	// GetByteAndStatus
	m.call(0x00000651, obj, data)
	test.ExpectEquality(t, m.r0(), uint32(0x42))
	test.ExpectEquality(t, m.word(data)&serial.RxCharAvailable, uint32(0))

	m.call(0x00000639, obj)
	test.ExpectEquality(t, m.r0(), uint32(0))

	// TxBufEmpty
	m.call(0x00000638, obj)
	test.ExpectEquality(t, m.r0(), uint32(1))

	// a different location is not connected
	_ = m.mem.Write(obj+0x10, location+1)
	m.call(0x00000638, obj)
	test.ExpectEquality(t, m.r0(), uint32(0))
}

func TestBattery(t *testing.T) {
	m := newMachine()

	const status = ram + 0x100
	m.call(0x00000307, 0xff, 0, status)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.word(status), uint32(0x00000003))
	test.ExpectEquality(t, m.word(status+8), uint32(0x00000064))
	test.ExpectEquality(t, m.word(status+12*4), uint32(0x001a8d79))
	test.ExpectEquality(t, m.word(status+13*4), uint32(0))

	m.call(0x00000308, 0xff, 0, status)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.word(status+4), uint32(0x0c97d000))
	test.ExpectEquality(t, m.word(status+12*4), uint32(0x07d3b000))

	m.call(0x00000306, 0xff)
	test.ExpectEquality(t, m.r0(), uint32(0))
}
