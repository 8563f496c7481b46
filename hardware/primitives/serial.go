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

package primitives

import (
	"github.com/jetsetilly/goeinstein/hardware/serial"
)

// opcodes below this value belong to the Voyager serial chip, which is
// emulated at the hardware level and not through native primitives.
const serialFirstOpcode = 0x30

// offset of the location ID in the serial chip object pointed to by R0.
const serialLocationOffset = 0x10

// serialOp is a serial chip operation that is passed to the host port when
// there is one for the location.
type serialOp func(p *Primitives, hp serial.HostPort)

func newSerialClass() *deviceClass {
	cls := &deviceClass{
		name:      "serial",
		logBit:    1 << 6,
		intercept: serialIntercept,
		opcodes: map[uint8]opcode{
			0x31: {name: "New", fn: noResult},
		},
	}

	// operations that are no more than an acknowledgement
	for op, name := range map[uint8]string{
		0x32: "Delete",
		0x33: "InstallChipHandler",
		0x34: "RemoveChipHandler",
		0x36: "ResetTxBEmpty",
		0x43: "SetInterruptEnable",
		0x44: "Reset",
		0x45: "SetBreak",
		0x47: "SetIOParms",
		0x48: "Reconfigure",
		0x49: "Init",
		0x4a: "CardRemoved",
		0x4c: "InitByOption",
		0x4d: "ProcessOption",
		0x4e: "SetSerialMode",
		0x4f: "SysEventNotify",
		0x50: "SetTxDTransceiverEnable",
		0x52: "SetIntSourceEnable",
		0x54: "ConfigureForOutput",
		0x55: "InitTxDMA",
		0x56: "InitRxDMA",
		0x57: "TxDMAControl",
		0x58: "RxDMAControl",
		0x59: "SetSDLCAddress",
		0x5a: "ReEnableReceiver",
		0x5c: "SendControlPacket",
		0x5d: "WaitForPacket",
		0x5e: "WaitForAllSent",
	} {
		cls.opcodes[op] = opcode{name: name, fn: resultZero}
	}

	// operations that are passed to the host port
	for op, s := range map[uint8]struct {
		name string
		fn   serialOp
	}{
		0x35: {"PutByte", func(p *Primitives, hp serial.HostPort) {
			hp.PutByte(uint8(p.reg(1)))
			p.setResult(0)
		}},
		0x37: {"GetByte", func(p *Primitives, hp serial.HostPort) {
			p.setResult(uint32(hp.GetByte()))
		}},
		0x38: {"TxBufEmpty", func(p *Primitives, hp serial.HostPort) {
			p.setResultBool(hp.TxBufEmpty())
		}},
		0x39: {"RxBufFull", func(p *Primitives, hp serial.HostPort) {
			p.setResultBool(hp.RxBufFull())
		}},
		0x3a: {"GetRxErrorStatus", func(p *Primitives, hp serial.HostPort) {
			p.setResult(hp.GetRxErrorStatus())
		}},
		0x3b: {"GetSerialStatus", func(p *Primitives, hp serial.HostPort) {
			p.setResult(hp.GetSerialStatus())
		}},
		0x3c: {"ResetSerialStatus", func(p *Primitives, hp serial.HostPort) {
			hp.ResetSerialStatus()
			p.setResult(0)
		}},
		0x3d: {"SetSerialOutputs", func(p *Primitives, hp serial.HostPort) {
			hp.SetSerialOutputs(p.reg(1))
			p.setResult(0)
		}},
		0x3e: {"ClearSerialOutputs", func(p *Primitives, hp serial.HostPort) {
			hp.ClearSerialOutputs(p.reg(1))
			p.setResult(0)
		}},
		0x3f: {"GetSerialOutputs", func(p *Primitives, hp serial.HostPort) {
			p.setResult(hp.GetSerialOutputs())
		}},
		0x40: {"PowerOff", func(p *Primitives, hp serial.HostPort) {
			hp.PowerOff()
			p.setResult(0)
		}},
		0x41: {"PowerOn", func(p *Primitives, hp serial.HostPort) {
			hp.PowerOn()
			p.setResult(0)
		}},
		0x42: {"PowerIsOn", func(p *Primitives, hp serial.HostPort) {
			p.setResultBool(hp.PowerIsOn())
		}},
		0x46: {"SetSpeed", func(p *Primitives, hp serial.HostPort) {
			p.setResult(hp.SetSpeed(p.reg(1)))
		}},
		0x4b: {"GetFeatures", func(p *Primitives, hp serial.HostPort) {
			p.setResult(hp.GetFeatures())
		}},
		0x51: {"GetByteAndStatus", func(p *Primitives, hp serial.HostPort) {
			b, status := hp.GetByteAndStatus()
			p.write(p.reg(1), status)
			p.setResult(uint32(b))
		}},
		0x53: {"AllSent", func(p *Primitives, hp serial.HostPort) {
			p.setResultBool(hp.AllSent())
		}},
		0x5b: {"LinkIsFree", func(p *Primitives, hp serial.HostPort) {
			p.setResultBool(hp.LinkIsFree())
		}},
	} {
		cls.opcodes[op] = opcode{name: s.name, fn: serialHostOp(s.fn)}
	}

	return cls
}

// the location ID is read for every opcode at or above serialFirstOpcode,
// including unknown opcodes.
func serialIntercept(p *Primitives) bool {
	if uint8(p.instruction) < serialFirstOpcode {
		p.setResult(0)
		return false
	}

	loc, err := p.mem.ReadAligned(p.reg(0) + serialLocationOffset)
	if err != nil {
		p.diagnostic("%v (pc=%08x)", err, p.reg(regPC))
	}
	p.serialLocation = loc
	return true
}

// serialHostOp returns a handler that calls fn if there is a host port for the
// location. otherwise the handler returns zero.
func serialHostOp(fn serialOp) handler {
	return func(p *Primitives) {
		if ports := p.emu.SerialPorts(); ports != nil {
			if hp := ports.Get(p.serialLocation); hp != nil {
				fn(p, hp)
				return
			}
		}
		p.setResult(0)
	}
}

// SerialLocation returns the location ID of the most recent serial chip
// operation.
func (p *Primitives) SerialLocation() uint32 {
	return p.serialLocation
}
