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

// the longest library or symbol name read from guest memory.
const hostCallNameLength = 256

func newHostCallClass() *deviceClass {
	cls := &deviceClass{
		name:   "hostcall",
		logBit: 1 << 9,
		available: func(p *Primitives) bool {
			hc := p.emu.HostCalls()
			return hc != nil && hc.Available()
		},
		unsupported: func(p *Primitives) {
			p.diagnostic("native primitives not supported on this platform")
		},
		opcodes: map[uint8]opcode{
			0x01: {name: "New", fn: noResult},
			0x02: {name: "Delete", fn: noResult},
			0x03: {name: "OpenLib", fn: hostCallOpenLib},
			0x04: {name: "CloseLib", fn: hostCallCloseLib},
			0x05: {name: "PrepareFFIStructure", fn: hostCallPrepare},
			0x06: {name: "DisposeFFIStructure", fn: hostCallDispose},
			0x07: {name: "GetErrorMessage", fn: hostCallGetErrorMessage},
			0x1b: {name: "SetArgValue_string", fn: hostCallSetArgString},
			0x1c: {name: "SetArgValue_binary", fn: hostCallSetArgBinary},
			0x1d: {name: "SetArgValue_pointer", fn: hostCallSetArgInteger(func(v uint32) uint64 { return uint64(v) })},
			0x20: {name: "SetResultType", fn: hostCallSetResultType},
			0x21: {name: "GetOutArgValue_string", fn: hostCallGetOutArg(true)},
			0x22: {name: "GetOutArgValue_binary", fn: hostCallGetOutArg(false)},
			0x30: {name: "Call_void", fn: hostCallCallVoid},
			0x31: {name: "Call_int", fn: hostCallCallInt},
			0x32: {name: "Call_real", fn: hostCallUnsupportedType},
			0x33: {name: "Call_string", fn: hostCallCallString},
			0x34: {name: "Call_pointer", fn: hostCallCallInt},
			0x40: {name: "GetErrno", fn: hostCallGetErrno},
		},
	}

	// integer arguments are sign or zero extended to 64 bits
	ints := map[uint8]struct {
		name   string
		extend func(uint32) uint64
	}{
		0x10: {"SetArgValue_uint8", func(v uint32) uint64 { return uint64(uint8(v)) }},
		0x11: {"SetArgValue_sint8", func(v uint32) uint64 { return uint64(int64(int8(v))) }},
		0x12: {"SetArgValue_uint16", func(v uint32) uint64 { return uint64(uint16(v)) }},
		0x13: {"SetArgValue_sint16", func(v uint32) uint64 { return uint64(int64(int16(v))) }},
		0x14: {"SetArgValue_uint32", func(v uint32) uint64 { return uint64(v) }},
		0x15: {"SetArgValue_sint32", func(v uint32) uint64 { return uint64(int64(int32(v))) }},
	}
	for op, i := range ints {
		cls.opcodes[op] = opcode{name: i.name, fn: hostCallSetArgInteger(i.extend)}
	}

	// argument types that can not be passed from the guest
	for op, name := range map[uint8]string{
		0x16: "SetArgValue_uint64",
		0x17: "SetArgValue_sint64",
		0x18: "SetArgValue_float",
		0x19: "SetArgValue_double",
		0x1a: "SetArgValue_longdouble",
	} {
		cls.opcodes[op] = opcode{name: name, fn: hostCallUnsupportedType}
	}

	return cls
}

// hostCallError logs an error from the host call bridge and returns zero to
// the guest.
func (p *Primitives) hostCallError(err error) {
	p.diagnostic("%v", err)
	p.setResult(0)
}

func hostCallOpenLib(p *Primitives) {
	name := p.readString(p.reg(1), hostCallNameLength)
	handle, err := p.emu.HostCalls().OpenLib(name)
	if err != nil {
		p.hostCallError(err)
		return
	}
	p.setResult(handle)
}

func hostCallCloseLib(p *Primitives) {
	if err := p.emu.HostCalls().CloseLib(p.reg(1)); err != nil {
		p.hostCallError(err)
		return
	}
	p.setResult(0)
}

func hostCallPrepare(p *Primitives) {
	symbol := p.readString(p.reg(2), hostCallNameLength)
	call, err := p.emu.HostCalls().PrepareFFIStructure(p.reg(1), symbol, p.reg(3))
	if err != nil {
		p.hostCallError(err)
		return
	}
	p.setResult(call)
}

func hostCallDispose(p *Primitives) {
	p.emu.HostCalls().DisposeFFIStructure(p.reg(1))
	p.setResult(0)
}

// the message is written as a null terminated string into the buffer at R2.
// the guest buffer is assumed to be large enough for hostCallNameLength bytes.
func hostCallGetErrorMessage(p *Primitives) {
	msg := p.emu.HostCalls().GetErrorMessage(p.reg(1))
	if len(msg) >= hostCallNameLength {
		msg = msg[:hostCallNameLength-1]
	}
	p.writeBytes(p.reg(2), append([]byte(msg), 0))
	p.setResult(0)
}

func hostCallSetArgInteger(extend func(uint32) uint64) handler {
	return func(p *Primitives) {
		if err := p.emu.HostCalls().SetArgValue(p.reg(1), p.reg(2), extend(p.reg(3))); err != nil {
			p.hostCallError(err)
			return
		}
		p.setResult(0)
	}
}

func hostCallUnsupportedType(p *Primitives) {
	p.diagnostic("argument or result type not supported %08x (pc=%08x)", p.instruction, p.reg(regPC))
	p.setResult(0)
}

// the string argument is read from guest memory. the size on the stack is the
// size of the guest buffer.
func hostCallSetArgString(p *Primitives) {
	size := p.stackArg()
	s := p.readString(p.reg(3), int(size)+1)
	if err := p.emu.HostCalls().SetArgBuffer(p.reg(1), p.reg(2), append([]byte(s), 0)); err != nil {
		p.hostCallError(err)
		return
	}
	p.setResult(0)
}

func hostCallSetArgBinary(p *Primitives) {
	size := p.stackArg()
	if !p.transferSize(size) {
		p.setResult(0)
		return
	}
	data := p.readBytes(p.reg(3), size)
	if err := p.emu.HostCalls().SetArgBuffer(p.reg(1), p.reg(2), data); err != nil {
		p.hostCallError(err)
		return
	}
	p.setResult(0)
}

func hostCallSetResultType(p *Primitives) {
	if err := p.emu.HostCalls().SetResultType(p.reg(1), p.reg(2)); err != nil {
		p.hostCallError(err)
		return
	}
	p.setResult(0)
}

// the buffer of an argument is copied back into guest memory after the call.
// strings are null terminated and truncated to fit the guest buffer.
func hostCallGetOutArg(str bool) handler {
	return func(p *Primitives) {
		size := p.stackArg()
		data, err := p.emu.HostCalls().GetOutArgValue(p.reg(1), p.reg(2))
		if err != nil {
			p.hostCallError(err)
			return
		}

		if str {
			if size == 0 {
				p.setResult(0)
				return
			}
			for i, b := range data {
				if b == 0x00 {
					data = data[:i]
					break // for loop
				}
			}
			if uint32(len(data)) >= size {
				data = data[:size-1]
			}
			data = append(data, 0)
		} else if uint32(len(data)) > size {
			data = data[:size]
		}

		p.writeBytes(p.reg(3), data)
		p.setResult(0)
	}
}

func hostCallCallVoid(p *Primitives) {
	if _, err := p.emu.HostCalls().Call(p.reg(1)); err != nil {
		p.hostCallError(err)
		return
	}
	p.setResult(0)
}

// the result is truncated to 32 bits.
func hostCallCallInt(p *Primitives) {
	r, err := p.emu.HostCalls().Call(p.reg(1))
	if err != nil {
		p.hostCallError(err)
		return
	}
	p.setResult(uint32(r))
}

func hostCallCallString(p *Primitives) {
	s, err := p.emu.HostCalls().CallString(p.reg(1))
	if err != nil {
		p.hostCallError(err)
		return
	}

	size := p.reg(3)
	if size > 0 {
		if uint32(len(s)) >= size {
			s = s[:size-1]
		}
		p.writeBytes(p.reg(2), append([]byte(s), 0))
	}
	p.setResult(0)
}

func hostCallGetErrno(p *Primitives) {
	p.setResult(p.emu.HostCalls().GetErrno())
}
