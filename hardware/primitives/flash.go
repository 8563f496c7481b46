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

// the virtual table address of the flash range object tells us whether the
// flash is accessed 32 bits at a time. these are the 32 bit tables of the
// MP2100D, MP2x00US and eMate 300 ROMs respectively. the corresponding 16 bit
// tables are 0x0001e3c8, 0x0001e3bc and 0x0001e168.
var flash32BitTables = map[uint32]bool{
	0x0001e3d4: true,
	0x0001e3e0: true,
	0x0001e180: true,
}

// the flash identification record returned by Identify.
var flashIdentity = []uint32{
	0x00000089,
	0x00000000,
	0x00000002,
	0x00000002,
	0x00200000,
	0x00010000,
}

// the byte lane masks that Identify recognises.
var flashLanes = map[uint32]bool{
	0xff000000: true,
	0x00ff0000: true,
	0x0000ff00: true,
	0x000000ff: true,
}

func newFlashClass() *deviceClass {
	return &deviceClass{
		name:   "flash",
		logBit: 1 << 0,
		opcodes: map[uint8]opcode{
			0x01: {name: "Identify", fn: flashIdentify, quiet: true},
			0x02: {name: "CleanUp", fn: resultZero},
			0x03: {name: "Init", fn: resultZero},
			0x04: {name: "InitializeDriverData", fn: resultZero},
			0x05: {name: "CleanUpDriverData", fn: resultZero},
			0x06: {name: "StartReadingArray", fn: resultZero},
			0x07: {name: "DoneReadingArray", fn: resultZero},
			0x08: {name: "Write", fn: flashWrite, quiet: true},
			0x09: {name: "StartErase", fn: flashStartErase, quiet: true},
			0x0a: {name: "ResetBlockStatus", fn: resultZero},
			0x0b: {name: "IsEraseComplete", fn: flashIsEraseComplete},
			0x0c: {name: "LockBlock", fn: resultZero},
			0x0d: {name: "BeginWrite", fn: flashBeginWrite, quiet: true},
			0x0e: {name: "ReportWriteResult", fn: resultZero},
			0x0f: {name: "DoWrite", fn: flashDoWrite, quiet: true},
			0x10: {name: "DoErase", fn: flashDoErase, quiet: true},
		},
	}
}

// resultZero is the handler for opcodes that do nothing but succeed.
func resultZero(p *Primitives) {
	p.setResult(0)
}

// noResult is the handler for opcodes that do nothing and leave R0 alone.
func noResult(_ *Primitives) {
}

// flashResult puts the result of a flash operation into R0.
func (p *Primitives) flashResult(err error) {
	if err != nil {
		p.trace("%v", err)
		p.setError(ErrFlashAddressOutOfRange)
		return
	}
	p.setResult(0)
}

// is32Bits reads the virtual table of the flash range object.
func (p *Primitives) is32Bits(flashRange uint32) bool {
	return flash32BitTables[p.read(flashRange)]
}

func flashIdentify(p *Primitives) {
	mask := p.reg(2)
	id := p.reg(3)
	p.trace("Identify(%08x, %08x, %08x)", p.reg(1), mask, id)

	if !flashLanes[mask] {
		p.setResult(0)
		return
	}

	p.setResult(1)
	p.writeWords(id, flashIdentity...)
}

func flashWrite(p *Primitives) {
	wide := p.is32Bits(p.stackArg())
	word, mask, addr := p.reg(1), p.reg(2), p.reg(3)
	p.trace("Write(data=%08x, mask=%08x, addr=%08x, 32bits=%v)", word, mask, addr, wide)

	if wide {
		p.flashResult(p.mem.WriteToFlash32Bits(word, mask, addr))
	} else {
		p.flashResult(p.mem.WriteToFlash16Bits(word, mask, addr))
	}
}

func flashStartErase(p *Primitives) {
	wide := p.is32Bits(p.reg(1))
	addr := p.reg(2)
	p.trace("StartErase(%08x, 32bits=%v)", addr, wide)

	if wide {
		p.flashResult(p.mem.EraseFlash(addr, 0x20000))
	} else {
		p.flashResult(p.mem.EraseFlash(addr, 0x10000))
	}
}

// erase is always complete and always successful.
func flashIsEraseComplete(p *Primitives) {
	p.setResult(1)
	p.write(p.reg(3), 0)
}

func flashBeginWrite(p *Primitives) {
	p.trace("BeginWrite(%08x, %08x, %08x)", p.reg(1), p.reg(2), p.reg(3))
	_, err := p.mem.TranslateAndCheckFlashAddress(p.reg(2))
	p.flashResult(err)
}

func flashDoWrite(p *Primitives) {
	p.trace("DoWrite(data=%08x, mask=%08x, addr=%08x, start=%08x)", p.reg(1), p.reg(2), p.reg(3), p.stackArg())
	p.setResult(0)
}

func flashDoErase(p *Primitives) {
	p.trace("DoErase(start=%08x, size=%08x)", p.reg(1), p.reg(2))
	p.flashResult(p.mem.EraseFlash(p.reg(1), p.reg(2)))
}
