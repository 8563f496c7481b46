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

// screen feature IDs for GetFeature and SetFeature.
const (
	featureContrast    = 0x00
	featureBacklight   = 0x02
	featureOrientation = 0x04
)

func newScreenClass() *deviceClass {
	return &deviceClass{
		name:   "screen",
		logBit: 1 << 4,
		opcodes: map[uint8]opcode{
			0x01: {name: "Delete", fn: resultZero},
			0x03: {name: "GetScreenInfo", fn: screenGetScreenInfo},
			0x04: {name: "PowerInit", fn: resultZero},
			0x05: {name: "PowerOn", fn: screenPowerOn},
			0x06: {name: "PowerOff", fn: screenPowerOff},
			0x07: {name: "Blit", fn: screenBlit, quiet: true},
			0x08: {name: "GetFeature", fn: screenGetFeature, quiet: true},
			0x09: {name: "SetFeature", fn: screenSetFeature, quiet: true},
			0x0a: {name: "AutoAdjustFeatures", fn: resultZero},
			0x0b: {name: "DoubleBlit", fn: screenDoubleBlit, quiet: true},
			0x0c: {name: "EnterIdleMode", fn: resultZero},
			0x0d: {name: "ExitIdleMode", fn: resultZero},
		},
	}
}

func screenGetScreenInfo(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	p.writeWords(p.reg(1),
		scr.ScreenHeight(),
		scr.ScreenWidth(),
		scr.BitsPerPixel(),
		0x00000037,
		0x00640064, // resolution
		0x00000020,
		0x00000020,
	)
	p.setResult(0)
}

func screenPowerOn(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	scr.PowerOnScreen()
	p.setResult(0)
}

func screenPowerOff(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	scr.PowerOffScreen()
	p.setResult(0)
}

// readRect reads the two words of a rectangle from guest memory.
func (p *Primitives) readRect(address uint32) Rect {
	tl := p.read(address)
	br := p.read(address + 4)
	return Rect{
		Top:    uint16(tl >> 16),
		Left:   uint16(tl),
		Bottom: uint16(br >> 16),
		Right:  uint16(br),
	}
}

func screenBlit(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}

	mode := p.stackArg()
	src := p.readRect(p.reg(2))
	dst := p.readRect(p.reg(3))
	p.trace("Blit(%08x, %v, %v, %d)", p.reg(1), src, dst, mode)

	scr.Blit(p.reg(1), src, dst, mode)
	p.setResult(0)
}

func screenDoubleBlit(p *Primitives) {
	p.trace("DoubleBlit(%08x, %08x, %08x)", p.reg(1), p.reg(2), p.reg(3))
	p.setResult(0)
}

// unknown features return all bits set.
func screenGetFeature(p *Primitives) {
	feature := p.reg(1)
	p.trace("GetFeature(%08x)", feature)

	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}

	switch feature {
	case featureContrast:
		p.setResult(scr.Contrast())
	case 0x01:
		p.setResult(1)
	case featureBacklight:
		p.setResultBool(scr.Backlight())
	case 0x03:
		p.setResult(0)
	case featureOrientation:
		p.setResult(scr.Orientation())
	case 0x05:
		p.setResult(0x0a)
	default:
		p.setResult(0xffffffff)
	}
}

// unknown features are ignored. R0 is not changed.
func screenSetFeature(p *Primitives) {
	feature, value := p.reg(1), p.reg(2)
	p.trace("SetFeature(%08x, %08x)", feature, value)

	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}

	switch feature {
	case featureContrast:
		scr.SetContrast(value != 0)
	case featureBacklight:
		scr.SetBacklight(value != 0)
	case featureOrientation:
		scr.SetOrientation(value)
	}
}
