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

// the tablet resolution written by GetTabletResolution.
const tabletResolution = 0x03200000

func newTabletClass() *deviceClass {
	return &deviceClass{
		name:   "tablet",
		logBit: 1 << 5,
		opcodes: map[uint8]opcode{
			0x01: {name: "New", fn: noResult},
			0x02: {name: "Delete", fn: resultZero},
			0x03: {name: "Init", fn: tabletInit},
			0x04: {name: "WakeUp", fn: tabletWakeUp},
			0x05: {name: "ShutDown", fn: tabletShutDown},
			0x06: {name: "TabletIdle", fn: resultZero},
			0x07: {name: "GetSampleRate", fn: tabletGetSampleRate},
			0x08: {name: "SetSampleRate", fn: tabletSetSampleRate, quiet: true},
			0x09: {name: "GetTabletCalibration", fn: tabletGetCalibration},
			0x0a: {name: "SetTabletCalibration", fn: tabletSetCalibration},
			0x0b: {name: "SetDoingCalibration", fn: resultZero},
			0x0c: {name: "GetTabletResolution", fn: tabletGetResolution},
			0x0d: {name: "TabSetOrientation", fn: tabletSetOrientation},
			0x0e: {name: "GetTabletState", fn: tabletGetState, quiet: true},
			0x0f: {name: "GetFingerInputState", fn: tabletFingerInput},
			0x10: {name: "SetFingerInputState", fn: tabletFingerInput},
			0x11: {name: "RecalibrateTabletAfterRotate", fn: resultZero},
			0x12: {name: "TabletNeedsRecalibration", fn: resultZero},
			0x13: {name: "StartBypassTablet", fn: tabletStartBypass},
			0x14: {name: "StopBypassTablet", fn: tabletStopBypass},
			0x15: {name: "ReturnTabletToConsciousness", fn: resultZero},
			0x16: {name: "NativeGetSample", fn: tabletGetSample, quiet: true},
		},
	}
}

// Init sets the default calibration. R0 is not changed.
func tabletInit(p *Primitives) {
	p.tablet = defaultCalibration
	p.sampleRate = defaultSampleRate
}

func tabletWakeUp(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	scr.WakeUpTablet()
	p.setResult(0)
}

func tabletShutDown(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	scr.ShutDownTablet()
	p.setResult(0)
}

func tabletGetSampleRate(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	p.setResult(scr.TabletSampleRate())
}

func tabletSetSampleRate(p *Primitives) {
	p.trace("SetSampleRate(%08x)", p.reg(1))
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	scr.SetTabletSampleRate(p.reg(1))
	p.setResult(0)
}

// the fourth word of the calibration is written to offset 0x10 twice. the
// word at offset 0x0c is never written and the fifth word is never
// transferred. the guest driver is known to work with this layout so it is
// kept. R0 is not changed.
func tabletGetCalibration(p *Primitives) {
	addr := p.reg(1)
	p.write(addr, p.tablet.unknown00)
	p.write(addr+0x04, p.tablet.unknown04)
	p.write(addr+0x08, p.tablet.unknown08)
	p.write(addr+0x10, p.tablet.unknown0C)
	p.write(addr+0x10, p.tablet.unknown0C)
}

// the inverse of tabletGetCalibration, including the layout quirk.
func tabletSetCalibration(p *Primitives) {
	addr := p.reg(1)
	p.tablet.unknown00 = p.read(addr)
	p.tablet.unknown04 = p.read(addr + 0x04)
	p.tablet.unknown08 = p.read(addr + 0x08)
	p.tablet.unknown0C = p.read(addr + 0x10)
	p.tablet.unknown0C = p.read(addr + 0x10)
}

func tabletGetResolution(p *Primitives) {
	p.write(p.reg(1), tabletResolution)
	p.write(p.reg(2), tabletResolution)
}

func tabletSetOrientation(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	scr.SetTabletOrientation(p.reg(1))
	p.setResult(0)
}

func tabletGetState(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	p.setResult(scr.TabletState())
}

func tabletFingerInput(p *Primitives) {
	p.setError(ErrTabletFingerInput)
}

func tabletStartBypass(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	scr.StartBypassTablet()
	p.setResult(0)
}

func tabletStopBypass(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	scr.StopBypassTablet()
	p.setResult(0)
}

// the sample and its time are only written if there is a sample.
func tabletGetSample(p *Primitives) {
	scr := p.emu.ScreenManager()
	if scr == nil {
		p.missing("screen manager")
		return
	}
	sample, tm, ok := scr.GetSample()
	if ok {
		p.write(p.reg(1), sample)
		p.write(p.reg(2), tm)
	}
	p.setResultBool(ok)
}
