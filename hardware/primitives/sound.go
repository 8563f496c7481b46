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

func newSoundClass() *deviceClass {
	return &deviceClass{
		name:   "sound",
		logBit: 1 << 2,
		opcodes: map[uint8]opcode{
			0x03: {name: "SetSoundHardwareInfo", fn: soundSetSoundHardwareInfo},
			0x04: {name: "GetSoundHardwareInfo", fn: soundGetSoundHardwareInfo},
			0x05: {name: "SetOutputBuffers", fn: soundSetOutputBuffers, quiet: true},
			0x06: {name: "SetInputBuffers", fn: soundSetInputBuffers, quiet: true},
			0x07: {name: "ScheduleOutputBuffer", fn: soundScheduleOutputBuffer, quiet: true},
			0x08: {name: "ScheduleInputBuffer", fn: soundScheduleInputBuffer, quiet: true},
			0x09: {name: "PowerOutputOn", fn: resultZero},
			0x0a: {name: "PowerOutputOff", fn: resultZero},
			0x0b: {name: "PowerInputOn", fn: resultZero},
			0x0c: {name: "PowerInputOff", fn: resultZero},
			0x0d: {name: "StartOutput", fn: soundStartOutput},
			0x0e: {name: "StartInput", fn: resultZero},
			0x0f: {name: "StopOutput", fn: soundStopOutput},
			0x10: {name: "StopInput", fn: resultZero},
			0x11: {name: "OutputIsEnabled", fn: resultZero},
			0x12: {name: "InputIsEnabled", fn: resultZero},
			0x13: {name: "OutputIsRunning", fn: soundOutputIsRunning},
			0x14: {name: "InputIsRunning", fn: resultZero},
			0x15: {name: "CurrentOutputPtr", fn: resultZero},
			0x16: {name: "CurrentInputPtr", fn: resultZero},
			0x17: {name: "SetOutputVolume", fn: soundSetOutputVolume, quiet: true},
			0x18: {name: "OutputVolume", fn: soundOutputVolume},
			0x19: {name: "SetInputVolume", fn: soundSetInputVolume, quiet: true},
			0x1a: {name: "InputVolume", fn: soundInputVolume},
			0x1b: {name: "EnableExtSoundSource", fn: resultZero},
			0x1c: {name: "DisableExtSoundSource", fn: resultZero},
			0x1d: {name: "OutputIntHandler", fn: resultZero},
			0x1e: {name: "InputIntHandler", fn: resultZero},
			0x1f: {name: "NativeSetInterruptMask", fn: soundSetInterruptMask, quiet: true},
		},
	}
}

func soundSetSoundHardwareInfo(p *Primitives) {
	p.setError(ErrSoundHardwareInfo)
}

func soundGetSoundHardwareInfo(p *Primitives) {
	p.writeWords(p.reg(1), 1, 1, 1, 0x54600000, 6, 0x10, 1)
	p.setResult(0)
}

// the sizes of the buffers in R2 and on the stack are not used. the size of
// each transfer is given when the buffer is scheduled.
func soundSetOutputBuffers(p *Primitives) {
	p.trace("SetOutputBuffers(%08x, %08x, %08x, %08x)", p.reg(1), p.reg(2), p.reg(3), p.stackArg())
	p.outputBuffer1 = p.reg(1)
	p.outputBuffer2 = p.reg(3)
	p.setResult(0)
}

func soundSetInputBuffers(p *Primitives) {
	p.trace("SetInputBuffers(%08x, %08x, %08x, %08x)", p.reg(1), p.reg(2), p.reg(3), p.stackArg())
	p.inputBuffer1 = p.reg(1)
	p.inputBuffer2 = p.reg(3)
	p.setResult(0)
}

// OutputBuffers returns the addresses of the two output buffers.
func (p *Primitives) OutputBuffers() (uint32, uint32) {
	return p.outputBuffer1, p.outputBuffer2
}

func soundScheduleOutputBuffer(p *Primitives) {
	p.trace("ScheduleOutputBuffer(%08x, %08x)", p.reg(1), p.reg(2))

	snd := p.emu.SoundManager()
	if snd == nil {
		p.missing("sound manager")
		return
	}

	buffer := p.outputBuffer1
	if p.reg(1) != 0 {
		buffer = p.outputBuffer2
	}
	snd.ScheduleOutputBuffer(buffer, p.reg(2))
	p.setResult(0)
}

func soundScheduleInputBuffer(p *Primitives) {
	p.trace("ScheduleInputBuffer(%08x, %08x)", p.reg(1), p.reg(2))

	snd := p.emu.SoundManager()
	if snd == nil {
		p.missing("sound manager")
		return
	}

	buffer := p.inputBuffer1
	if p.reg(1) != 0 {
		buffer = p.inputBuffer2
	}
	snd.ScheduleInputBuffer(buffer, p.reg(2))
	p.setResult(0)
}

func soundStartOutput(p *Primitives) {
	snd := p.emu.SoundManager()
	if snd == nil {
		p.missing("sound manager")
		return
	}
	snd.StartOutput()
	p.setResult(0)
}

func soundStopOutput(p *Primitives) {
	snd := p.emu.SoundManager()
	if snd == nil {
		p.missing("sound manager")
		return
	}
	snd.StopOutput()
	p.setResult(0)
}

func soundOutputIsRunning(p *Primitives) {
	snd := p.emu.SoundManager()
	if snd == nil {
		p.missing("sound manager")
		return
	}
	p.setResultBool(snd.OutputIsRunning())
}

func soundSetOutputVolume(p *Primitives) {
	p.trace("SetOutputVolume(%08x)", p.reg(1))
	snd := p.emu.SoundManager()
	if snd == nil {
		p.missing("sound manager")
		return
	}
	snd.SetOutputVolume(p.reg(1))
	p.setResult(0)
}

func soundOutputVolume(p *Primitives) {
	snd := p.emu.SoundManager()
	if snd == nil {
		p.missing("sound manager")
		return
	}
	p.setResult(snd.OutputVolume())
}

func soundSetInputVolume(p *Primitives) {
	v := p.reg(1)
	p.trace("SetInputVolume(%08x)", v)
	p.inputVolume = uint8(min(v, 0xff))
	p.setResult(0)
}

func soundInputVolume(p *Primitives) {
	p.setResult(uint32(p.inputVolume))
}

func soundSetInterruptMask(p *Primitives) {
	p.trace("NativeSetInterruptMask(%08x, %08x)", p.reg(1), p.reg(2))
	snd := p.emu.SoundManager()
	if snd == nil {
		p.missing("sound manager")
		return
	}
	snd.SetInterruptMask(p.reg(1), p.reg(2))
}
