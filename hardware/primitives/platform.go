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

// the subsystem number of the flash memory in the power subsystem opcodes.
const flashSubsystem = 0x1d

// EmulatorVersion is written into the gestalt record by the platform driver.
const EmulatorVersion = 0x00010000

// the longest log message accepted from the guest, including the terminator.
const guestLogLength = 74

func newPlatformClass() *deviceClass {
	return &deviceClass{
		name:   "platform",
		logBit: 1 << 1,
		opcodes: map[uint8]opcode{
			0x01: {name: "New", fn: noResult},
			0x02: {name: "Delete", fn: resultZero},
			0x03: {name: "Init", fn: resultZero},
			0x04: {name: "BacklightTrigger", fn: resultZero},
			0x05: {name: "RegisterPowerSwitchInterrupt", fn: resultZero},
			0x06: {name: "EnableSysPowerInterrupt", fn: resultZero},
			0x07: {name: "InterruptHandler", fn: resultZero},
			0x08: {name: "TimerInterruptHandler", fn: resultZero},
			0x09: {name: "ResetZAPStoreCheck", fn: resultZero},
			0x0a: {name: "PowerOnSubsystem", fn: platformPowerOnSubsystem, quiet: true},
			0x0b: {name: "PowerOffSubsystem", fn: platformPowerOffSubsystem, quiet: true},
			0x0c: {name: "PowerOffAllSubsystems", fn: platformPowerOffAllSubsystems},
			0x0d: {name: "PauseSystem", fn: platformPauseSystem, quiet: true},
			0x0e: {name: "PowerOffSystem", fn: platformPowerOffSystem},
			0x0f: {name: "PowerOnSystem", fn: platformPowerOnSystem},
			0x10: {name: "TranslatePowerEvent", fn: platformTranslatePowerEvent, quiet: true},
			0x11: {name: "GetPCMCIAPowerSpec", fn: platformGetPCMCIAPowerSpec, quiet: true},
			0x12: {name: "PowerOnDeviceCheck", fn: platformPowerOnDeviceCheck, quiet: true},
			0x13: {name: "SetSubsystemPower", fn: platformSetSubsystemPower, quiet: true},
			0x14: {name: "GetSubsystemPower", fn: platformGetSubsystemPower, quiet: true},
			0x15: {name: "GetNextEvent", fn: platformGetNextEvent, quiet: true},
			0x16: {name: "BreakInMonitor", fn: platformBreakInMonitor},
			0x17: {name: "FillGestaltEmulatorInfo", fn: platformFillGestaltEmulatorInfo},
			0x18: {name: "LockEventQueue", fn: platformLockEventQueue, quiet: true},
			0x19: {name: "UnlockEventQueue", fn: platformUnlockEventQueue, quiet: true},
			0x1a: {name: "Log", fn: platformLog, quiet: true},
			0x1b: {name: "GetUserInfo", fn: platformGetUserInfo, quiet: true},
			0x1c: {name: "GetHostTimeZone", fn: platformGetHostTimeZone, quiet: true},
			0x1d: {name: "CalibrateTablet", fn: platformCalibrateTablet},
			0x1e: {name: "Quit", fn: platformQuit},
			0x1f: {name: "DisposeBuffer", fn: platformDisposeBuffer, quiet: true},
			0x20: {name: "CopyBufferData", fn: platformCopyBufferData, quiet: true},
			0x21: {name: "OpenEinsteinMenu", fn: platformOpenEinsteinMenu},
			0x22: {name: "NewtonScriptCall", fn: platformNewtonScriptCall},
		},
	}
}

func platformPowerOnSubsystem(p *Primitives) {
	sub := p.reg(1)
	p.trace("PowerOnSubsystem(%08x)", sub)
	if sub == flashSubsystem {
		p.mem.PowerOnFlash()
	}
	p.setResult(0)
}

func platformPowerOffSubsystem(p *Primitives) {
	sub := p.reg(1)
	p.trace("PowerOffSubsystem(%08x)", sub)
	if sub == flashSubsystem {
		p.mem.PowerOffFlash()
	}
	p.setResult(0)
}

func platformPowerOffAllSubsystems(p *Primitives) {
	p.mem.PowerOffFlash()
	p.setResult(0)
}

func platformPauseSystem(p *Primitives) {
	p.emu.PauseSystem()
	p.setResult(0)
}

// the system is paused when powered off unless a quit has been requested, in
// which case the power off was in response to the power switch event sent
// by the Quit opcode.
func platformPowerOffSystem(p *Primitives) {
	p.mem.PowerOffFlash()
	if plt := p.emu.PlatformManager(); plt != nil {
		plt.PowerOff()
	}
	if p.quitPending {
		p.emu.Quit()
	} else {
		p.emu.PauseSystem()
	}
	p.setResult(0)
}

func platformPowerOnSystem(p *Primitives) {
	p.mem.PowerOnFlash()
	if plt := p.emu.PlatformManager(); plt != nil {
		plt.PowerOn()
	}
	p.setResult(0)
}

func platformTranslatePowerEvent(p *Primitives) {
	p.trace("TranslatePowerEvent(%08x)", p.reg(1))
	p.setResult(0)
}

func platformGetPCMCIAPowerSpec(p *Primitives) {
	slot := p.reg(1)
	p.trace("GetPCMCIAPowerSpec(%08x)", slot)

	switch slot {
	case 0:
		p.write(p.reg(2), 5)
		p.setResult(0)
	case 1:
		p.write(p.reg(2), 7)
		p.setResult(0)
	default:
		p.setError(ErrBadPCMCIAPowerSpec)
	}
}

// the first device check happens once the guest has finished booting. the
// boot progress overlay is removed and any packages waiting on the host are
// installed.
func platformPowerOnDeviceCheck(p *Primitives) {
	p.trace("PowerOnDeviceCheck(%08x)", p.reg(1))

	if p.progress.firstPause {
		p.progress.firstPause = false

		if scr := p.emu.ScreenManager(); scr != nil && scr.OverlayIsOn() {
			scr.OverlayOff()
		}
		if plt := p.emu.PlatformManager(); plt != nil {
			plt.InstallNewPackages()
		}
	}

	p.setResult(0)
}

func platformSetSubsystemPower(p *Primitives) {
	p.trace("SetSubsystemPower(%08x, %08x)", p.reg(1), p.reg(2))
	p.setResult(0)
}

func platformGetSubsystemPower(p *Primitives) {
	p.trace("GetSubsystemPower(%08x)", p.reg(1))
	p.write(p.reg(2), 0)
	p.setResult(0)
}

func platformGetNextEvent(p *Primitives) {
	plt := p.emu.PlatformManager()
	if plt == nil {
		p.missing("platform manager")
		return
	}
	p.setResultBool(plt.GetNextEvent(p.reg(1)))
}

func platformBreakInMonitor(p *Primitives) {
	p.emu.BreakInMonitor()
}

func platformFillGestaltEmulatorInfo(p *Primitives) {
	p.write(p.reg(1), EmulatorVersion)
	p.setResult(0)
}

func platformLockEventQueue(p *Primitives) {
	if plt := p.emu.PlatformManager(); plt != nil {
		plt.LockEventQueue()
	}
}

func platformUnlockEventQueue(p *Primitives) {
	if plt := p.emu.PlatformManager(); plt != nil {
		plt.UnlockEventQueue()
	}
}

func platformLog(p *Primitives) {
	p.trace("%s", p.readString(p.reg(1), guestLogLength))
}

func platformGetUserInfo(p *Primitives) {
	plt := p.emu.PlatformManager()
	if plt == nil {
		p.missing("platform manager")
		return
	}
	p.setResult(plt.GetUserInfo(p.reg(1), p.reg(2), p.reg(3)))
}

func platformGetHostTimeZone(p *Primitives) {
	plt := p.emu.PlatformManager()
	if plt == nil {
		p.missing("platform manager")
		return
	}
	p.setResult(plt.HostTimeZone())
}

func platformCalibrateTablet(p *Primitives) {
	if plt := p.emu.PlatformManager(); plt != nil {
		plt.CalibrateTablet()
	}
}

// the first quit request asks the guest to power down by sending a power
// switch event. the guest will eventually call PowerOffSystem. a second
// request forces the quit.
func platformQuit(p *Primitives) {
	if p.quitPending {
		p.emu.Quit()
		return
	}

	p.quitPending = true
	if plt := p.emu.PlatformManager(); plt != nil {
		plt.SendPowerSwitchEvent()
	} else {
		p.emu.Quit()
	}
}

func platformDisposeBuffer(p *Primitives) {
	plt := p.emu.PlatformManager()
	if plt == nil {
		p.missing("platform manager")
		return
	}
	p.setResult(plt.DisposeBuffer(p.reg(1)))
}

func platformCopyBufferData(p *Primitives) {
	plt := p.emu.PlatformManager()
	if plt == nil {
		p.missing("platform manager")
		return
	}
	p.setResult(plt.CopyBufferData(p.reg(1), p.reg(2), p.reg(3), p.stackArg()))
}

func platformOpenEinsteinMenu(p *Primitives) {
	if plt := p.emu.PlatformManager(); plt != nil {
		plt.OpenEinsteinMenu()
	}
}

func platformNewtonScriptCall(p *Primitives) {
	plt := p.emu.PlatformManager()
	if plt == nil {
		p.missing("platform manager")
		return
	}
	p.setResult(plt.NewtonScriptCall(p.reg(0), p.reg(1), p.reg(2)))
}
