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

// Memory is the guest address space as seen by the native primitives. Errors
// are address or flash faults.
type Memory interface {
	Read(address uint32) (uint32, error)
	ReadAligned(address uint32) (uint32, error)
	ReadB(address uint32) (uint8, error)
	Write(address uint32, value uint32) error
	WriteB(address uint32, value uint8) error
	ReadString(address uint32, max int) (string, error)

	TranslateAndCheckFlashAddress(address uint32) (uint32, error)
	EraseFlash(address uint32, length uint32) error
	WriteToFlash32Bits(word uint32, mask uint32, address uint32) error
	WriteToFlash16Bits(word uint32, mask uint32, address uint32) error
	PowerOnFlash()
	PowerOffFlash()
}

// Processor gives access to the guest registers.
type Processor interface {
	GetRegister(n int) uint32
	SetRegister(n int, v uint32)
}

// VirtualizedCalls executes the virtualized call with the ID.
type VirtualizedCalls interface {
	Execute(id uint32)
}

// SerialPorts returns the host port for a serial location ID. A nil HostPort
// means that the location is not connected to the host.
type SerialPorts interface {
	Get(location uint32) serial.HostPort
}

// Emulator is the machine that the native primitives are running in.
//
// Any of the managers may be nil (the interface value must be nil and not a
// nil pointer of a concrete type). Handlers that need a missing manager log a
// diagnostic and return zero to the guest.
type Emulator interface {
	Processor() Processor
	NetworkManager() NetworkManager
	SoundManager() SoundManager
	ScreenManager() ScreenManager
	PlatformManager() PlatformManager
	VirtualizedCalls() VirtualizedCalls
	SerialPorts() SerialPorts
	HostCalls() HostCalls
	HostBridge() HostBridge

	PauseSystem()
	Quit()
	BreakInMonitor()
}

// Rect is a rectangle as passed by the screen driver. Top/left and
// bottom/right are packed into the upper and lower halves of two words in
// guest memory.
type Rect struct {
	Top    uint16
	Left   uint16
	Bottom uint16
	Right  uint16
}

// Width of rectangle. Zero if the rectangle is inverted.
func (r Rect) Width() int {
	return max(0, int(r.Right)-int(r.Left))
}

// Height of rectangle. Zero if the rectangle is inverted.
func (r Rect) Height() int {
	return max(0, int(r.Bottom)-int(r.Top))
}

// ScreenManager is the display and the tablet. The overlay is a text layer
// drawn over the display and is used to show boot progress.
type ScreenManager interface {
	ScreenWidth() uint32
	ScreenHeight() uint32
	BitsPerPixel() uint32
	PowerOnScreen()
	PowerOffScreen()
	Blit(pixmap uint32, src Rect, dst Rect, mode uint32)

	Contrast() uint32
	SetContrast(on bool)
	Backlight() bool
	SetBacklight(on bool)
	Orientation() uint32
	SetOrientation(orientation uint32)

	WakeUpTablet()
	ShutDownTablet()
	TabletSampleRate() uint32
	SetTabletSampleRate(rate uint32)
	SetTabletOrientation(orientation uint32)
	TabletState() uint32
	StartBypassTablet()
	StopBypassTablet()
	GetSample() (sample uint32, time uint32, ok bool)

	OverlayIsOn() bool
	OverlayOff()
	OverlayPrintProgress(line int, percent int)
	OverlayPrintAt(col int, line int, text string, centred bool)
	OverlayFlush()
}

// SoundManager plays the output buffers scheduled by the sound driver and
// fills the input buffers.
type SoundManager interface {
	ScheduleOutputBuffer(address uint32, amount uint32)
	ScheduleInputBuffer(address uint32, amount uint32)
	StartOutput()
	StopOutput()
	OutputIsRunning() bool
	SetOutputVolume(volume uint32)
	OutputVolume() uint32
	SetInterruptMask(outputMask uint32, inputMask uint32)
}

// PlatformManager is the host side of the platform driver.
type PlatformManager interface {
	PowerOn()
	PowerOff()
	SendPowerSwitchEvent()
	InstallNewPackages()
	GetNextEvent(address uint32) bool
	LockEventQueue()
	UnlockEventQueue()
	GetUserInfo(selector uint32, address uint32, size uint32) uint32
	HostTimeZone() uint32
	CalibrateTablet()
	DisposeBuffer(id uint32) uint32
	CopyBufferData(id uint32, address uint32, offset uint32, amount uint32) uint32
	OpenEinsteinMenu()
	NewtonScriptCall(fn uint32, arg1 uint32, arg2 uint32) uint32
}

// NetworkManager sends and receives raw packets for the guest network card
// driver.
type NetworkManager interface {
	SendPacket(data []byte) error
	DeviceAddress() [6]byte
	TimerExpired()
	DataAvailable() uint32
	ReceiveData(data []byte) error
	LogBuffer(data []byte)
}

// HostCalls is the bridge to native libraries on the host. Calls are
// identified by the value returned by PrepareFFIStructure().
type HostCalls interface {
	Available() bool
	OpenLib(name string) (uint32, error)
	CloseLib(handle uint32) error
	PrepareFFIStructure(handle uint32, symbol string, numArgs uint32) (uint32, error)
	DisposeFFIStructure(call uint32)
	GetErrorMessage(call uint32) string

	// integer arguments are sign or zero extended by the caller
	SetArgValue(call uint32, index uint32, value uint64) error
	SetArgBuffer(call uint32, index uint32, data []byte) error
	SetResultType(call uint32, resultType uint32) error
	GetOutArgValue(call uint32, index uint32) ([]byte, error)

	Call(call uint32) (uint64, error)
	CallString(call uint32) (string, error)
	GetErrno() uint32
}

// HostBridge is the object bridge of hosts that have one.
type HostBridge interface {
	Available() bool
	GetCPUArchitecture() uint32
	MakeInvocation(a uint32, b uint32, c uint32) uint32
	SetInvocationTarget(invocation uint32, target uint32) uint32
	SetInvocationArgument(invocation uint32, index uint32, object uint32) uint32
	GetInvocationReturn(invocation uint32, object uint32) uint32
	Invoke(invocation uint32) uint32
	ReleaseObject(object uint32) uint32
	MakeString(address uint32, size uint32) uint32
}
