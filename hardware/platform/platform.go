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

// Package platform is the headless platform manager. It owns the queue of
// events sent from the host to the guest, the buffers of data the guest can
// copy from the host, and the user information.
package platform

import (
	"os"
	"sync"
	"time"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/logger"
)

// Interrupt raised when an event is posted.
const Interrupt = 0x00001000

// the result of buffer operations that fail.
const bufferError = 0xffffffff

// Memory is the guest memory used by the platform manager.
type Memory interface {
	Write(address uint32, value uint32) error
	WriteB(address uint32, value uint8) error
}

// Interrupts is the interrupt controller used by the platform manager.
type Interrupts interface {
	RaiseInterrupt(mask uint32)
}

// Platform implements the primitives.PlatformManager interface.
type Platform struct {
	log  *logger.Logger
	mem  Memory
	ints Interrupts

	crit sync.Mutex

	powered bool
	locked  int
	events  []Event

	// buffers are identified by a number greater than zero
	buffers    map[uint32][]byte
	nextBuffer uint32

	// packages waiting for InstallNewPackages
	packages []string

	user map[UserInfo]string

	// optional host functions
	menu   func()
	script func(fn uint32, arg1 uint32, arg2 uint32) uint32

	calibrations int
}

// NewPlatform is the preferred method of initialisation for the Platform
// type.
func NewPlatform(log *logger.Logger, mem Memory, ints Interrupts) *Platform {
	if log == nil {
		log = logger.Central()
	}
	return &Platform{
		log:     log,
		mem:     mem,
		ints:    ints,
		buffers: make(map[uint32][]byte),
		user:    make(map[UserInfo]string),
	}
}

// PowerOn implements the primitives.PlatformManager interface.
func (plt *Platform) PowerOn() {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.powered = true
}

// PowerOff implements the primitives.PlatformManager interface.
func (plt *Platform) PowerOff() {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.powered = false
}

// IsPowered returns true if the guest has powered on the system.
func (plt *Platform) IsPowered() bool {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	return plt.powered
}

// HostTimeZone implements the primitives.PlatformManager interface. The
// value is the offset of the host time zone from UTC in seconds.
func (plt *Platform) HostTimeZone() uint32 {
	_, offset := time.Now().Zone()
	return uint32(int32(offset))
}

// CalibrateTablet implements the primitives.PlatformManager interface.
func (plt *Platform) CalibrateTablet() {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.calibrations++
	plt.log.Log(logger.Allow, "platform", "tablet calibration requested")
}

// SetMenu sets the function called when the guest opens the emulator menu.
func (plt *Platform) SetMenu(menu func()) {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.menu = menu
}

// OpenEinsteinMenu implements the primitives.PlatformManager interface.
func (plt *Platform) OpenEinsteinMenu() {
	plt.crit.Lock()
	menu := plt.menu
	plt.crit.Unlock()

	if menu == nil {
		plt.log.Log(logger.Allow, "platform", "no emulator menu")
		return
	}
	menu()
}

// SetNewtonScriptHandler sets the function that services NewtonScript calls
// from the guest.
func (plt *Platform) SetNewtonScriptHandler(script func(fn uint32, arg1 uint32, arg2 uint32) uint32) {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.script = script
}

// NewtonScriptCall implements the primitives.PlatformManager interface.
// Returns zero if there is no handler.
func (plt *Platform) NewtonScriptCall(fn uint32, arg1 uint32, arg2 uint32) uint32 {
	plt.crit.Lock()
	script := plt.script
	plt.crit.Unlock()

	if script == nil {
		plt.log.Logf(logger.Allow, "platform", "no handler for NewtonScript call %08x", fn)
		return 0
	}
	return script(fn, arg1, arg2)
}

// AddPackage queues a package file to be installed the next time the guest
// asks for new packages.
func (plt *Platform) AddPackage(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return curated.Errorf("platform: %v", err)
	}
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.packages = append(plt.packages, filename)
	return nil
}

// InstallNewPackages implements the primitives.PlatformManager interface.
// Each queued package is loaded into a buffer and an install event is posted
// for it.
func (plt *Platform) InstallNewPackages() {
	plt.crit.Lock()
	packages := plt.packages
	plt.packages = nil
	plt.crit.Unlock()

	for _, filename := range packages {
		data, err := os.ReadFile(filename)
		if err != nil {
			plt.log.Log(logger.Allow, "platform", curated.Errorf("platform: %v", err))
			continue // for loop
		}
		id := plt.NewBuffer(data)
		plt.PostEvent(Event{Type: EventPackage, Data: words(id, uint32(len(data)))})
		plt.log.Logf(logger.Allow, "platform", "installing %s", filename)
	}
}

// NewBuffer stores data for the guest to copy and returns the buffer id.
func (plt *Platform) NewBuffer(data []byte) uint32 {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.nextBuffer++
	plt.buffers[plt.nextBuffer] = data
	return plt.nextBuffer
}

// DisposeBuffer implements the primitives.PlatformManager interface. Returns
// zero on success.
func (plt *Platform) DisposeBuffer(id uint32) uint32 {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	if _, ok := plt.buffers[id]; !ok {
		return bufferError
	}
	delete(plt.buffers, id)
	return 0
}

// CopyBufferData implements the primitives.PlatformManager interface.
// Returns the number of bytes copied, which is less than amount if the end of
// the buffer is reached.
func (plt *Platform) CopyBufferData(id uint32, address uint32, offset uint32, amount uint32) uint32 {
	plt.crit.Lock()
	defer plt.crit.Unlock()

	data, ok := plt.buffers[id]
	if !ok || offset > uint32(len(data)) {
		return bufferError
	}

	data = data[offset:]
	n := min(amount, uint32(len(data)))
	for i := range n {
		if err := plt.mem.WriteB(address+i, data[i]); err != nil {
			plt.log.Log(logger.Allow, "platform", err)
			return bufferError
		}
	}
	return n
}

var _ primitives.PlatformManager = (*Platform)(nil)
