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

// Package serial implements host ports for the emulated serial chip. A host
// port connects a serial line of the emulated machine to something on the
// host: a pseudo-terminal, a loopback or nothing at all.
//
// Received bytes are stored in a Ring, guarded by the port's mutex. The
// RxCharAvailable status bit is only changed while the mutex is held and is
// cleared exactly when the ring becomes empty.
package serial

// InterruptMask is the interrupt source raised by host ports when a byte has
// been received or sent.
const InterruptMask = 0x00100000

// Serial status bits, as returned by GetSerialStatus().
const (
	TxBufferEmpty   = 0x00000001
	RxCharAvailable = 0x00000002
	DCD             = 0x00000004
	CTS             = 0x00000008
)

// Feature bits, as returned by GetFeatures().
const (
	FeatureRxDMA      = 0x00000001
	FeatureTxDMA      = 0x00000002
	FeatureHardwareFC = 0x00000004
)

// Interrupter is the part of the interrupt controller used by the host
// ports.
type Interrupter interface {
	RaiseInterrupt(mask uint32)
}

// HostPort is the contract between the serial chip and the host. Most
// configuration functions are meaningful only for a physical serial line and
// do nothing in the host ports of this package.
type HostPort interface {
	// Location returns the location ID of the port, as used by the guest to
	// identify the serial line
	Location() uint32

	PutByte(b uint8)
	GetByte() uint8
	TxBufEmpty() bool
	RxBufFull() bool
	GetRxErrorStatus() uint32
	GetSerialStatus() uint32
	ResetSerialStatus()

	SetSerialOutputs(outputs uint32)
	ClearSerialOutputs(outputs uint32)
	GetSerialOutputs() uint32

	PowerOff()
	PowerOn()
	PowerIsOn() bool

	SetInterruptEnable(enable bool)
	Reset()
	SetBreak(level bool)
	SetSpeed(speed uint32) uint32
	SetIOParms(parms uint32)
	Reconfigure()
	GetFeatures() uint32
	InitByOption(option uint32) uint32
	ProcessOption(option uint32) uint32
	SetSerialMode(mode uint32) uint32
	SysEventNotify(event uint32)
	SetTxDTransceiverEnable(enable bool)
	GetByteAndStatus() (uint8, uint32)
	SetIntSourceEnable(mask uint32, enable bool)
	AllSent() bool
	WaitForAllSent() uint32
	LinkIsFree() bool
	SendControlPacket(packet uint32) uint32
	WaitForPacket(timeout uint32) bool

	// Close the port and release any host resources
	Close() error
}

// stubs implements the configuration functions of the HostPort interface
// that have no meaning for the host ports in this package.
type stubs struct {
	powered bool
	outputs uint32
}

// SetSerialOutputs implements the HostPort interface.
func (s *stubs) SetSerialOutputs(outputs uint32) {
	s.outputs |= outputs
}

// ClearSerialOutputs implements the HostPort interface.
func (s *stubs) ClearSerialOutputs(outputs uint32) {
	s.outputs &^= outputs
}

// GetSerialOutputs implements the HostPort interface.
func (s *stubs) GetSerialOutputs() uint32 {
	return s.outputs
}

// PowerOff implements the HostPort interface.
func (s *stubs) PowerOff() {
	s.powered = false
}

// PowerOn implements the HostPort interface.
func (s *stubs) PowerOn() {
	s.powered = true
}

// PowerIsOn implements the HostPort interface.
func (s *stubs) PowerIsOn() bool {
	return s.powered
}

// GetRxErrorStatus implements the HostPort interface.
func (s *stubs) GetRxErrorStatus() uint32 {
	return 0
}

// SetInterruptEnable implements the HostPort interface.
func (s *stubs) SetInterruptEnable(_ bool) {
}

// Reset implements the HostPort interface.
func (s *stubs) Reset() {
}

// SetBreak implements the HostPort interface.
func (s *stubs) SetBreak(_ bool) {
}

// SetSpeed implements the HostPort interface.
func (s *stubs) SetSpeed(_ uint32) uint32 {
	return 0
}

// SetIOParms implements the HostPort interface.
func (s *stubs) SetIOParms(_ uint32) {
}

// Reconfigure implements the HostPort interface.
func (s *stubs) Reconfigure() {
}

// GetFeatures implements the HostPort interface.
func (s *stubs) GetFeatures() uint32 {
	return 0
}

// InitByOption implements the HostPort interface.
func (s *stubs) InitByOption(_ uint32) uint32 {
	return 0
}

// ProcessOption implements the HostPort interface.
func (s *stubs) ProcessOption(_ uint32) uint32 {
	return 0
}

// SetSerialMode implements the HostPort interface.
func (s *stubs) SetSerialMode(_ uint32) uint32 {
	return 0
}

// SysEventNotify implements the HostPort interface.
func (s *stubs) SysEventNotify(_ uint32) {
}

// SetTxDTransceiverEnable implements the HostPort interface.
func (s *stubs) SetTxDTransceiverEnable(_ bool) {
}

// SetIntSourceEnable implements the HostPort interface.
func (s *stubs) SetIntSourceEnable(_ uint32, _ bool) {
}

// AllSent implements the HostPort interface.
func (s *stubs) AllSent() bool {
	return true
}

// WaitForAllSent implements the HostPort interface.
func (s *stubs) WaitForAllSent() uint32 {
	return 0
}

// LinkIsFree implements the HostPort interface.
func (s *stubs) LinkIsFree() bool {
	return true
}

// SendControlPacket implements the HostPort interface.
func (s *stubs) SendControlPacket(_ uint32) uint32 {
	return 0
}

// WaitForPacket implements the HostPort interface.
func (s *stubs) WaitForPacket(_ uint32) bool {
	return false
}
