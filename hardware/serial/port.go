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

package serial

import (
	"sync"
)

// port is the state shared by the host ports that receive data: the receive
// ring and the status bits. All access is through the mutex.
type port struct {
	crit     sync.Mutex
	ring     *Ring
	status   uint32
	location uint32
	ints     Interrupter
}

func newPort(location uint32, ints Interrupter) *port {
	return &port{
		ring:     NewRing(RingSize),
		status:   TxBufferEmpty | DCD | CTS,
		location: location,
		ints:     ints,
	}
}

func (p *port) raise() {
	if p.ints != nil {
		p.ints.RaiseInterrupt(InterruptMask)
	}
}

// receive adds data to the ring and returns the number of bytes accepted. The
// interrupt is raised after the critical section so the new data is visible
// to any interrupt handler.
func (p *port) receive(data []byte) int {
	p.crit.Lock()
	n := p.ring.Produce(data)
	if n > 0 {
		p.status |= RxCharAvailable
	}
	p.crit.Unlock()

	if n > 0 {
		p.raise()
	}
	return n
}

// free returns the number of bytes that receive() will accept.
func (p *port) free() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.ring.Free()
}

// transmitting clears the TxBufferEmpty status bit.
func (p *port) transmitting() {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.status &^= TxBufferEmpty
}

// Location implements the HostPort interface.
func (p *port) Location() uint32 {
	return p.location
}

// GetByte implements the HostPort interface. Returns zero if there is no data.
func (p *port) GetByte() uint8 {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.getByte()
}

// getByte assumes the critical section is held.
func (p *port) getByte() uint8 {
	b, _ := p.ring.Consume()
	if p.ring.Empty() {
		p.status &^= RxCharAvailable
	}
	return b
}

// GetByteAndStatus implements the HostPort interface. The status returned is
// the status after the byte has been removed from the ring.
func (p *port) GetByteAndStatus() (uint8, uint32) {
	p.crit.Lock()
	defer p.crit.Unlock()
	b := p.getByte()
	return b, p.status
}

// RxBufFull implements the HostPort interface. A full receive buffer means
// there is at least one byte waiting to be read.
func (p *port) RxBufFull() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.status&RxCharAvailable != 0
}

// TxBufEmpty implements the HostPort interface. Writes to the host are
// synchronous so by the time the guest polls the transmit buffer it is
// empty again.
func (p *port) TxBufEmpty() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.status |= TxBufferEmpty
	return true
}

// GetSerialStatus implements the HostPort interface.
func (p *port) GetSerialStatus() uint32 {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.status
}

// ResetSerialStatus implements the HostPort interface. Bits that reflect the
// state of the receive buffer are preserved.
func (p *port) ResetSerialStatus() {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.status = (p.status & RxCharAvailable) | TxBufferEmpty | DCD | CTS
}

// Buffered returns the number of received bytes waiting to be read.
func (p *port) Buffered() int {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.ring.Len()
}

// BufferedAndStatus returns Buffered() and GetSerialStatus() as seen at the
// same moment.
func (p *port) BufferedAndStatus() (int, uint32) {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.ring.Len(), p.status
}
