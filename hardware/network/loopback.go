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

package network

import (
	"sync"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/logger"
)

// the number of packets held before new packets are dropped.
const maxPackets = 32

// Loopback implements the primitives.NetworkManager interface.
type Loopback struct {
	log     *logger.Logger
	ints    Interrupts
	address [6]byte

	crit    sync.Mutex
	packets [][]byte
	dropped int
	timers  int
}

// NewLoopback is the preferred method of initialisation for the Loopback
// type.
func NewLoopback(log *logger.Logger, ints Interrupts) *Loopback {
	if log == nil {
		log = logger.Central()
	}
	return &Loopback{
		log:     log,
		ints:    ints,
		address: DefaultAddress,
	}
}

// SendPacket implements the primitives.NetworkManager interface. The packet
// is queued to be received.
func (l *Loopback) SendPacket(data []byte) error {
	l.crit.Lock()
	if len(l.packets) >= maxPackets {
		l.dropped++
		l.crit.Unlock()
		return curated.Errorf("network: %v", "loopback queue full")
	}
	l.packets = append(l.packets, append([]byte{}, data...))
	l.crit.Unlock()

	if l.ints != nil {
		l.ints.RaiseInterrupt(Interrupt)
	}
	return nil
}

// DeviceAddress implements the primitives.NetworkManager interface.
func (l *Loopback) DeviceAddress() [6]byte {
	return l.address
}

// TimerExpired implements the primitives.NetworkManager interface.
func (l *Loopback) TimerExpired() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.timers++
}

// DataAvailable implements the primitives.NetworkManager interface. Returns
// the size of the next packet.
func (l *Loopback) DataAvailable() uint32 {
	l.crit.Lock()
	defer l.crit.Unlock()
	if len(l.packets) == 0 {
		return 0
	}
	return uint32(len(l.packets[0]))
}

// ReceiveData implements the primitives.NetworkManager interface. The next
// packet is copied into data and removed from the queue. A packet larger than
// data is truncated.
func (l *Loopback) ReceiveData(data []byte) error {
	l.crit.Lock()
	defer l.crit.Unlock()
	if len(l.packets) == 0 {
		return curated.Errorf("network: %v", "no packet to receive")
	}
	n := copy(data, l.packets[0])
	clear(data[n:])
	l.packets = l.packets[1:]
	return nil
}

// LogBuffer implements the primitives.NetworkManager interface.
func (l *Loopback) LogBuffer(data []byte) {
	logBuffer(l.log, data)
}

// Pending returns the number of packets waiting to be received and the
// number of packets dropped because the queue was full.
func (l *Loopback) Pending() (int, int) {
	l.crit.Lock()
	defer l.crit.Unlock()
	return len(l.packets), l.dropped
}
