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
	"sync/atomic"

	"github.com/jetsetilly/goeinstein/logger"
)

// Null implements the primitives.NetworkManager interface.
type Null struct {
	log     *logger.Logger
	address [6]byte
	sent    atomic.Int32
}

// NewNull is the preferred method of initialisation for the Null type.
func NewNull(log *logger.Logger) *Null {
	if log == nil {
		log = logger.Central()
	}
	return &Null{
		log:     log,
		address: DefaultAddress,
	}
}

// SendPacket implements the primitives.NetworkManager interface.
func (n *Null) SendPacket(data []byte) error {
	n.sent.Add(1)
	return nil
}

// Sent returns the number of packets discarded.
func (n *Null) Sent() int {
	return int(n.sent.Load())
}

// DeviceAddress implements the primitives.NetworkManager interface.
func (n *Null) DeviceAddress() [6]byte {
	return n.address
}

// TimerExpired implements the primitives.NetworkManager interface.
func (n *Null) TimerExpired() {
}

// DataAvailable implements the primitives.NetworkManager interface.
func (n *Null) DataAvailable() uint32 {
	return 0
}

// ReceiveData implements the primitives.NetworkManager interface.
func (n *Null) ReceiveData(data []byte) error {
	clear(data)
	return nil
}

// LogBuffer implements the primitives.NetworkManager interface.
func (n *Null) LogBuffer(data []byte) {
	logBuffer(n.log, data)
}
