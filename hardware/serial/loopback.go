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

// Loopback is a host port that receives every byte that it sends.
type Loopback struct {
	*port
	stubs
}

// NewLoopback is the preferred method of initialisation for the Loopback
// type.
func NewLoopback(location uint32, ints Interrupter) *Loopback {
	return &Loopback{port: newPort(location, ints)}
}

// PutByte implements the HostPort interface. If the receive ring is full the
// byte is lost, in the same way as a byte sent down a line with nobody
// listening.
func (l *Loopback) PutByte(b uint8) {
	l.transmitting()
	if l.receive([]byte{b}) == 0 {
		l.raise()
	}
}

// Close implements the HostPort interface.
func (l *Loopback) Close() error {
	return nil
}
