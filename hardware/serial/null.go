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

// Null is a host port that is connected to nothing. Bytes sent are discarded
// and nothing is ever received.
type Null struct {
	stubs
	location uint32
}

// NewNull is the preferred method of initialisation for the Null type.
func NewNull(location uint32) *Null {
	return &Null{location: location}
}

// Location implements the HostPort interface.
func (n *Null) Location() uint32 {
	return n.location
}

// PutByte implements the HostPort interface.
func (n *Null) PutByte(_ uint8) {
}

// GetByte implements the HostPort interface.
func (n *Null) GetByte() uint8 {
	return 0
}

// GetByteAndStatus implements the HostPort interface.
func (n *Null) GetByteAndStatus() (uint8, uint32) {
	return 0, TxBufferEmpty
}

// TxBufEmpty implements the HostPort interface.
func (n *Null) TxBufEmpty() bool {
	return true
}

// RxBufFull implements the HostPort interface.
func (n *Null) RxBufFull() bool {
	return false
}

// GetSerialStatus implements the HostPort interface.
func (n *Null) GetSerialStatus() uint32 {
	return TxBufferEmpty
}

// ResetSerialStatus implements the HostPort interface.
func (n *Null) ResetSerialStatus() {
}

// Close implements the HostPort interface.
func (n *Null) Close() error {
	return nil
}
