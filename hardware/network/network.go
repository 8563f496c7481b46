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

// Package network contains the host side of the guest network card. The
// Null manager discards outgoing packets and never receives any. The
// Loopback manager receives every packet that is sent.
package network

import (
	"encoding/hex"
	"strings"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/logger"
)

// Interrupt raised when a packet is available.
const Interrupt = 0x00002000

// DefaultAddress is the MAC address of the emulated network card.
var DefaultAddress = [6]byte{0x00, 0x0a, 0x95, 0x4e, 0x45, 0x57}

// list of valid driver names.
const (
	DriverNull     = "null"
	DriverLoopback = "loopback"
)

// Drivers is the list of network drivers that can be selected by name.
var Drivers = []string{DriverNull, DriverLoopback}

// Interrupts is the interrupt controller used by the network managers.
type Interrupts interface {
	RaiseInterrupt(mask uint32)
}

// NewManager returns the network manager for the named driver.
func NewManager(driver string, log *logger.Logger, ints Interrupts) (primitives.NetworkManager, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverNull:
		return NewNull(log), nil
	case DriverLoopback:
		return NewLoopback(log, ints), nil
	}
	return nil, curated.Errorf("network: unknown driver (%s)", driver)
}

// logBuffer writes a hex dump of the data to the log.
func logBuffer(log *logger.Logger, data []byte) {
	for _, l := range strings.Split(strings.TrimRight(hex.Dump(data), "\n"), "\n") {
		log.Log(logger.Allow, "network", l)
	}
}
