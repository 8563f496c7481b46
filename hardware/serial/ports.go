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
	"sort"
	"strings"
	"sync"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/logger"
)

// List of valid driver names for NewHostPort().
const (
	DriverPTY      = "pty"
	DriverLoopback = "loopback"
	DriverNull     = "null"
)

// Drivers is the list of driver names accepted by NewHostPort().
var Drivers = []string{DriverPTY, DriverLoopback, DriverNull}

// NewHostPort creates a host port of the named driver for the location ID.
func NewHostPort(driver string, log *logger.Logger, ints Interrupter, location uint32) (HostPort, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverPTY:
		return NewPTY(log, ints, location)
	case DriverLoopback:
		return NewLoopback(location, ints), nil
	case DriverNull:
		return NewNull(location), nil
	}
	return nil, curated.Errorf("serial: unknown driver (%s)", driver)
}

// Ports maps location IDs to host ports. A location with no host port is a
// serial line that is not connected to anything.
type Ports struct {
	crit  sync.Mutex
	ports map[uint32]HostPort
}

// NewPorts is the preferred method of initialisation for the Ports type.
func NewPorts() *Ports {
	return &Ports{
		ports: make(map[uint32]HostPort),
	}
}

// Add a host port. It is an error to add a port for a location that already
// has one.
func (p *Ports) Add(hp HostPort) error {
	p.crit.Lock()
	defer p.crit.Unlock()

	loc := hp.Location()
	if _, ok := p.ports[loc]; ok {
		return curated.Errorf("serial: location %08x already has a host port", loc)
	}
	p.ports[loc] = hp
	return nil
}

// Get returns the host port for the location or nil if there isn't one.
func (p *Ports) Get(location uint32) HostPort {
	p.crit.Lock()
	defer p.crit.Unlock()
	if hp, ok := p.ports[location]; ok {
		return hp
	}
	return nil
}

// Remove and close the host port for the location.
func (p *Ports) Remove(location uint32) error {
	p.crit.Lock()
	hp, ok := p.ports[location]
	delete(p.ports, location)
	p.crit.Unlock()

	if !ok {
		return nil
	}
	return hp.Close()
}

// Locations returns the sorted list of locations that have a host port.
func (p *Ports) Locations() []uint32 {
	p.crit.Lock()
	defer p.crit.Unlock()

	locs := make([]uint32, 0, len(p.ports))
	for l := range p.ports {
		locs = append(locs, l)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })
	return locs
}

// Close all host ports. The first error encountered is returned but all ports
// are closed regardless.
func (p *Ports) Close() error {
	var first error
	for _, l := range p.Locations() {
		if err := p.Remove(l); err != nil && first == nil {
			first = err
		}
	}
	return first
}
