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

package platform

import (
	"encoding/binary"

	"github.com/jetsetilly/goeinstein/logger"
)

// event types.
const (
	EventPower   = 0x706f7772 // 'powr'
	EventPackage = 0x706b6720 // 'pkg '
)

// the number of events held before new events are dropped.
const maxEvents = 64

// Event is sent from the host to the guest. In guest memory an event is the
// type, the size of the data in bytes, and then the data.
type Event struct {
	Type uint32
	Data []byte
}

// words packs values into event data.
func words(v ...uint32) []byte {
	b := make([]byte, len(v)*4)
	for i, w := range v {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	return b
}

// PostEvent adds an event to the queue and raises the platform interrupt.
func (plt *Platform) PostEvent(ev Event) {
	plt.crit.Lock()
	if len(plt.events) >= maxEvents {
		plt.crit.Unlock()
		plt.log.Logf(logger.Allow, "platform", "event queue full. dropping %08x", ev.Type)
		return
	}
	plt.events = append(plt.events, ev)
	plt.crit.Unlock()

	if plt.ints != nil {
		plt.ints.RaiseInterrupt(Interrupt)
	}
}

// SendPowerSwitchEvent implements the primitives.PlatformManager interface.
func (plt *Platform) SendPowerSwitchEvent() {
	plt.PostEvent(Event{Type: EventPower})
}

// PendingEvents returns the number of events waiting for the guest.
func (plt *Platform) PendingEvents() int {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	return len(plt.events)
}

// GetNextEvent implements the primitives.PlatformManager interface. The
// event is removed from the queue only if it was written to guest memory.
func (plt *Platform) GetNextEvent(address uint32) bool {
	plt.crit.Lock()
	defer plt.crit.Unlock()

	if len(plt.events) == 0 {
		return false
	}
	ev := plt.events[0]

	if err := plt.mem.Write(address, ev.Type); err != nil {
		plt.log.Log(logger.Allow, "platform", err)
		return false
	}
	if err := plt.mem.Write(address+4, uint32(len(ev.Data))); err != nil {
		plt.log.Log(logger.Allow, "platform", err)
		return false
	}
	for i, b := range ev.Data {
		if err := plt.mem.WriteB(address+8+uint32(i), b); err != nil {
			plt.log.Log(logger.Allow, "platform", err)
			return false
		}
	}

	plt.events = plt.events[1:]
	return true
}

// LockEventQueue implements the primitives.PlatformManager interface. Locks
// nest.
func (plt *Platform) LockEventQueue() {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	plt.locked++
}

// UnlockEventQueue implements the primitives.PlatformManager interface.
func (plt *Platform) UnlockEventQueue() {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	if plt.locked > 0 {
		plt.locked--
	}
}

// IsLocked returns true if the guest has locked the event queue.
func (plt *Platform) IsLocked() bool {
	plt.crit.Lock()
	defer plt.crit.Unlock()
	return plt.locked > 0
}
