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

// Package interrupts is a minimal interrupt controller. Interrupt sources are
// identified by a bit in a 32 bit mask. Raising an interrupt sets its bit in
// the pending mask and calls any handler registered for that bit.
//
// Handlers are registered as a function and a context value. The context is
// passed back to the function when the handler is called.
package interrupts

import (
	"sync"
)

// Handler is called when an interrupt that it has been registered for is
// raised. The ctx value is the value given to RegisterHandler(). The mask
// argument is the set of bits that were raised.
type Handler func(ctx any, mask uint32)

type registration struct {
	id   int
	mask uint32
	ctx  any
	fn   Handler
}

// Manager is safe to use from more than one goroutine. The serial host ports
// raise interrupts from their reader goroutines.
type Manager struct {
	crit     sync.Mutex
	pending  uint32
	handlers []registration
	nextID   int
}

// NewManager is the preferred method of initialisation for the Manager type.
func NewManager() *Manager {
	return &Manager{}
}

// RegisterHandler adds a handler for the interrupt bits in mask. Returns an
// identifier for use with UnregisterHandler().
func (m *Manager) RegisterHandler(mask uint32, ctx any, fn Handler) int {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.nextID++
	m.handlers = append(m.handlers, registration{id: m.nextID, mask: mask, ctx: ctx, fn: fn})
	return m.nextID
}

// UnregisterHandler removes a handler added with RegisterHandler().
func (m *Manager) UnregisterHandler(id int) {
	m.crit.Lock()
	defer m.crit.Unlock()
	for i, h := range m.handlers {
		if h.id == id {
			m.handlers = append(m.handlers[:i], m.handlers[i+1:]...)
			return
		}
	}
}

// RaiseInterrupt marks the interrupt sources in mask as pending and calls the
// handlers registered for those sources. Handlers are called outside of the
// critical section so they may themselves call Manager functions.
func (m *Manager) RaiseInterrupt(mask uint32) {
	m.crit.Lock()
	m.pending |= mask
	var call []registration
	for _, h := range m.handlers {
		if h.mask&mask != 0 {
			call = append(call, h)
		}
	}
	m.crit.Unlock()

	for _, h := range call {
		h.fn(h.ctx, h.mask&mask)
	}
}

// ClearInterrupt removes the interrupt sources in mask from the pending mask.
func (m *Manager) ClearInterrupt(mask uint32) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.pending &^= mask
}

// Pending returns the mask of interrupt sources that have been raised and not
// cleared.
func (m *Manager) Pending() uint32 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.pending
}
