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

package interrupts_test

import (
	"sync"
	"testing"

	"github.com/jetsetilly/goeinstein/hardware/interrupts"
	"github.com/jetsetilly/goeinstein/test"
)

type counter struct {
	n    int
	mask uint32
}

func TestRaiseAndClear(t *testing.T) {
	m := interrupts.NewManager()
	test.ExpectEquality(t, m.Pending(), uint32(0))

	m.RaiseInterrupt(0x00100000)
	m.RaiseInterrupt(0x00000001)
	test.ExpectEquality(t, m.Pending(), uint32(0x00100001))

	m.ClearInterrupt(0x00100000)
	test.ExpectEquality(t, m.Pending(), uint32(0x00000001))
}

func TestHandlers(t *testing.T) {
	m := interrupts.NewManager()

	serial := &counter{}
	sound := &counter{}

	fn := func(ctx any, mask uint32) {
		c := ctx.(*counter)
		c.n++
		c.mask |= mask
	}

	id := m.RegisterHandler(0x00100000, serial, fn)
	m.RegisterHandler(0x00000003, sound, fn)

	m.RaiseInterrupt(0x00100000)
	test.ExpectEquality(t, serial.n, 1)
	test.ExpectEquality(t, sound.n, 0)

	// only the intersecting bits are reported to the handler
	m.RaiseInterrupt(0x00100002)
	test.ExpectEquality(t, serial.n, 2)
	test.ExpectEquality(t, sound.n, 1)
	test.ExpectEquality(t, sound.mask, uint32(0x00000002))

	m.UnregisterHandler(id)
	m.RaiseInterrupt(0x00100000)
	test.ExpectEquality(t, serial.n, 2)
}

func TestHandlerReentry(t *testing.T) {
	m := interrupts.NewManager()
	m.RegisterHandler(0x01, nil, func(_ any, mask uint32) {
		m.ClearInterrupt(mask)
	})
	m.RaiseInterrupt(0x01)
	test.ExpectEquality(t, m.Pending(), uint32(0))
}

func TestConcurrentRaise(t *testing.T) {
	m := interrupts.NewManager()
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(bit int) {
			defer wg.Done()
			m.RaiseInterrupt(1 << bit)
		}(i)
	}
	wg.Wait()
	test.ExpectEquality(t, m.Pending(), uint32(0xffffffff))
}
