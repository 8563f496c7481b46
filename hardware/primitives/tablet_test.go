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

package primitives_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/hardware/stream"
	"github.com/jetsetilly/goeinstein/test"
)

// state returns the words of the saved state and the input volume.
func state(t *testing.T, p *primitives.Primitives) ([6]uint32, uint8) {
	t.Helper()
	var buf bytes.Buffer
	test.DemandSuccess(t, p.TransferState(stream.NewWriter(&buf)))
	test.DemandEquality(t, buf.Len(), 25)

	var w [6]uint32
	for i := range w {
		w[i] = binary.BigEndian.Uint32(buf.Bytes()[i*4:])
	}
	return w, buf.Bytes()[24]
}

func TestTabletInit(t *testing.T) {
	m := newMachine()
	m.call(0x00000503, 0x1234)

	// Init does not set R0
	test.ExpectEquality(t, m.r0(), uint32(0x1234))

	w, _ := state(t, m.prim)
	test.ExpectEquality(t, w, [6]uint32{0xffffdfa5, 0x000015ec, 0x01f5f6b0, 0xffee8314, 0xc8e60000, 0x0000b400})
}

func TestTabletCalibrationLayout(t *testing.T) {
	m := newMachine()
	m.call(0x00000503)

	for i := uint32(0); i < 6; i++ {
		_ = m.mem.Write(data+i*4, 0xaaaaaaaa)
	}

	m.call(0x00000509, 0, data)
	test.ExpectEquality(t, m.word(data+0x00), uint32(0xffffdfa5))
	test.ExpectEquality(t, m.word(data+0x04), uint32(0x000015ec))
	test.ExpectEquality(t, m.word(data+0x08), uint32(0x01f5f6b0))
	test.ExpectEquality(t, m.word(data+0x0c), uint32(0xaaaaaaaa))
	test.ExpectEquality(t, m.word(data+0x10), uint32(0xffee8314))
	test.ExpectEquality(t, m.word(data+0x14), uint32(0xaaaaaaaa))

	// setting the calibration reads the fourth word from offset 0x10 and
	// leaves the fifth word alone
	for i := uint32(0); i < 6; i++ {
		_ = m.mem.Write(data+i*4, 0x11111111*(i+1))
	}
	m.call(0x0000050a, 0, data)

	w, _ := state(t, m.prim)
	test.ExpectEquality(t, w[0], uint32(0x11111111))
	test.ExpectEquality(t, w[1], uint32(0x22222222))
	test.ExpectEquality(t, w[2], uint32(0x33333333))
	test.ExpectEquality(t, w[3], uint32(0x55555555))
	test.ExpectEquality(t, w[4], uint32(0xc8e60000))
}

func TestTabletSample(t *testing.T) {
	m := newMachine()
	scr := &screen{samples: [][2]uint32{{0x12345678, 100}}}
	m.emu.scr = scr

	m.call(0x00000516, 0, data, data+4)
	test.ExpectEquality(t, m.r0(), uint32(1))
	test.ExpectEquality(t, m.word(data), uint32(0x12345678))
	test.ExpectEquality(t, m.word(data+4), uint32(100))

	_ = m.mem.Write(data, 0)
	m.call(0x00000516, 0, data, data+4)
	test.ExpectEquality(t, m.r0(), uint32(0))
	test.ExpectEquality(t, m.word(data), uint32(0))
}

func TestTabletMisc(t *testing.T) {
	m := newMachine()
	scr := &screen{}
	m.emu.scr = scr

	m.call(0x00000508, 0, 0x1000)
	m.call(0x00000507)
	test.ExpectEquality(t, m.r0(), uint32(0x1000))

	m.call(0x0000050c, 0, data, data+4)
	test.ExpectEquality(t, m.word(data), uint32(0x03200000))
	test.ExpectEquality(t, m.word(data+4), uint32(0x03200000))

	m.call(0x0000050f)
	test.ExpectEquality(t, int32(m.r0()), primitives.ErrTabletFingerInput)
	m.call(0x00000510)
	test.ExpectEquality(t, m.r0(), uint32(0xffff2538))
}

func TestTransferState(t *testing.T) {
	m := newMachine()
	m.call(0x00000503)
	m.call(0x00000219, 0, 0x7f)

	var buf bytes.Buffer
	test.DemandSuccess(t, m.prim.TransferState(stream.NewWriter(&buf)))
	saved := append([]byte{}, buf.Bytes()...)

	n := newMachine()
	test.DemandSuccess(t, n.prim.TransferState(stream.NewReader(bytes.NewReader(saved))))
	test.ExpectEquality(t, n.prim.InputVolume(), uint8(0x7f))

	var again bytes.Buffer
	test.DemandSuccess(t, n.prim.TransferState(stream.NewWriter(&again)))
	test.ExpectEquality(t, again.String(), string(saved))

	// truncated state
	test.ExpectFailure(t, n.prim.TransferState(stream.NewReader(bytes.NewReader(saved[:10]))))
}
