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

package primitives

import (
	"fmt"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/hardware/stream"
)

// tabletCalibration is opaque to the emulator. The guest tablet driver
// reads and writes it and it is preserved in the state file.
type tabletCalibration struct {
	unknown00 uint32
	unknown04 uint32
	unknown08 uint32
	unknown0C uint32
	unknown10 uint32
}

// default calibration set by the tablet driver Init opcode.
var defaultCalibration = tabletCalibration{
	unknown00: 0xffffdfa5,
	unknown04: 0x000015ec,
	unknown08: 0x01f5f6b0,
	unknown0C: 0xffee8314,
	unknown10: 0xc8e60000,
}

const defaultSampleRate = 0x0000b400

// TransferState writes the driver state to the stream, or reads it from the
// stream, depending on the type of stream.
//
// The order of fields is fixed: the five words of the tablet calibration,
// the tablet sample rate and the input volume.
func (p *Primitives) TransferState(s stream.Transferer) error {
	words := []*uint32{
		&p.tablet.unknown00,
		&p.tablet.unknown04,
		&p.tablet.unknown08,
		&p.tablet.unknown0C,
		&p.tablet.unknown10,
		&p.sampleRate,
	}

	for _, w := range words {
		if err := s.TransferInt32BE(w); err != nil {
			return curated.Errorf("primitives: %v", err)
		}
	}

	if err := s.TransferByte(&p.inputVolume); err != nil {
		return curated.Errorf("primitives: %v", err)
	}

	return nil
}

// StateString describes the driver state in the order that it is
// transferred.
func (p *Primitives) StateString() string {
	return fmt.Sprintf("tablet calibration: %08x %08x %08x %08x %08x\ntablet sample rate: %08x\ninput volume: %02x\n",
		p.tablet.unknown00, p.tablet.unknown04, p.tablet.unknown08, p.tablet.unknown0C, p.tablet.unknown10,
		p.sampleRate, p.inputVolume)
}
