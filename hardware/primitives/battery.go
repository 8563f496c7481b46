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

// battery status records. the battery is always full and the adapter is not
// plugged in.
var (
	batteryStatus = []uint32{
		0x00000003, // battery type
		0x000587c0, // voltage 1
		0x00000064, // level
		0x00000014, // alert
		0x00000000,
		0x006cf999, // voltage 6
		0x00000000, // adapter plugged
		0x00003f36, // voltage 7
		0x00000000,
		0xffffffff,
		0xffffffff,
		0x001a2f28, // voltage 4
		0x001a8d79, // voltage 5
	}

	batteryRawStatus = []uint32{
		0x00000003,
		0x0c97d000,
		0x00000064,
		0x00000014,
		0x00000000,
		0x00e19000,
		0x00000000,
		0x005c0000,
		0x00000000,
		0xffffffff,
		0xffffffff,
		0x086e2000,
		0x07d3b000,
	}
)

func newBatteryClass() *deviceClass {
	return &deviceClass{
		name:   "battery",
		logBit: 1 << 3,
		opcodes: map[uint8]opcode{
			0x01: {name: "New", fn: noResult},
			0x02: {name: "Delete", fn: resultZero},
			0x03: {name: "Init", fn: resultZero},
			0x04: {name: "WakeUp", fn: resultZero},
			0x05: {name: "ShutDown", fn: resultZero},
			0x06: {name: "Count", fn: resultZero},
			0x07: {name: "Status", fn: func(p *Primitives) {
				p.writeWords(p.reg(2), batteryStatus...)
				p.setResult(0)
			}},
			0x08: {name: "RawStatus", fn: func(p *Primitives) {
				p.writeWords(p.reg(2), batteryRawStatus...)
				p.setResult(0)
			}},
			0x09: {name: "StartSleepCharge", fn: resultZero},
			0x0a: {name: "SetType", fn: resultZero},
			0x0b: {name: "ReadADCVoltage", fn: resultZero},
			0x0c: {name: "ConvertVoltage", fn: resultZero},
		},
	}
}
