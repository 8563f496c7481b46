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

// the longest string accepted by the network Log opcode.
const networkLogLength = 1000

// the driver services that are not implemented are logged and leave R0
// unchanged.
func newNetworkClass() *deviceClass {
	return &deviceClass{
		name:   "network",
		logBit: 1 << 10,
		opcodes: map[uint8]opcode{
			0x00: {name: "Unknown", fn: resultZero},
			0x01: {name: "Log", fn: networkLog, quiet: true},
			0x02: {name: "New", fn: noResult},
			0x03: {name: "Delete", fn: noResult},
			0x04: {name: "Init", fn: noResult},
			0x05: {name: "Enable", fn: noResult},
			0x06: {name: "Disable", fn: noResult},
			0x07: {name: "InterruptHandler", fn: noResult},
			0x08: {name: "SendBuffer", fn: noResult},
			0x09: {name: "SendCBufferList", fn: noResult},
			0x0a: {name: "SendPacket", fn: networkSendPacket, quiet: true},
			0x0b: {name: "GetDeviceAddress", fn: networkGetDeviceAddress, quiet: true},
			0x0c: {name: "AddMulticastAddress", fn: noResult},
			0x0d: {name: "DelMulticastAddress", fn: noResult},
			0x0e: {name: "GetLinkIntegrity", fn: noResult},
			0x0f: {name: "SetPromiscuous", fn: noResult},
			0x10: {name: "GetThroughput", fn: noResult},
			0x11: {name: "TimerExpired", fn: networkTimerExpired},
			0x12: {name: "InitCard", fn: noResult},
			0x13: {name: "SetCardInfo", fn: noResult},
			0x14: {name: "DataAvailable", fn: networkDataAvailable, quiet: true},
			0x15: {name: "ReceiveData", fn: networkReceiveData, quiet: true},
			0x16: {name: "LogBuffer", fn: networkLogBuffer, quiet: true},
		},
	}
}

// the string to log is pointed to by R0.
func networkLog(p *Primitives) {
	p.trace("log: %s", p.readString(p.reg(0), networkLogLength))
	p.setResult(0)
}

// a packet of zero bytes is never sent.
func networkSendPacket(p *Primitives) {
	addr, size := p.reg(1), p.reg(2)
	p.trace("SendPacket(%08x, %d)", addr, size)

	net := p.emu.NetworkManager()
	if net == nil || size == 0 || !p.transferSize(size) {
		p.setResult(0)
		return
	}

	if err := net.SendPacket(p.readBytes(addr, size)); err != nil {
		p.diagnostic("%v", err)
	}
	p.setResult(0)
}

// at most six bytes of the address are written.
func networkGetDeviceAddress(p *Primitives) {
	addr, size := p.reg(1), p.reg(2)
	p.trace("GetDeviceAddress(%08x, %d)", addr, size)

	net := p.emu.NetworkManager()
	if net == nil || size == 0 {
		p.setResult(0)
		return
	}

	mac := net.DeviceAddress()
	p.writeBytes(addr, mac[:min(size, uint32(len(mac)))])
	p.setResult(0)
}

func networkTimerExpired(p *Primitives) {
	net := p.emu.NetworkManager()
	if net == nil {
		p.missing("network manager")
		return
	}
	net.TimerExpired()
	p.setResult(0)
}

func networkDataAvailable(p *Primitives) {
	var size uint32
	if net := p.emu.NetworkManager(); net != nil {
		size = net.DataAvailable()
	}
	p.trace("DataAvailable(%d)", size)
	p.setResult(size)
}

// a receive of zero bytes never reaches the network manager.
func networkReceiveData(p *Primitives) {
	addr, size := p.reg(1), p.reg(2)
	p.trace("ReceiveData(%08x, %d)", addr, size)

	net := p.emu.NetworkManager()
	if net == nil || size == 0 || !p.transferSize(size) {
		p.setResult(0)
		return
	}

	data := make([]byte, size)
	if err := net.ReceiveData(data); err != nil {
		p.diagnostic("%v", err)
		p.setResult(0)
		return
	}
	p.writeBytes(addr, data)
	p.setResult(0)
}

func networkLogBuffer(p *Primitives) {
	net := p.emu.NetworkManager()
	if net == nil {
		p.missing("network manager")
		return
	}
	if size := p.reg(1); p.transferSize(size) {
		net.LogBuffer(p.readBytes(p.reg(0), size))
	}
	p.setResult(0)
}
