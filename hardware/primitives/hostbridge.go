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

func newHostBridgeClass() *deviceClass {
	return &deviceClass{
		name:   "hostbridge",
		logBit: 1 << 11,
		available: func(p *Primitives) bool {
			hb := p.emu.HostBridge()
			return hb != nil && hb.Available()
		},
		opcodes: map[uint8]opcode{
			0x01: {name: "GetCPUArchitecture", fn: func(p *Primitives) {
				p.setResult(p.emu.HostBridge().GetCPUArchitecture())
			}},
			0x02: {name: "MakeInvocation", fn: func(p *Primitives) {
				p.setResult(p.emu.HostBridge().MakeInvocation(p.reg(0), p.reg(1), p.reg(2)))
			}},
			0x03: {name: "SetInvocationTarget", fn: func(p *Primitives) {
				p.setResult(p.emu.HostBridge().SetInvocationTarget(p.reg(0), p.reg(1)))
			}},
			0x04: {name: "SetInvocationArgument", fn: func(p *Primitives) {
				p.setResult(p.emu.HostBridge().SetInvocationArgument(p.reg(0), p.reg(1), p.reg(2)))
			}},
			0x05: {name: "GetInvocationReturn", fn: func(p *Primitives) {
				p.setResult(p.emu.HostBridge().GetInvocationReturn(p.reg(0), p.reg(1)))
			}},
			0x06: {name: "Invoke", fn: func(p *Primitives) {
				p.setResult(p.emu.HostBridge().Invoke(p.reg(0)))
			}},
			0x07: {name: "ReleaseObject", fn: func(p *Primitives) {
				p.setResult(p.emu.HostBridge().ReleaseObject(p.reg(0)))
			}},
			0x08: {name: "MakeString", fn: func(p *Primitives) {
				p.setResult(p.emu.HostBridge().MakeString(p.reg(0), p.reg(1)))
			}},
		},
	}
}
