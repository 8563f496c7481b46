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
	"github.com/jetsetilly/goeinstein/hardware/cpu"
	"github.com/jetsetilly/goeinstein/hardware/memory"
	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/logger"
)

// addresses in RAM used by the tests
const (
	ram   = memory.DefaultRAMOrigin
	stack = ram + 0x1000
	data  = ram + 0x2000
	obj   = ram + 0x3000
	flash = memory.DefaultFlashOrigin
)

type emulator struct {
	cpu   *cpu.Registers
	net   primitives.NetworkManager
	snd   primitives.SoundManager
	scr   primitives.ScreenManager
	plt   primitives.PlatformManager
	vc    primitives.VirtualizedCalls
	ports primitives.SerialPorts
	hc    primitives.HostCalls
	hb    primitives.HostBridge

	paused int
	quits  int
	breaks int
}

func (e *emulator) Processor() primitives.Processor { return e.cpu }
func (e *emulator) NetworkManager() primitives.NetworkManager { return e.net }
func (e *emulator) SoundManager() primitives.SoundManager { return e.snd }
func (e *emulator) ScreenManager() primitives.ScreenManager { return e.scr }
func (e *emulator) PlatformManager() primitives.PlatformManager { return e.plt }
func (e *emulator) VirtualizedCalls() primitives.VirtualizedCalls { return e.vc }
func (e *emulator) SerialPorts() primitives.SerialPorts { return e.ports }
func (e *emulator) HostCalls() primitives.HostCalls { return e.hc }
func (e *emulator) HostBridge() primitives.HostBridge { return e.hb }
func (e *emulator) PauseSystem() { e.paused++ }
func (e *emulator) Quit() { e.quits++ }
func (e *emulator) BreakInMonitor() { e.breaks++ }

type machine struct {
	log  *logger.Logger
	mem  *memory.Memory
	cpu  *cpu.Registers
	emu  *emulator
	prim *primitives.Primitives
}

func newMachine() *machine {
	m := &machine{
		log: logger.NewLogger(1000),
		mem: memory.NewDefaultMemory(),
		cpu: cpu.NewRegisters(),
	}
	m.emu = &emulator{cpu: m.cpu}
	m.prim = primitives.NewPrimitives(m.log, m.mem)
	m.prim.SetEmulator(m.emu)

	// boot progress would otherwise count the first execution of many of
	// the instructions used in the tests
	m.prim.SetBootProgress(false)

	m.cpu.SetRegister(cpu.SP, stack)
	return m
}

// call sets R0 to R3 and dispatches the instruction.
func (m *machine) call(instruction uint32, regs ...uint32) {
	for i, r := range regs {
		m.cpu.SetRegister(i, r)
	}
	m.prim.Dispatch(instruction)
}

// stackArg sets the fifth argument of the next call.
func (m *machine) stackArg(v uint32) {
	_ = m.mem.Write(stack+4, v)
}

func (m *machine) r0() uint32 {
	return m.cpu.GetRegister(0)
}

func (m *machine) word(address uint32) uint32 {
	v, _ := m.mem.Read(address)
	return v
}

type virtualized struct {
	ids []uint32
}

func (v *virtualized) Execute(id uint32) {
	v.ids = append(v.ids, id)
}

type blit struct {
	pixmap uint32
	src    primitives.Rect
	dst    primitives.Rect
	mode   uint32
}

type screen struct {
	overlay  bool
	progress []int
	titles   []string
	blits    []blit
	samples  [][2]uint32

	contrast    bool
	backlight   bool
	orientation uint32
	sampleRate  uint32
	powered     bool
}

func (s *screen) ScreenWidth() uint32 { return 320 }
func (s *screen) ScreenHeight() uint32 { return 480 }
func (s *screen) BitsPerPixel() uint32 { return 4 }
func (s *screen) PowerOnScreen() { s.powered = true }
func (s *screen) PowerOffScreen() { s.powered = false }
func (s *screen) Contrast() uint32 { return map[bool]uint32{true: 1}[s.contrast] }
func (s *screen) SetContrast(on bool) { s.contrast = on }
func (s *screen) Backlight() bool { return s.backlight }
func (s *screen) SetBacklight(on bool) { s.backlight = on }
func (s *screen) Orientation() uint32 { return s.orientation }
func (s *screen) SetOrientation(o uint32) { s.orientation = o }
func (s *screen) WakeUpTablet() {}
func (s *screen) ShutDownTablet() {}
func (s *screen) TabletSampleRate() uint32 { return s.sampleRate }
func (s *screen) SetTabletSampleRate(rate uint32) { s.sampleRate = rate }
func (s *screen) SetTabletOrientation(_ uint32) {}
func (s *screen) TabletState() uint32 { return 0 }
func (s *screen) StartBypassTablet() {}
func (s *screen) StopBypassTablet() {}
func (s *screen) OverlayIsOn() bool { return s.overlay }
func (s *screen) OverlayOff() { s.overlay = false }
func (s *screen) OverlayPrintProgress(_ int, p int) { s.progress = append(s.progress, p) }
func (s *screen) OverlayFlush() {}

func (s *screen) Blit(pixmap uint32, src primitives.Rect, dst primitives.Rect, mode uint32) {
	s.blits = append(s.blits, blit{pixmap: pixmap, src: src, dst: dst, mode: mode})
}

func (s *screen) OverlayPrintAt(_ int, _ int, text string, _ bool) {
	s.titles = append(s.titles, text)
}

func (s *screen) GetSample() (uint32, uint32, bool) {
	if len(s.samples) == 0 {
		return 0, 0, false
	}
	v := s.samples[0]
	s.samples = s.samples[1:]
	return v[0], v[1], true
}

type scheduled struct {
	address uint32
	amount  uint32
}

type sound struct {
	output  []scheduled
	input   []scheduled
	running bool
	volume  uint32
	masks   [2]uint32
}

func (s *sound) ScheduleOutputBuffer(address uint32, amount uint32) {
	s.output = append(s.output, scheduled{address, amount})
}

func (s *sound) ScheduleInputBuffer(address uint32, amount uint32) {
	s.input = append(s.input, scheduled{address, amount})
}

func (s *sound) StartOutput() { s.running = true }
func (s *sound) StopOutput() { s.running = false }
func (s *sound) OutputIsRunning() bool { return s.running }
func (s *sound) SetOutputVolume(volume uint32) { s.volume = volume }
func (s *sound) OutputVolume() uint32 { return s.volume }
func (s *sound) SetInterruptMask(o, i uint32) { s.masks = [2]uint32{o, i} }

type platform struct {
	powerSwitch int
	installs    int
	poweredOff  int
	events      []uint32
}

func (p *platform) PowerOn() {}
func (p *platform) PowerOff() { p.poweredOff++ }
func (p *platform) SendPowerSwitchEvent() { p.powerSwitch++ }
func (p *platform) InstallNewPackages() { p.installs++ }
func (p *platform) LockEventQueue() {}
func (p *platform) UnlockEventQueue() {}
func (p *platform) HostTimeZone() uint32 { return 3600 }
func (p *platform) CalibrateTablet() {}
func (p *platform) OpenEinsteinMenu() {}
func (p *platform) DisposeBuffer(_ uint32) uint32 { return 0 }

func (p *platform) GetNextEvent(address uint32) bool {
	p.events = append(p.events, address)
	return len(p.events) == 1
}

func (p *platform) GetUserInfo(selector uint32, _ uint32, _ uint32) uint32 {
	return selector + 1
}

func (p *platform) CopyBufferData(_ uint32, _ uint32, _ uint32, amount uint32) uint32 {
	return amount
}

func (p *platform) NewtonScriptCall(fn uint32, _ uint32, _ uint32) uint32 {
	return fn
}

type network struct {
	sent     [][]byte
	received int
	timers   int
	logged   [][]byte
	pending  []byte
}

func (n *network) SendPacket(data []byte) error {
	n.sent = append(n.sent, data)
	return nil
}

func (n *network) DeviceAddress() [6]byte {
	return [6]byte{0x00, 0x0a, 0x95, 0x01, 0x02, 0x03}
}

func (n *network) TimerExpired() { n.timers++ }

func (n *network) DataAvailable() uint32 {
	return uint32(len(n.pending))
}

func (n *network) ReceiveData(data []byte) error {
	n.received++
	copy(data, n.pending)
	return nil
}

func (n *network) LogBuffer(data []byte) {
	n.logged = append(n.logged, data)
}
