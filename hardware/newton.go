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

package hardware

import (
	"io"
	"os"
	"sync"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/digest"
	"github.com/jetsetilly/goeinstein/hardware/cpu"
	"github.com/jetsetilly/goeinstein/hardware/hostcall"
	"github.com/jetsetilly/goeinstein/hardware/interrupts"
	"github.com/jetsetilly/goeinstein/hardware/memory"
	"github.com/jetsetilly/goeinstein/hardware/network"
	"github.com/jetsetilly/goeinstein/hardware/platform"
	"github.com/jetsetilly/goeinstein/hardware/preferences"
	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/hardware/screen"
	"github.com/jetsetilly/goeinstein/hardware/serial"
	"github.com/jetsetilly/goeinstein/hardware/sound"
	"github.com/jetsetilly/goeinstein/hardware/stream"
	"github.com/jetsetilly/goeinstein/logger"
	"github.com/jetsetilly/goeinstein/paths"
	"github.com/jetsetilly/goeinstein/prefs"
	"github.com/jetsetilly/goeinstein/wavwriter"
)

// Newton is a headless machine. It has no processor emulation of its own.
// Instructions reach the native primitives through Dispatch().
type Newton struct {
	Prefs *preferences.Preferences
	Log   *logger.Logger

	CPU        *cpu.Registers
	Mem        *memory.Memory
	Interrupts *interrupts.Manager
	Primitives *primitives.Primitives

	Ports    *serial.Ports
	Sound    *sound.Manager
	Screen   *screen.Screen
	Platform *platform.Platform
	Network  primitives.NetworkManager

	// nil if host calls are disabled in the preferences
	Host *hostcall.Bridge

	capture     *wavwriter.WavWriter
	videoDigest *digest.Video
	audioDigest *digest.Audio
	vc          primitives.VirtualizedCalls

	crit    sync.Mutex
	paused  bool
	quit    bool
	monitor int
}

// NewNewton creates a new Newton and everything attached to it. If log is
// nil the central logger is used.
//
// Failure to create the serial host port is an error. The machine is not
// created without it.
func NewNewton(log *logger.Logger, p *preferences.Preferences) (*Newton, error) {
	if log == nil {
		log = logger.Central()
	}

	n := &Newton{
		Prefs:      p,
		Log:        log,
		CPU:        cpu.NewRegisters(),
		Mem:        memory.NewDefaultMemory(),
		Interrupts: interrupts.NewManager(),
		Ports:      serial.NewPorts(),
	}

	n.Primitives = primitives.NewPrimitives(log, n.Mem)
	n.Primitives.SetLogMask(uint32(p.LogMask.Get().(int)))
	n.Primitives.SetBootProgress(p.BootProgress.Get().(bool))

	// log mask can change while the machine is running
	p.LogMask.SetHookPost(func(v prefs.Value) error {
		n.Primitives.SetLogMask(uint32(v.(int64)))
		return nil
	})

	var err error

	n.Network, err = network.NewManager(p.NetworkDriver.String(), log, n.Interrupts)
	if err != nil {
		return nil, err
	}

	n.Screen = screen.NewScreen(log, n.Mem, p.ScreenWidth.Get().(int), p.ScreenHeight.Get().(int))

	n.Platform = platform.NewPlatform(log, n.Mem, n.Interrupts)
	n.Platform.SetMenu(n.BreakInMonitor)

	n.Sound = sound.NewManager(log, n.Mem, n.Interrupts)
	n.audioDigest = digest.NewAudio()
	n.Sound.AddSink(n.audioDigest)
	n.videoDigest = digest.NewVideo(n.Screen)
	if fn := p.SoundCapture.String(); fn != "" {
		n.capture, err = wavwriter.New(fn)
		if err != nil {
			return nil, err
		}
		n.Sound.AddSink(n.capture)
	}
	if fn := p.SoundInput.String(); fn != "" {
		in, err := sound.LoadInput(fn)
		if err != nil {
			return nil, err
		}
		n.Sound.SetInput(in, n.Primitives.InputVolume)
	}

	if p.HostCalls.Get().(bool) {
		n.Host = hostcall.NewBridge(log)
	}

	hp, err := serial.NewHostPort(p.SerialDriver.String(), log, n.Interrupts, uint32(p.SerialLocation.Get().(int)))
	if err == nil {
		err = n.Ports.Add(hp)
		if err != nil {
			_ = hp.Close()
		}
	}
	if err != nil {
		if n.Host != nil {
			n.Host.Close()
		}
		return nil, err
	}

	n.Primitives.SetEmulator(n)

	return n, nil
}

// Dispatch the instruction word to the native primitives.
func (n *Newton) Dispatch(instruction uint32) {
	n.Primitives.Dispatch(instruction)
}

// SetVirtualizedCalls attaches the executor of virtualized calls. Calls are
// not available until one is attached.
func (n *Newton) SetVirtualizedCalls(vc primitives.VirtualizedCalls) {
	n.vc = vc
}

// PowerSwitch sends the power switch event to the guest.
func (n *Newton) PowerSwitch() {
	n.Platform.SendPowerSwitchEvent()
}

// ScreenDigest adds the current screen to the screen digest and returns the
// new value.
func (n *Newton) ScreenDigest() string {
	return n.videoDigest.Snapshot()
}

// AudioDigest returns the digest of all sound output so far.
func (n *Newton) AudioDigest() string {
	return n.audioDigest.Hash()
}

// Processor implements the primitives.Emulator interface.
func (n *Newton) Processor() primitives.Processor {
	return n.CPU
}

// NetworkManager implements the primitives.Emulator interface.
func (n *Newton) NetworkManager() primitives.NetworkManager {
	return n.Network
}

// SoundManager implements the primitives.Emulator interface.
func (n *Newton) SoundManager() primitives.SoundManager {
	return n.Sound
}

// ScreenManager implements the primitives.Emulator interface.
func (n *Newton) ScreenManager() primitives.ScreenManager {
	return n.Screen
}

// PlatformManager implements the primitives.Emulator interface.
func (n *Newton) PlatformManager() primitives.PlatformManager {
	return n.Platform
}

// VirtualizedCalls implements the primitives.Emulator interface.
func (n *Newton) VirtualizedCalls() primitives.VirtualizedCalls {
	return n.vc
}

// SerialPorts implements the primitives.Emulator interface.
func (n *Newton) SerialPorts() primitives.SerialPorts {
	return n.Ports
}

// HostCalls implements the primitives.Emulator interface.
func (n *Newton) HostCalls() primitives.HostCalls {
	if n.Host == nil {
		return nil
	}
	return n.Host
}

// HostBridge implements the primitives.Emulator interface. There is no object
// bridge on any of the supported hosts.
func (n *Newton) HostBridge() primitives.HostBridge {
	return nil
}

// PauseSystem implements the primitives.Emulator interface. The machine stays
// paused until an interrupt is raised or Resume() is called.
func (n *Newton) PauseSystem() {
	n.crit.Lock()
	defer n.crit.Unlock()
	if n.Interrupts.Pending() != 0 {
		return
	}
	n.paused = true
}

// Resume a paused machine.
func (n *Newton) Resume() {
	n.crit.Lock()
	defer n.crit.Unlock()
	n.paused = false
}

// Paused returns true if the guest has paused the system and no interrupt
// has been raised since.
func (n *Newton) Paused() bool {
	n.crit.Lock()
	defer n.crit.Unlock()
	if n.paused && n.Interrupts.Pending() != 0 {
		n.paused = false
	}
	return n.paused
}

// Quit implements the primitives.Emulator interface.
func (n *Newton) Quit() {
	n.crit.Lock()
	defer n.crit.Unlock()
	n.quit = true
}

// Quitting returns true if Quit() has been called.
func (n *Newton) Quitting() bool {
	n.crit.Lock()
	defer n.crit.Unlock()
	return n.quit
}

// BreakInMonitor implements the primitives.Emulator interface. There is no
// monitor in a headless machine so the request is counted and logged.
func (n *Newton) BreakInMonitor() {
	n.crit.Lock()
	n.monitor++
	n.crit.Unlock()
	n.Log.Log(logger.Allow, "newton", "break in monitor")
}

// MonitorBreaks returns the number of calls to BreakInMonitor().
func (n *Newton) MonitorBreaks() int {
	n.crit.Lock()
	defer n.crit.Unlock()
	return n.monitor
}

// SaveState writes the driver state to the writer.
func (n *Newton) SaveState(w io.Writer) error {
	return n.Primitives.TransferState(stream.NewWriter(w))
}

// LoadState reads the driver state from the reader.
func (n *Newton) LoadState(r io.Reader) error {
	return n.Primitives.TransferState(stream.NewReader(r))
}

// SaveStateFile writes the driver state to the named file.
func (n *Newton) SaveStateFile(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("newton: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("newton: %v", err)
		}
	}()
	return n.SaveState(f)
}

// LoadStateFile reads the driver state from the named file.
func (n *Newton) LoadStateFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf("newton: %v", err)
	}
	defer f.Close()
	return n.LoadState(f)
}

// Screenshot writes the screen to the named file as a PNG. If filename is
// empty a unique name is made in the resource directory.
func (n *Newton) Screenshot(filename string, scale int) (rerr error) {
	if filename == "" {
		var err error
		filename, err = paths.ResourcePath("", paths.UniqueFilename("screenshot", "png"))
		if err != nil {
			return err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("newton: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("newton: %v", err)
		}
	}()

	err = n.Screen.Screenshot(f, scale)
	if err != nil {
		return err
	}
	n.Log.Logf(logger.Allow, "newton", "screenshot saved to %s", filename)
	return nil
}

// Close releases all host resources. The sound capture file is written at
// this point.
func (n *Newton) Close() error {
	var errs []error

	if err := n.Ports.Close(); err != nil {
		errs = append(errs, err)
	}
	if n.capture != nil {
		if err := n.capture.Close(); err != nil {
			errs = append(errs, err)
		}
		n.capture = nil
	}
	if n.Host != nil {
		n.Host.Close()
	}
	n.Primitives.SetEmulator(nil)

	if len(errs) > 0 {
		return curated.Errorf("newton: %v", errs[0])
	}
	return nil
}

var _ primitives.Emulator = (*Newton)(nil)
var _ primitives.SoundManager = (*sound.Manager)(nil)
var _ primitives.SerialPorts = (*serial.Ports)(nil)
