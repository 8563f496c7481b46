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

// Package sound is the headless sound manager. Output buffers scheduled by
// the guest are read from guest memory and passed to any number of Sink
// implementations. Input buffers are filled from an Input, or with silence
// if there is no input.
//
// Guest sound data is 16 bit signed big-endian mono at SampleRate.
package sound

import (
	"sync"

	"github.com/jetsetilly/goeinstein/logger"
)

// SampleRate of guest sound data.
const SampleRate = 22050

// interrupt sources raised when a scheduled buffer has been consumed.
const (
	OutputInterrupt = 0x00000400
	InputInterrupt  = 0x00000800
)

// Memory is the guest memory used by the sound manager.
type Memory interface {
	ReadB(address uint32) (uint8, error)
	WriteB(address uint32, value uint8) error
}

// Interrupts is the interrupt controller used by the sound manager.
type Interrupts interface {
	RaiseInterrupt(mask uint32)
}

// Sink receives the samples of every output buffer that is played.
type Sink interface {
	WriteSamples(samples []int16) error
}

type buffer struct {
	address uint32
	amount  uint32
}

// Manager implements the primitives.SoundManager interface.
type Manager struct {
	log  *logger.Logger
	mem  Memory
	ints Interrupts

	crit sync.Mutex

	running bool
	volume  uint32

	// interrupts are only raised if the mask for that direction is not zero
	outputMask uint32
	inputMask  uint32

	// buffers scheduled while output is stopped
	queued []buffer

	sinks []Sink

	input       *Input
	inputVolume func() uint8
}

// NewManager is the preferred method of initialisation for the Manager type.
func NewManager(log *logger.Logger, mem Memory, ints Interrupts) *Manager {
	if log == nil {
		log = logger.Central()
	}
	return &Manager{
		log:  log,
		mem:  mem,
		ints: ints,
	}
}

// AddSink adds a destination for output samples.
func (m *Manager) AddSink(s Sink) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.sinks = append(m.sinks, s)
}

// SetInput sets the source of input samples. The volume function is called
// whenever an input buffer is filled. A nil volume function means full
// volume.
func (m *Manager) SetInput(in *Input, volume func() uint8) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.input = in
	m.inputVolume = volume
}

// raise an interrupt if the mask is not zero. must be called outside of the
// critical section because interrupt handlers may call the sound manager.
func (m *Manager) raise(mask uint32, interrupt uint32) {
	if mask != 0 && m.ints != nil {
		m.ints.RaiseInterrupt(interrupt)
	}
}

// MaxBufferSize is the largest sound buffer in bytes. Larger buffers are
// truncated.
const MaxBufferSize = 0x10000

func (m *Manager) bufferSize(amount uint32) uint32 {
	if amount > MaxBufferSize {
		m.log.Logf(logger.Allow, "sound", "buffer of %d bytes truncated to %d", amount, MaxBufferSize)
		return MaxBufferSize
	}
	return amount
}

// ScheduleOutputBuffer implements the primitives.SoundManager interface.
func (m *Manager) ScheduleOutputBuffer(address uint32, amount uint32) {
	amount = m.bufferSize(amount)

	m.crit.Lock()

	b := buffer{address: address, amount: amount}
	if !m.running {
		m.queued = append(m.queued, b)
		m.crit.Unlock()
		return
	}
	m.play(b)

	mask := m.outputMask
	m.crit.Unlock()

	m.raise(mask, OutputInterrupt)
}

// play must be called from inside the critical section.
func (m *Manager) play(b buffer) {
	samples := make([]int16, b.amount/2)
	for i := range samples {
		hi, err := m.mem.ReadB(b.address + uint32(i*2))
		if err != nil {
			m.log.Log(logger.Allow, "sound", err)
			samples = samples[:i]
			break // for loop
		}
		lo, err := m.mem.ReadB(b.address + uint32(i*2) + 1)
		if err != nil {
			m.log.Log(logger.Allow, "sound", err)
			samples = samples[:i]
			break // for loop
		}
		samples[i] = int16(uint16(hi)<<8 | uint16(lo))
	}

	for _, s := range m.sinks {
		if err := s.WriteSamples(samples); err != nil {
			m.log.Log(logger.Allow, "sound", err)
		}
	}
}

// ScheduleInputBuffer implements the primitives.SoundManager interface.
func (m *Manager) ScheduleInputBuffer(address uint32, amount uint32) {
	amount = m.bufferSize(amount)

	m.crit.Lock()

	samples := make([]int16, amount/2)
	if m.input != nil {
		m.input.Read(samples)
	}

	volume := 0xff
	if m.inputVolume != nil {
		volume = int(m.inputVolume())
	}

	for i, s := range samples {
		v := uint16(int(s) * volume / 0xff)
		if err := m.mem.WriteB(address+uint32(i*2), uint8(v>>8)); err != nil {
			m.log.Log(logger.Allow, "sound", err)
			break // for loop
		}
		if err := m.mem.WriteB(address+uint32(i*2)+1, uint8(v)); err != nil {
			m.log.Log(logger.Allow, "sound", err)
			break // for loop
		}
	}

	mask := m.inputMask
	m.crit.Unlock()

	m.raise(mask, InputInterrupt)
}

// StartOutput implements the primitives.SoundManager interface. Any buffers
// scheduled while output was stopped are played immediately.
func (m *Manager) StartOutput() {
	m.crit.Lock()

	m.running = true
	played := len(m.queued)
	for _, b := range m.queued {
		m.play(b)
	}
	m.queued = m.queued[:0]

	mask := m.outputMask
	m.crit.Unlock()

	for range played {
		m.raise(mask, OutputInterrupt)
	}
}

// StopOutput implements the primitives.SoundManager interface.
func (m *Manager) StopOutput() {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.running = false
}

// OutputIsRunning implements the primitives.SoundManager interface.
func (m *Manager) OutputIsRunning() bool {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.running
}

// SetOutputVolume implements the primitives.SoundManager interface. The
// headless manager records the volume but does not apply it to the samples.
func (m *Manager) SetOutputVolume(volume uint32) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.volume = volume
}

// OutputVolume implements the primitives.SoundManager interface.
func (m *Manager) OutputVolume() uint32 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.volume
}

// SetInterruptMask implements the primitives.SoundManager interface.
func (m *Manager) SetInterruptMask(output uint32, input uint32) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.outputMask = output
	m.inputMask = input
}
