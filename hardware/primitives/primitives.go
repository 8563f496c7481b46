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

	"github.com/jetsetilly/goeinstein/logger"
)

// the registers that have special meaning to the native primitives.
const (
	regResult = 0
	regSP     = 13
	regPC     = 15
)

// VirtualizedBit is set in instruction words that are virtualized calls.
const VirtualizedBit = 0x80000000

// the log mask used for diagnostics not belonging to any device class.
const unknownClassMask = 0xcafebabe

// handlers are called with the primitives instance. the instruction being
// executed is in Primitives.instruction.
type handler func(p *Primitives)

type opcode struct {
	name string
	fn   handler

	// the opcode is not traced automatically. used for opcodes that are
	// called very frequently or that trace their own arguments
	quiet bool
}

type deviceClass struct {
	name    string
	logBit  uint32
	opcodes map[uint8]opcode

	// if available is not nil and returns false then the opcode table is not
	// consulted. the unsupported handler is called instead or, if there is
	// no unsupported handler, the class is treated as unknown
	available   func(p *Primitives) bool
	unsupported handler

	// called before the opcode table is consulted. returns false if dispatch
	// should go no further
	intercept func(p *Primitives) bool
}

// tracePermission allows logging if the class bit is set in the log mask.
type tracePermission struct {
	p   *Primitives
	bit uint32
}

// AllowLogging implements the logger.Permission interface.
func (t tracePermission) AllowLogging() bool {
	return t.p.logMask&t.bit != 0
}

// Primitives is the dispatch router for the native primitives. It also owns
// the opaque state of the device drivers.
type Primitives struct {
	log *logger.Logger
	mem Memory

	emu Emulator
	cpu Processor

	classes map[uint32]*deviceClass
	logMask uint32

	// the instruction and class being dispatched
	instruction uint32
	current     *deviceClass

	// flash, sound and tablet driver state
	tablet        tabletCalibration
	sampleRate    uint32
	inputVolume   uint8
	outputBuffer1 uint32
	outputBuffer2 uint32
	inputBuffer1  uint32
	inputBuffer2  uint32

	// the serial location ID read by the serial class intercept
	serialLocation uint32

	// quit has been requested once and the guest has been asked to power off
	quitPending bool

	progress bootProgress
}

// NewPrimitives is the preferred method of initialisation for the Primitives
// type. If log is nil the central logger is used.
func NewPrimitives(log *logger.Logger, mem Memory) *Primitives {
	if log == nil {
		log = logger.Central()
	}

	p := &Primitives{
		log:      log,
		mem:      mem,
		progress: newBootProgress(),
	}

	p.classes = map[uint32]*deviceClass{
		0:  newFlashClass(),
		1:  newPlatformClass(),
		2:  newSoundClass(),
		3:  newBatteryClass(),
		4:  newScreenClass(),
		5:  newTabletClass(),
		6:  newSerialClass(),
		7:  newTranslatorClass("in translator", 7),
		8:  newTranslatorClass("out translator", 8),
		9:  newHostCallClass(),
		10: newNetworkClass(),
		11: newHostBridgeClass(),
	}

	return p
}

// SetEmulator binds the emulator to the primitives. A nil emulator unbinds
// the current emulator.
func (p *Primitives) SetEmulator(emu Emulator) {
	p.emu = emu
	if emu == nil {
		p.cpu = nil
		return
	}
	p.cpu = emu.Processor()
}

// SetLogMask selects which device classes trace their opcodes. Bit n of the
// mask enables tracing for class n.
func (p *Primitives) SetLogMask(mask uint32) {
	p.logMask = mask
}

// LogMask returns the current log mask.
func (p *Primitives) LogMask() uint32 {
	return p.logMask
}

// InputVolume returns the input volume set by the guest sound driver.
func (p *Primitives) InputVolume() uint8 {
	return p.inputVolume
}

// Dispatch executes the native primitive or virtualized call encoded in the
// instruction word.
func (p *Primitives) Dispatch(instruction uint32) {
	if p.emu == nil || p.cpu == nil {
		p.log.Logf(logger.Allow, "primitives", "no emulator for instruction %08x", instruction)
		return
	}

	p.instruction = instruction

	if instruction&VirtualizedBit == VirtualizedBit {
		vc := p.emu.VirtualizedCalls()
		if vc == nil {
			p.log.Logf(logger.Allow, "primitives", "no virtualized calls for %08x (pc=%08x)",
				instruction, p.cpu.GetRegister(regPC))
			return
		}
		vc.Execute(instruction &^ VirtualizedBit)
		return
	}

	p.progress.step(p, instruction)

	cls, ok := p.classes[instruction>>8]
	if ok && cls.available != nil && !cls.available(p) {
		if cls.unsupported != nil {
			p.current = cls
			cls.unsupported(p)
			return
		}
		ok = false
	}

	if !ok {
		p.current = nil
		p.log.Logf(logger.Allow, "primitives", "unimplemented native primitive %08x (pc=%08x)",
			instruction, p.cpu.GetRegister(regPC))
		return
	}

	p.current = cls

	if cls.intercept != nil && !cls.intercept(p) {
		return
	}

	op, ok := cls.opcodes[uint8(instruction)]
	if !ok {
		p.log.Logf(logger.Allow, cls.name, "unknown native primitive %08x (pc=%08x)",
			instruction, p.cpu.GetRegister(regPC))
		p.setResult(0)
		return
	}

	if !op.quiet {
		p.trace("%s", op.name)
	}
	op.fn(p)
}

// trace adds a log entry for the current class if the log mask allows it.
func (p *Primitives) trace(format string, args ...any) {
	if p.current == nil {
		p.log.Logf(tracePermission{p: p, bit: unknownClassMask}, "primitives", format, args...)
		return
	}
	p.log.Logf(tracePermission{p: p, bit: p.current.logBit}, p.current.name, format, args...)
}

// diagnostic is always logged.
func (p *Primitives) diagnostic(format string, args ...any) {
	tag := "primitives"
	if p.current != nil {
		tag = p.current.name
	}
	p.log.Logf(logger.Allow, tag, format, args...)
}

// missing logs the absence of a manager and returns zero to the guest.
func (p *Primitives) missing(manager string) {
	p.diagnostic("no %s for %08x (pc=%08x)", manager, p.instruction, p.cpu.GetRegister(regPC))
	p.setResult(0)
}

func (p *Primitives) reg(n int) uint32 {
	return p.cpu.GetRegister(n)
}

func (p *Primitives) setResult(v uint32) {
	p.cpu.SetRegister(regResult, v)
}

func (p *Primitives) setResultBool(v bool) {
	if v {
		p.setResult(1)
	} else {
		p.setResult(0)
	}
}

// setError puts a negative guest error code into the result register.
func (p *Primitives) setError(code int32) {
	p.setResult(uint32(code))
}

// stackArg returns the fifth argument of the call, which is on the stack.
func (p *Primitives) stackArg() uint32 {
	return p.read(p.reg(regSP) + 4)
}

// read a word from guest memory. faults are logged and the value returned
// is zero.
func (p *Primitives) read(address uint32) uint32 {
	v, err := p.mem.Read(address)
	if err != nil {
		p.diagnostic("%v (pc=%08x)", err, p.cpu.GetRegister(regPC))
		return 0
	}
	return v
}

// write a word to guest memory. faults are logged.
func (p *Primitives) write(address uint32, value uint32) {
	if err := p.mem.Write(address, value); err != nil {
		p.diagnostic("%v (pc=%08x)", err, p.cpu.GetRegister(regPC))
	}
}

// writeWords writes consecutive words starting at the address.
func (p *Primitives) writeWords(address uint32, words ...uint32) {
	for i, w := range words {
		p.write(address+uint32(i*4), w)
	}
}

// MaxTransfer is the largest block of bytes that a primitive will copy
// between guest memory and a host manager in one call.
const MaxTransfer = 0x10000

// transferSize checks the size of a block copy requested by the guest.
// Oversized requests are logged.
func (p *Primitives) transferSize(n uint32) bool {
	if n > MaxTransfer {
		p.diagnostic("transfer of %d bytes is larger than %d (pc=%08x)", n, MaxTransfer, p.cpu.GetRegister(regPC))
		return false
	}
	return true
}

// readBytes copies n bytes out of guest memory. Returns nil if n is larger
// than MaxTransfer.
func (p *Primitives) readBytes(address uint32, n uint32) []byte {
	if !p.transferSize(n) {
		return nil
	}
	data := make([]byte, n)
	for i := range data {
		b, err := p.mem.ReadB(address + uint32(i))
		if err != nil {
			p.diagnostic("%v (pc=%08x)", err, p.cpu.GetRegister(regPC))
			break // for loop
		}
		data[i] = b
	}
	return data
}

// writeBytes copies data into guest memory.
func (p *Primitives) writeBytes(address uint32, data []byte) {
	for i, b := range data {
		if err := p.mem.WriteB(address+uint32(i), b); err != nil {
			p.diagnostic("%v (pc=%08x)", err, p.cpu.GetRegister(regPC))
			return
		}
	}
}

// readString reads a null terminated string of at most max-1 characters.
func (p *Primitives) readString(address uint32, max int) string {
	s, err := p.mem.ReadString(address, max)
	if err != nil {
		p.diagnostic("%v (pc=%08x)", err, p.cpu.GetRegister(regPC))
	}
	return s
}

// String returns a one line summary of the driver state.
func (p *Primitives) String() string {
	return fmt.Sprintf("log mask=%08x sample rate=%08x input volume=%02x quit pending=%v",
		p.logMask, p.sampleRate, p.inputVolume, p.quitPending)
}
