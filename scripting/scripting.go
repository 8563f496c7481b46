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

package scripting

import (
	"context"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/logger"
	lua "github.com/yuin/gopher-lua"
)

// Emulation is the machine being controlled by the script.
type Emulation interface {
	Dispatch(instruction uint32)
	Processor() primitives.Processor
	SaveStateFile(filename string) error
	LoadStateFile(filename string) error
	Screenshot(filename string, scale int) error
	ScreenDigest() string
	AudioDigest() string
	PowerSwitch()
	Paused() bool
	Quitting() bool
}

// Memory is the guest address space as seen by the script.
type Memory interface {
	Read(address uint32) (uint32, error)
	ReadB(address uint32) (uint8, error)
	Write(address uint32, value uint32) error
	Poke(address uint32, data []byte) error
}

// Script runs Lua scripts against an emulation. A Script can run more than
// one script and global values persist between them.
type Script struct {
	emulation Emulation
	mem       Memory
	log       *logger.Logger

	L *lua.LState
}

// NewScript is the preferred method of initialisation for the Script type.
// If log is nil the central logger is used.
func NewScript(emulation Emulation, mem Memory, log *logger.Logger) *Script {
	if log == nil {
		log = logger.Central()
	}

	scr := &Script{
		emulation: emulation,
		mem:       mem,
		log:       log,
		L:         lua.NewState(),
	}

	funcs := map[string]lua.LGFunction{
		"dispatch":   scr.dispatch,
		"reg":        scr.reg,
		"setreg":     scr.setreg,
		"peek":       scr.peek,
		"peekb":      scr.peekb,
		"poke":       scr.poke,
		"pokestr":    scr.pokestr,
		"save":       scr.save,
		"load":       scr.load,
		"power":      scr.power,
		"paused":     scr.paused,
		"quitting":   scr.quitting,
		"screenshot": scr.screenshot,
		"digest":     scr.digest,
		"log":        scr.logMessage,
		"dump":       scr.dump,
	}
	for name, fn := range funcs {
		scr.L.SetGlobal(name, scr.L.NewFunction(fn))
	}

	return scr
}

// Close the Lua state. The Script cannot be used after this.
func (scr *Script) Close() {
	scr.L.Close()
}

// Run the script in the named file. The script is stopped if the context is
// cancelled.
func (scr *Script) Run(ctx context.Context, filename string) error {
	scr.L.SetContext(ctx)
	defer scr.L.RemoveContext()
	if err := scr.L.DoFile(filename); err != nil {
		return curated.Errorf("script: %v", err)
	}
	return nil
}

// RunString runs the script in the string.
func (scr *Script) RunString(ctx context.Context, source string) error {
	scr.L.SetContext(ctx)
	defer scr.L.RemoveContext()
	if err := scr.L.DoString(source); err != nil {
		return curated.Errorf("script: %v", err)
	}
	return nil
}

// word returns argument n truncated to 32 bits.
func word(L *lua.LState, n int) uint32 {
	return uint32(L.CheckInt64(n))
}

func register(L *lua.LState, n int) int {
	r := L.CheckInt(n)
	if r < 0 || r > 15 {
		L.ArgError(n, "register must be between 0 and 15")
	}
	return r
}

func (scr *Script) dispatch(L *lua.LState) int {
	scr.emulation.Dispatch(word(L, 1))
	return 0
}

func (scr *Script) reg(L *lua.LState) int {
	L.Push(lua.LNumber(scr.emulation.Processor().GetRegister(register(L, 1))))
	return 1
}

func (scr *Script) setreg(L *lua.LState) int {
	scr.emulation.Processor().SetRegister(register(L, 1), word(L, 2))
	return 0
}

func (scr *Script) peek(L *lua.LState) int {
	v, err := scr.mem.Read(word(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) peekb(L *lua.LState) int {
	v, err := scr.mem.ReadB(word(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) poke(L *lua.LState) int {
	if err := scr.mem.Write(word(L, 1), word(L, 2)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) pokestr(L *lua.LState) int {
	data := append([]byte(L.CheckString(2)), 0)
	if err := scr.mem.Poke(word(L, 1), data); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) save(L *lua.LState) int {
	if err := scr.emulation.SaveStateFile(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) load(L *lua.LState) int {
	if err := scr.emulation.LoadStateFile(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) power(L *lua.LState) int {
	scr.emulation.PowerSwitch()
	return 0
}

func (scr *Script) paused(L *lua.LState) int {
	L.Push(lua.LBool(scr.emulation.Paused()))
	return 1
}

func (scr *Script) quitting(L *lua.LState) int {
	L.Push(lua.LBool(scr.emulation.Quitting()))
	return 1
}

func (scr *Script) screenshot(L *lua.LState) int {
	if err := scr.emulation.Screenshot(L.OptString(1, ""), L.OptInt(2, 1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) digest(L *lua.LState) int {
	L.Push(lua.LString(scr.emulation.ScreenDigest()))
	L.Push(lua.LString(scr.emulation.AudioDigest()))
	return 2
}

func (scr *Script) logMessage(L *lua.LState) int {
	scr.log.Log(logger.Allow, "script", L.CheckString(1))
	return 0
}

// the graph is of the emulation value. for a Newton that is the entire
// machine, including guest memory, so the output can be very large.
func (scr *Script) dump(L *lua.LState) int {
	f, err := os.Create(L.CheckString(1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	memviz.Map(f, scr.emulation)
	if err := f.Close(); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}
