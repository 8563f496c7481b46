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

// the number of boot steps. step numbers run from 1 to bootSteps.
const bootSteps = 46

type bootStep struct {
	progress int
	title    string

	// the final step ends boot progress reporting
	final bool
}

// the boot steps are identified by the first execution of particular
// instructions. some steps do not have a title.
var bootTable = map[uint32]bootStep{
	0x003: {progress: 1, title: "Init Flash"},
	0x001: {progress: 2, title: "Identify Flash"},
	0x004: {progress: 3, title: "Init Flash Driver"},
	0x00a: {progress: 4, title: "Reset Flash Block Status"},
	0x006: {progress: 5, title: "Read Flash Array"},
	0x007: {progress: 6, title: "Read Flash Array"},
	0x005: {progress: 7, title: "Cleanup Flash Driver Data"},
	0x002: {progress: 8, title: "Cleanup Flash"},
	0x117: {progress: 9, title: "Get Emulator Info"},
	0x103: {progress: 10, title: "Init Platform"},
	0x10b: {progress: 11, title: "Power Off Subsystem"},
	0x21f: {progress: 12},
	0x205: {progress: 13},
	0x206: {progress: 14},
	0x20a: {progress: 15},
	0x20c: {progress: 16},
	0x10a: {progress: 17, title: "Power On Subsystem"},
	0x10d: {progress: 18, title: "Pause System"},
	0x109: {progress: 19, title: "Reset ZAP Store Check"},
	0x301: {progress: 20},
	0x303: {progress: 21, title: "Battery Driver Init"},
	0x404: {progress: 22, title: "Display Power Init"},
	0x403: {progress: 23, title: "Get Screen Info"},
	0x408: {progress: 24, title: "Get Screen Features"},
	0x405: {progress: 25, title: "Screen Power On"},
	0x409: {progress: 26, title: "Set Screen Features"},
	0x204: {progress: 27},
	0x217: {progress: 28},
	0x218: {progress: 29},
	0x503: {progress: 30, title: "Tablet Init"},
	0x50c: {progress: 31, title: "Get Tablet Resolution"},
	0x507: {progress: 32, title: "Get Tablet Sample Rate"},
	0x50d: {progress: 33, title: "Set Tablet Orientation"},
	0x407: {progress: 34, title: "Screen Output"},
	0x213: {progress: 35},
	0x209: {progress: 36},
	0x207: {progress: 37},
	0x211: {progress: 38},
	0x21d: {progress: 39},
	0x20d: {progress: 40},
	0x20f: {progress: 41},
	0x307: {progress: 42},
	0x00d: {progress: 43, title: "Write Flash Memory"},
	0x008: {progress: 44, title: "Write Flash Memory"},

	// "Setup Flash Memory" is the last step that is ever seen in practice.
	// it counts as the final step
	0x00e: {progress: bootSteps, title: "Setup Flash Memory", final: true},
	0x112: {progress: bootSteps, final: true},
}

// bootProgress reports how far the guest has got through the boot sequence.
type bootProgress struct {
	// number of times each instruction has been seen, indexed by the lower
	// twelve bits of the instruction
	counts map[uint32]int

	// the most recent progress value reported
	prev int

	// tracing ends with the final boot step
	tracing bool

	// the first call to PowerOnDeviceCheck removes the overlay
	firstPause bool
}

func newBootProgress() bootProgress {
	return bootProgress{
		counts:     make(map[uint32]int),
		prev:       2,
		tracing:    true,
		firstPause: true,
	}
}

// SetBootProgress turns boot progress reporting on or off.
func (p *Primitives) SetBootProgress(on bool) {
	p.progress.tracing = on
}

// BootProgress returns the most recent boot step reached and whether boot
// progress is still being traced.
func (p *Primitives) BootProgress() (int, bool) {
	return p.progress.prev, p.progress.tracing
}

func (b *bootProgress) step(p *Primitives, instruction uint32) {
	if !b.tracing {
		return
	}

	bucket := instruction & 0xfff
	n := b.counts[bucket]
	b.counts[bucket] = n + 1
	if n > 0 {
		return
	}

	st, ok := bootTable[instruction]
	if !ok {
		return
	}

	var scr ScreenManager
	if p.emu != nil {
		scr = p.emu.ScreenManager()
	}

	if st.final {
		b.tracing = false
		if scr != nil {
			scr.OverlayOff()
		}
	}

	if st.progress <= b.prev {
		return
	}
	b.prev = st.progress

	percent := st.progress * 100 / bootSteps
	if scr != nil && scr.OverlayIsOn() {
		scr.OverlayPrintProgress(1, percent)
		if st.title != "" {
			scr.OverlayPrintAt(0, 3, st.title, true)
		}
		scr.OverlayFlush()
		return
	}

	p.log.Logf(tracePermission{p: p, bit: unknownClassMask}, "boot", "%d%% %s", percent, st.title)
}
