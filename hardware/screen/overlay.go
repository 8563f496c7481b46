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

package screen

import (
	"fmt"
	"strings"
)

// dimensions of the overlay in characters.
const (
	overlayLines   = 4
	overlayColumns = 32
)

type overlay struct {
	on      bool
	lines   [overlayLines]string
	flushes int
}

// OverlayOn shows the overlay.
func (scr *Screen) OverlayOn() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.overlay.on = true
}

// OverlayIsOn implements the primitives.ScreenManager interface.
func (scr *Screen) OverlayIsOn() bool {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return scr.overlay.on
}

// OverlayOff implements the primitives.ScreenManager interface.
func (scr *Screen) OverlayOff() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.overlay.on = false
}

// OverlayClear blanks every line of the overlay.
func (scr *Screen) OverlayClear() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.overlay.lines = [overlayLines]string{}
}

// OverlayPrintProgress implements the primitives.ScreenManager interface. The
// line is replaced with a progress bar.
func (scr *Screen) OverlayPrintProgress(line int, percent int) {
	scr.crit.Lock()
	defer scr.crit.Unlock()

	if line < 0 || line >= overlayLines {
		return
	}

	percent = max(0, min(percent, 100))
	const width = overlayColumns - 7
	filled := width * percent / 100

	scr.overlay.lines[line] = fmt.Sprintf("[%s%s] %3d%%",
		strings.Repeat("#", filled), strings.Repeat(" ", width-filled), percent)
}

// OverlayPrintAt implements the primitives.ScreenManager interface. Text that
// does not fit on the line is truncated. Centred text ignores the column.
func (scr *Screen) OverlayPrintAt(col int, line int, text string, centred bool) {
	scr.crit.Lock()
	defer scr.crit.Unlock()

	if line < 0 || line >= overlayLines {
		return
	}

	if len(text) > overlayColumns {
		text = text[:overlayColumns]
	}

	if centred {
		col = (overlayColumns - len(text)) / 2
	}
	col = max(0, min(col, overlayColumns-len(text)))

	l := []byte(strings.Repeat(" ", overlayColumns))
	copy(l, scr.overlay.lines[line])
	copy(l[col:], text)
	scr.overlay.lines[line] = strings.TrimRight(string(l), " ")
}

// OverlayFlush implements the primitives.ScreenManager interface.
func (scr *Screen) OverlayFlush() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.overlay.flushes++
}

// OverlayLines returns a copy of the overlay text.
func (scr *Screen) OverlayLines() []string {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return append([]string{}, scr.overlay.lines[:]...)
}
