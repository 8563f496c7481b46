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

// Package screen is the headless screen manager. It keeps a four bit grey
// framebuffer that the guest draws into with Blit, an overlay of text lines
// used for boot progress, and the queue of tablet samples.
//
// In the framebuffer a pixel value of zero is white and 15 is black.
package screen

import (
	"sync"
	"time"

	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/logger"
)

// default dimensions of the screen.
const (
	DefaultWidth  = 320
	DefaultHeight = 480
)

// BitsPerPixel of the framebuffer.
const BitsPerPixel = 4

// Memory is the guest memory used by the screen manager.
type Memory interface {
	Read(address uint32) (uint32, error)
	ReadB(address uint32) (uint8, error)
}

// Screen implements the primitives.ScreenManager interface.
type Screen struct {
	log *logger.Logger
	mem Memory

	crit sync.Mutex

	width  int
	height int
	pixels []uint8

	powered     bool
	contrast    bool
	backlight   bool
	orientation uint32

	overlay overlay
	tablet  tablet

	// number of blits since the screen was created
	blits int
}

// NewScreen is the preferred method of initialisation for the Screen type.
// Width and height values of zero or less select the default dimensions.
func NewScreen(log *logger.Logger, mem Memory, width int, height int) *Screen {
	if log == nil {
		log = logger.Central()
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	start := time.Now()

	return &Screen{
		log:    log,
		mem:    mem,
		width:  width,
		height: height,
		pixels: make([]uint8, width*height),
		overlay: overlay{
			on: true,
		},
		tablet: tablet{
			sampleRate: defaultSampleRate,
			clock: func() uint32 {
				return uint32(time.Since(start).Milliseconds())
			},
		},
	}
}

// ScreenWidth implements the primitives.ScreenManager interface.
func (scr *Screen) ScreenWidth() uint32 {
	return uint32(scr.width)
}

// ScreenHeight implements the primitives.ScreenManager interface.
func (scr *Screen) ScreenHeight() uint32 {
	return uint32(scr.height)
}

// BitsPerPixel implements the primitives.ScreenManager interface.
func (scr *Screen) BitsPerPixel() uint32 {
	return BitsPerPixel
}

// PowerOnScreen implements the primitives.ScreenManager interface.
func (scr *Screen) PowerOnScreen() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.powered = true
}

// PowerOffScreen implements the primitives.ScreenManager interface.
func (scr *Screen) PowerOffScreen() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.powered = false
}

// IsPowered returns true if the guest has powered the screen on.
func (scr *Screen) IsPowered() bool {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return scr.powered
}

// Contrast implements the primitives.ScreenManager interface.
func (scr *Screen) Contrast() uint32 {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	if scr.contrast {
		return 1
	}
	return 0
}

// SetContrast implements the primitives.ScreenManager interface.
func (scr *Screen) SetContrast(on bool) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.contrast = on
}

// Backlight implements the primitives.ScreenManager interface.
func (scr *Screen) Backlight() bool {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return scr.backlight
}

// SetBacklight implements the primitives.ScreenManager interface.
func (scr *Screen) SetBacklight(on bool) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.backlight = on
}

// Orientation implements the primitives.ScreenManager interface.
func (scr *Screen) Orientation() uint32 {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return scr.orientation
}

// SetOrientation implements the primitives.ScreenManager interface.
func (scr *Screen) SetOrientation(orientation uint32) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.orientation = orientation
}

// Pixel returns the value of the pixel at x, y. Returns zero for
// coordinates outside the screen.
func (scr *Screen) Pixel(x int, y int) uint8 {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	if x < 0 || y < 0 || x >= scr.width || y >= scr.height {
		return 0
	}
	return scr.pixels[y*scr.width+x]
}

// Blits returns the number of blits performed.
func (scr *Screen) Blits() int {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return scr.blits
}

var _ primitives.ScreenManager = (*Screen)(nil)
