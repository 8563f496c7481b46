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

	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/logger"
)

// pixmap is the guest description of a source bitmap:
//
//	+0x00 base address of pixel data
//	+0x04 row bytes (upper 16 bits)
//	+0x08 bounds top, left (16 bits each)
//	+0x0c bounds bottom, right (16 bits each)
//	+0x10 flags. the lower eight bits are the pixel depth
type pixmap struct {
	base     uint32
	rowBytes uint32
	bounds   primitives.Rect
	depth    uint32
}

const pixmapDepthMask = 0xff

func (scr *Screen) readPixmap(address uint32) (pixmap, error) {
	var w [5]uint32
	for i := range w {
		v, err := scr.mem.Read(address + uint32(i*4))
		if err != nil {
			return pixmap{}, err
		}
		w[i] = v
	}

	pm := pixmap{
		base:     w[0],
		rowBytes: w[1] >> 16,
		bounds: primitives.Rect{
			Top:    uint16(w[2] >> 16),
			Left:   uint16(w[2]),
			Bottom: uint16(w[3] >> 16),
			Right:  uint16(w[3]),
		},
		depth: w[4] & pixmapDepthMask,
	}

	switch pm.depth {
	case 1, 4:
	default:
		return pixmap{}, fmt.Errorf("unsupported pixmap depth (%d)", pm.depth)
	}

	return pm, nil
}

// pixel returns the four bit value of the pixel at x, y relative to the
// pixmap bounds. one bit pixels are either white or black.
func (scr *Screen) pixel(pm pixmap, x int, y int) (uint8, error) {
	switch pm.depth {
	case 1:
		b, err := scr.mem.ReadB(pm.base + uint32(y)*pm.rowBytes + uint32(x/8))
		if err != nil {
			return 0, err
		}
		if b&(0x80>>(x%8)) != 0 {
			return 0x0f, nil
		}
		return 0, nil
	default:
		b, err := scr.mem.ReadB(pm.base + uint32(y)*pm.rowBytes + uint32(x/2))
		if err != nil {
			return 0, err
		}
		if x%2 == 0 {
			return b >> 4, nil
		}
		return b & 0x0f, nil
	}
}

// Blit implements the primitives.ScreenManager interface. The source
// rectangle is in the coordinates of the pixmap bounds. The destination
// rectangle is in screen coordinates and is clipped to the screen. Every
// transfer mode is treated as a copy.
func (scr *Screen) Blit(address uint32, src primitives.Rect, dst primitives.Rect, mode uint32) {
	scr.crit.Lock()
	defer scr.crit.Unlock()

	pm, err := scr.readPixmap(address)
	if err != nil {
		scr.log.Logf(logger.Allow, "screen", "blit: %v", err)
		return
	}

	w := min(src.Width(), dst.Width())
	h := min(src.Height(), dst.Height())

	for y := range h {
		sy := int(src.Top) - int(pm.bounds.Top) + y
		dy := int(dst.Top) + y
		if dy >= scr.height {
			break // for loop
		}

		for x := range w {
			sx := int(src.Left) - int(pm.bounds.Left) + x
			dx := int(dst.Left) + x
			if dx >= scr.width {
				break // for loop
			}
			if sx < 0 || sy < 0 {
				continue // for loop
			}

			v, err := scr.pixel(pm, sx, sy)
			if err != nil {
				scr.log.Logf(logger.Allow, "screen", "blit: %v", err)
				return
			}
			scr.pixels[dy*scr.width+dx] = v
		}
	}

	scr.blits++
}
