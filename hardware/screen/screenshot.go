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
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/jetsetilly/goeinstein/curated"
	"golang.org/x/image/draw"
)

// Image returns a copy of the framebuffer as a grey image.
func (scr *Screen) Image() *image.Gray {
	scr.crit.Lock()
	defer scr.crit.Unlock()

	img := image.NewGray(image.Rect(0, 0, scr.width, scr.height))
	for i, p := range scr.pixels {
		img.Pix[i] = Grey(p).Y
	}
	return img
}

// Screenshot writes the framebuffer as a PNG. The image is scaled by the
// scale value, which must be at least one.
func (scr *Screen) Screenshot(w io.Writer, scale int) error {
	if scale < 1 {
		return curated.Errorf("screenshot: %v", "scale must be at least one")
	}

	src := scr.Image()

	var img image.Image = src
	if scale > 1 {
		b := src.Bounds()
		dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		img = dst
	}

	if err := png.Encode(w, img); err != nil {
		return curated.Errorf("screenshot: %v", err)
	}
	return nil
}

// Grey returns the colour of a framebuffer pixel value.
func Grey(v uint8) color.Gray {
	return color.Gray{Y: 0xff - (v&0x0f)*0x11}
}
