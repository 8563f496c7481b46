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

package digest

import (
	"crypto/sha1"
	"fmt"
	"image"
	"sync"
)

// ImageSource is the screen being fingerprinted.
type ImageSource interface {
	Image() *image.Gray
}

// Video fingerprints a screen. A new value is added to the chain each time
// Snapshot() is called.
type Video struct {
	src ImageSource

	crit   sync.Mutex
	digest [sha1.Size]byte
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(src ImageSource) *Video {
	return &Video{src: src}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	clear(dig.digest[:])
	dig.frames = 0
}

// Snapshot adds the current screen to the chain and returns the new hash.
func (dig *Video) Snapshot() string {
	img := dig.src.Image()

	dig.crit.Lock()
	defer dig.crit.Unlock()

	// the previous value heads the data so that the values are chained
	data := make([]byte, 0, len(dig.digest)+4+len(img.Pix))
	data = append(data, dig.digest[:]...)
	data = append(data, byte(img.Rect.Dx()>>8), byte(img.Rect.Dx()), byte(img.Rect.Dy()>>8), byte(img.Rect.Dy()))
	data = append(data, img.Pix...)

	dig.digest = sha1.Sum(data)
	dig.frames++

	return fmt.Sprintf("%x", dig.digest)
}

// Frames returns the number of snapshots since the last reset.
func (dig *Video) Frames() int {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return dig.frames
}
