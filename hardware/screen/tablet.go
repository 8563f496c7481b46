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

// the tablet sample rate before the guest sets one.
const defaultSampleRate = 0x0000b400

// the number of samples held before new samples are dropped.
const maxSamples = 256

// tablet states returned by TabletState.
const (
	TabletAsleep = iota
	TabletAwake
	TabletBypass
)

type sample struct {
	value uint32
	time  uint32
}

type tablet struct {
	awake      bool
	bypass     bool
	sampleRate uint32

	// orientation of the tablet. independent of the screen orientation
	orientation uint32

	samples []sample
	dropped int

	// time of samples in milliseconds
	clock func() uint32

	// position of the most recent pen down
	x, y int
}

// packSample combines a tablet position and pressure into the value returned
// to the guest. x and y are twelve bits and pressure is eight bits.
func packSample(x int, y int, pressure uint8) uint32 {
	return uint32(x&0xfff)<<20 | uint32(y&0xfff)<<8 | uint32(pressure)
}

// UnpackSample is the inverse of the packing used for tablet samples.
func UnpackSample(v uint32) (x int, y int, pressure uint8) {
	return int(v >> 20), int((v >> 8) & 0xfff), uint8(v)
}

// queue must be called from inside the critical section.
func (scr *Screen) queue(v uint32) {
	if !scr.tablet.awake {
		return
	}
	if len(scr.tablet.samples) >= maxSamples {
		scr.tablet.dropped++
		return
	}
	scr.tablet.samples = append(scr.tablet.samples, sample{value: v, time: scr.tablet.clock()})
}

// PenDown adds a sample at the position with the pressure. Samples are only
// queued while the tablet is awake.
func (scr *Screen) PenDown(x int, y int, pressure uint8) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.tablet.x = x
	scr.tablet.y = y
	scr.queue(packSample(x, y, max(pressure, 1)))
}

// PenUp adds a sample with zero pressure at the position of the most recent
// pen down.
func (scr *Screen) PenUp() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.queue(packSample(scr.tablet.x, scr.tablet.y, 0))
}

// GetSample implements the primitives.ScreenManager interface.
func (scr *Screen) GetSample() (uint32, uint32, bool) {
	scr.crit.Lock()
	defer scr.crit.Unlock()

	if len(scr.tablet.samples) == 0 {
		return 0, 0, false
	}

	s := scr.tablet.samples[0]
	scr.tablet.samples = scr.tablet.samples[1:]
	return s.value, s.time, true
}

// PendingSamples returns the number of samples waiting for the guest and the
// number of samples that were dropped because the queue was full.
func (scr *Screen) PendingSamples() (int, int) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return len(scr.tablet.samples), scr.tablet.dropped
}

// WakeUpTablet implements the primitives.ScreenManager interface.
func (scr *Screen) WakeUpTablet() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.tablet.awake = true
}

// ShutDownTablet implements the primitives.ScreenManager interface. Pending
// samples are discarded.
func (scr *Screen) ShutDownTablet() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.tablet.awake = false
	scr.tablet.samples = scr.tablet.samples[:0]
}

// TabletSampleRate implements the primitives.ScreenManager interface.
func (scr *Screen) TabletSampleRate() uint32 {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	return scr.tablet.sampleRate
}

// SetTabletSampleRate implements the primitives.ScreenManager interface.
func (scr *Screen) SetTabletSampleRate(rate uint32) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.tablet.sampleRate = rate
}

// SetTabletOrientation implements the primitives.ScreenManager interface.
func (scr *Screen) SetTabletOrientation(orientation uint32) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.tablet.orientation = orientation
}

// TabletState implements the primitives.ScreenManager interface.
func (scr *Screen) TabletState() uint32 {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	switch {
	case scr.tablet.bypass:
		return TabletBypass
	case scr.tablet.awake:
		return TabletAwake
	}
	return TabletAsleep
}

// StartBypassTablet implements the primitives.ScreenManager interface.
func (scr *Screen) StartBypassTablet() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.tablet.bypass = true
}

// StopBypassTablet implements the primitives.ScreenManager interface.
func (scr *Screen) StopBypassTablet() {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.tablet.bypass = false
}
