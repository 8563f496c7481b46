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

package preferences_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/goeinstein/hardware/preferences"
	"github.com/jetsetilly/goeinstein/prefs"
	"github.com/jetsetilly/goeinstein/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.LogMask.Get().(int), 0)
	test.ExpectEquality(t, p.BootProgress.Get().(bool), true)
	test.ExpectEquality(t, p.HostCalls.Get().(bool), false)
	test.ExpectEquality(t, p.SerialDriver.String(), "pty")
	test.ExpectEquality(t, p.SerialLocation.Get().(int), preferences.DefaultSerialLocation)
	test.ExpectEquality(t, p.ScreenWidth.Get().(int), 320)
	test.ExpectEquality(t, p.ScreenHeight.Get().(int), 480)
	test.ExpectEquality(t, p.NetworkDriver.String(), "null")
}

func TestSaveAndLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferences(fn)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, p.LogMask.Set("0x0400"))
	test.DemandSuccess(t, p.SerialDriver.Set("loopback"))
	test.DemandSuccess(t, p.SoundCapture.Set("capture.wav"))
	test.DemandSuccess(t, p.Save())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "primitives.logmask :: 1024"))
	test.ExpectSuccess(t, strings.Contains(string(data), "serial.driver :: loopback"))

	q, err := preferences.NewPreferences(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.LogMask.Get().(int), 0x400)
	test.ExpectEquality(t, q.SerialDriver.String(), "loopback")
	test.ExpectEquality(t, q.SoundCapture.String(), "capture.wav")

	test.DemandSuccess(t, q.Reset())
	test.ExpectEquality(t, q.SerialDriver.String(), "pty")
	test.ExpectEquality(t, q.SoundCapture.String(), "")

	// the file is unchanged until saved
	test.DemandSuccess(t, q.Load())
	test.ExpectEquality(t, q.SerialDriver.String(), "loopback")
}

func TestValidation(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.SerialDriver.Set("modem"))
	test.ExpectEquality(t, p.SerialDriver.String(), "pty")

	test.ExpectFailure(t, p.NetworkDriver.Set("ethernet"))
	test.ExpectSuccess(t, p.NetworkDriver.Set("loopback"))

	test.ExpectFailure(t, p.ScreenWidth.Set(0))
	test.ExpectFailure(t, p.ScreenHeight.Set(-1))
	test.ExpectEquality(t, p.ScreenWidth.Get().(int), 320)
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("serial.driver::null; screen.width::640")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.SerialDriver.String(), "null")
	test.ExpectEquality(t, p.ScreenWidth.Get().(int), 640)
	test.ExpectEquality(t, p.ScreenHeight.Get().(int), 480)
}

func TestBadCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("network.driver::ethernet")
	defer prefs.PopCommandLineStack()

	_, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.ExpectFailure(t, err)
}
