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

package preferences

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/hardware/network"
	"github.com/jetsetilly/goeinstein/hardware/screen"
	"github.com/jetsetilly/goeinstein/hardware/serial"
	"github.com/jetsetilly/goeinstein/paths"
	"github.com/jetsetilly/goeinstein/prefs"
)

// DefaultSerialLocation is the location ID of the external serial port
// ('extr').
const DefaultSerialLocation = 0x65787472

// the method set shared by all prefs types.
type value interface {
	fmt.Stringer
	Set(prefs.Value) error
	Get() prefs.Value
	Reset() error
}

// Preferences defines and collates all the preference values used by the
// Newton machine.
type Preferences struct {
	dsk *prefs.Disk

	// device classes that are traced. bit n enables tracing for class n
	LogMask prefs.Int

	// show boot progress on the screen overlay
	BootProgress prefs.Bool

	// allow the guest to call functions in host libraries
	HostCalls prefs.Bool

	// the host port connected to the serial location
	SerialDriver   prefs.String
	SerialLocation prefs.Int

	// sound output is captured to this file if not empty. sound input is read
	// from this file if not empty
	SoundCapture prefs.String
	SoundInput   prefs.String

	ScreenWidth  prefs.Int
	ScreenHeight prefs.Int

	NetworkDriver prefs.String
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty the preferences file in the resource
// directory is used.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}

	p.SerialDriver.SetHookPre(oneOf("serial driver", serial.Drivers))
	p.NetworkDriver.SetHookPre(oneOf("network driver", network.Drivers))
	p.ScreenWidth.SetHookPre(positive("screen width"))
	p.ScreenHeight.SetHookPre(positive("screen height"))

	p.SetDefaults()

	var err error
	if path == "" {
		path, err = paths.ResourcePath("preferences")
		if err != nil {
			return nil, err
		}
	}

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	entries := []struct {
		key string
		val value
	}{
		{"primitives.logmask", &p.LogMask},
		{"primitives.bootprogress", &p.BootProgress},
		{"primitives.hostcalls", &p.HostCalls},
		{"serial.driver", &p.SerialDriver},
		{"serial.location", &p.SerialLocation},
		{"sound.capture", &p.SoundCapture},
		{"sound.input", &p.SoundInput},
		{"screen.width", &p.ScreenWidth},
		{"screen.height", &p.ScreenHeight},
		{"network.driver", &p.NetworkDriver},
	}

	for _, e := range entries {
		err = p.dsk.Add(e.key, e.val)
		if err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	_ = p.LogMask.Set(0)
	_ = p.BootProgress.Set(true)
	_ = p.HostCalls.Set(false)
	_ = p.SerialDriver.Set(serial.DriverPTY)
	_ = p.SerialLocation.Set(DefaultSerialLocation)
	_ = p.SoundCapture.Set("")
	_ = p.SoundInput.Set("")
	_ = p.ScreenWidth.Set(screen.DefaultWidth)
	_ = p.ScreenHeight.Set(screen.DefaultHeight)
	_ = p.NetworkDriver.Set(network.DriverNull)
}

// Reset all preferences to the default values. The file on disk is not
// changed until Save() is called.
func (p *Preferences) Reset() error {
	p.SetDefaults()
	return nil
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

func oneOf(what string, valid []string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		s := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", v)))
		if !slices.Contains(valid, s) {
			return curated.Errorf("preferences: unknown %s (%s)", what, s)
		}
		return nil
	}
}

func positive(what string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if n, ok := v.(int64); ok && n <= 0 {
			return curated.Errorf("preferences: %s must be positive", what)
		}
		return nil
	}
}
