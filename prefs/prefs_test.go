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

package prefs_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/goeinstein/prefs"
	"github.com/jetsetilly/goeinstein/test"
)

func getTmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "goeinstein_prefs_test")
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Errorf("error reading tmp file: %v", err)
		return
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))
	test.ExpectFailure(t, x.Set(10))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestString(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("serial.driver", &v))
	test.ExpectSuccess(t, v.Set("pty"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "serial.driver :: pty\n")

	v.SetMaxLen(2)
	test.ExpectEquality(t, v.String(), "pt")
}

func TestInt(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("mask", &v))
	test.ExpectSuccess(t, dsk.Add("location", &w))

	test.ExpectSuccess(t, v.Set("0x7f"))
	test.ExpectSuccess(t, w.Set(uint32(0x4c000000)))
	test.ExpectFailure(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get().(int), 0x7f)

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "location :: 1275068416\nmask :: 127\n")
}

func TestIllegalKeys(t *testing.T) {
	dsk, err := prefs.NewDisk(getTmpPrefFile(t))
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectFailure(t, dsk.Add("", &v))
	test.ExpectFailure(t, dsk.Add("foo bar", &v))
	test.ExpectFailure(t, dsk.Add("foo::bar", &v))
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectFailure(t, dsk.Add("foo", &v))
}

func TestLoad(t *testing.T) {
	fn := getTmpPrefFile(t)

	// loading a missing file is not an error
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("primitives.logmask", &v))
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, v.Get().(int), 0)

	test.ExpectSuccess(t, v.Set(0x40))
	test.DemandSuccess(t, dsk.Save())

	// a second disk instance with a different set of keys. the key not known
	// to the second instance should be preserved on save
	dsk2, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var w prefs.Int
	var x prefs.String
	test.ExpectSuccess(t, dsk2.Add("primitives.logmask", &w))
	test.ExpectSuccess(t, dsk2.Add("sound.capture", &x))
	test.ExpectSuccess(t, dsk2.Load())
	test.ExpectEquality(t, w.Get().(int), 0x40)

	test.ExpectSuccess(t, x.Set("out.wav"))
	test.DemandSuccess(t, dsk2.Save())
	cmpTmpFile(t, fn, "primitives.logmask :: 64\nsound.capture :: out.wav\n")
}

func TestLoadCommandLine(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("serial.driver", &v))
	test.ExpectSuccess(t, v.Set("pty"))
	test.DemandSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("serial.driver::null; unused::1")
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, v.String(), "null")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "unused::1")
}

func TestBadFile(t *testing.T) {
	fn := getTmpPrefFile(t)
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not prefs\nfoo :: bar\n"), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, dsk.Load())
}

func TestHooks(t *testing.T) {
	var v prefs.Bool
	var post bool

	v.SetHookPre(func(value prefs.Value) error {
		if value.(bool) {
			return nil
		}
		return errors.New("false not allowed")
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = value.(bool)
		return nil
	})

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, post)
	test.ExpectFailure(t, v.Set(false))
	test.ExpectEquality(t, v.Get().(bool), true)
}
