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

package hostcall_test

import (
	"testing"

	"github.com/jetsetilly/goeinstein/hardware/hostcall"
	"github.com/jetsetilly/goeinstein/test"
)

func TestUnknownHandles(t *testing.T) {
	b := hostcall.NewBridge(nil)
	defer b.Close()

	test.ExpectFailure(t, b.CloseLib(99))

	_, err := b.PrepareFFIStructure(99, "getpid", 0)
	test.ExpectFailure(t, err)

	test.ExpectFailure(t, b.SetArgValue(99, 0, 1))
	test.ExpectFailure(t, b.SetArgBuffer(99, 0, []byte{1}))
	test.ExpectFailure(t, b.SetResultType(99, 0))

	_, err = b.GetOutArgValue(99, 0)
	test.ExpectFailure(t, err)

	_, err = b.Call(99)
	test.ExpectFailure(t, err)

	_, err = b.CallString(99)
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, b.GetErrorMessage(99), "")

	// disposing of an unknown call is not an error
	b.DisposeFFIStructure(99)
}

func TestOpenMissingLibrary(t *testing.T) {
	b := hostcall.NewBridge(nil)
	defer b.Close()

	_, err := b.OpenLib("libgoeinstein-does-not-exist.so")
	test.ExpectFailure(t, err)
	test.ExpectInequality(t, b.GetErrorMessage(0), "")
}
