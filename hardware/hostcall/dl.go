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

//go:build (linux || darwin) && (amd64 || arm64)

package hostcall

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

const available = true

// the longest string read from the result of a host function.
const maxString = 4096

func dlopen(name string) (uintptr, error) {
	return purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func dlsym(h uintptr, symbol string) (uintptr, error) {
	return purego.Dlsym(h, symbol)
}

func dlclose(h uintptr) error {
	return purego.Dlclose(h)
}

func callFunction(fn uintptr, args []uintptr) (uintptr, uintptr) {
	r, _, errno := purego.SyscallN(fn, args...)
	return r, errno
}

func pointer(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(&buf[0]))
}

func cString(p uintptr) string {
	if p == 0 {
		return ""
	}
	var b []byte
	for i := range maxString {
		c := *(*byte)(unsafe.Add(unsafe.Pointer(p), i))
		if c == 0x00 {
			break // for loop
		}
		b = append(b, c)
	}
	return string(b)
}
