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

//go:build !((linux || darwin) && (amd64 || arm64))

package hostcall

import (
	"github.com/jetsetilly/goeinstein/curated"
)

const available = false

const unsupported = "host calls are not supported on this platform"

func dlopen(_ string) (uintptr, error) {
	return 0, curated.Errorf(unsupported)
}

func dlsym(_ uintptr, _ string) (uintptr, error) {
	return 0, curated.Errorf(unsupported)
}

func dlclose(_ uintptr) error {
	return curated.Errorf(unsupported)
}

func callFunction(_ uintptr, _ []uintptr) (uintptr, uintptr) {
	return 0, 0
}

func pointer(_ []byte) uintptr {
	return 0
}

func cString(_ uintptr) string {
	return ""
}
