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

//go:build !linux && !darwin

package main

import (
	"context"
	"io"
	"os"

	"github.com/jetsetilly/goeinstein/curated"
)

func attachTerminal(_ context.Context, path string, _ *os.File, _ io.Writer) error {
	return curated.Errorf("attach: %v", "not supported on this platform")
}
