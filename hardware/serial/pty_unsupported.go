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

package serial

import (
	"fmt"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/logger"
)

// PTY is not available on this platform.
type PTY struct {
	Null
}

// LinkPath returns the path of the symbolic link for the location ID.
func LinkPath(location uint32) string {
	return fmt.Sprintf("/tmp/einstein-%08x.pty", location)
}

// NewPTY always fails on this platform.
func NewPTY(_ *logger.Logger, _ Interrupter, location uint32) (*PTY, error) {
	return nil, curated.Errorf("serial: pty: %v", fmt.Sprintf("not supported on this platform (%08x)", location))
}

// SlaveName is always empty on this platform.
func (pt *PTY) SlaveName() string {
	return ""
}

// Link is always empty on this platform.
func (pt *PTY) Link() string {
	return ""
}
