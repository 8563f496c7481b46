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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes (and sub-modes) and allows different
// flags for each mode.
//
// Arguments are supplied with NewArgs() and then parsed with Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PTY", "ATTACH")
//	p, err := md.Parse()
//
// After parsing, md.Mode() returns the selected sub-mode. The first sub-mode
// in the list is the default and is selected if the first non-flag argument is
// not a sub-mode. Flags for the selected mode are added after a call to
// NewMode() and parsed with a second call to Parse():
//
//	md.NewMode()
//	script := md.AddString("script", "", "lua script to run")
//	p, err = md.Parse()
//
// Sub-mode names are case insensitive. The -help flag is handled
// automatically and prints the flags and sub-modes for the current mode.
package modalflag
