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

// Package curated is a helper package for the plain Go error type. Curated
// errors are created with the Errorf() function, which takes a formatting
// pattern and values in the same way as fmt.Errorf(). The pattern is
// remembered and can be tested with the Is() and Has() functions.
//
//	e := curated.Errorf("serial: pty: %v", err)
//
//	if curated.Is(e, "serial: pty: %v") {
//		...
//	}
//
// Has() searches for the pattern through the chain of curated errors that
// have been used as values in other curated errors.
//
// Error messages are de-duplicated when the error is rendered. If the first
// two parts of the message (separated by ": ") are the same then only one of
// them is printed. This means packages can prefix their own name without
// worrying about the repetition that would occur when wrapping errors from the
// same package.
//
// Curated errors are for host-level failures only. Errors that are reported to
// the guest are register values and never Go errors.
package curated
