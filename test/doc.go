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

// Package test contains helper functions to remove common boilerplate from
// tests.
//
// The Expect functions report a failure with t.Errorf() and return false. The
// Demand functions stop the test immediately with t.Fatalf().
//
// The success and failure functions understand the bool and error types. A nil
// value is considered a success because of how errors are usually returned in
// Go.
//
// All functions accept optional tags which are printed as part of any failure
// message. Useful for identifying the iteration of a test loop that failed.
//
// The RingWriter type implements the io.Writer interface and keeps only the
// most recent output.
package test
