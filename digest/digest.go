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

// Package digest creates fingerprints of the screen and of the sound output.
// The fingerprints are chained: every new value is the hash of the previous
// value and the new data. Two runs that produce the same sequence of
// screens or sound buffers produce the same digest.
//
// Digests are used to compare the output of a script run with the output of
// a previous run.
package digest

// Digest implementations compute a hash of the emulator's output.
type Digest interface {
	Hash() string
	ResetDigest()
}
