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

// Package stream transfers emulator state to and from a byte stream. The same
// sequence of Transfer calls is used for saving and for loading, so the order
// in which fields are written is the order in which they are read back.
//
// All multi-byte values are big-endian.
package stream

import (
	"encoding/binary"
	"io"

	"github.com/jetsetilly/goeinstein/curated"
)

// Transferer is implemented by Writer and Reader. Types that have state to
// save take a Transferer and call the transfer functions with pointers to
// their fields.
type Transferer interface {
	// TransferInt32BE writes or reads a big-endian 32 bit value
	TransferInt32BE(v *uint32) error

	// TransferByte writes or reads a single byte
	TransferByte(v *uint8) error

	// Reading returns true if the Transferer is reading (ie. restoring state)
	Reading() bool
}

// Writer implements Transferer and writes state to an io.Writer.
type Writer struct {
	w   io.Writer
	buf [4]byte
}

// NewWriter is the preferred method of initialisation for the Writer type.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// TransferInt32BE implements the Transferer interface.
func (s *Writer) TransferInt32BE(v *uint32) error {
	binary.BigEndian.PutUint32(s.buf[:], *v)
	if _, err := s.w.Write(s.buf[:]); err != nil {
		return curated.Errorf("stream: %v", err)
	}
	return nil
}

// TransferByte implements the Transferer interface.
func (s *Writer) TransferByte(v *uint8) error {
	s.buf[0] = *v
	if _, err := s.w.Write(s.buf[:1]); err != nil {
		return curated.Errorf("stream: %v", err)
	}
	return nil
}

// Reading implements the Transferer interface.
func (s *Writer) Reading() bool {
	return false
}

// Reader implements Transferer and reads state from an io.Reader.
type Reader struct {
	r   io.Reader
	buf [4]byte
}

// NewReader is the preferred method of initialisation for the Reader type.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// TransferInt32BE implements the Transferer interface.
func (s *Reader) TransferInt32BE(v *uint32) error {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return curated.Errorf("stream: %v", err)
	}
	*v = binary.BigEndian.Uint32(s.buf[:])
	return nil
}

// TransferByte implements the Transferer interface.
func (s *Reader) TransferByte(v *uint8) error {
	if _, err := io.ReadFull(s.r, s.buf[:1]); err != nil {
		return curated.Errorf("stream: %v", err)
	}
	*v = s.buf[0]
	return nil
}

// Reading implements the Transferer interface.
func (s *Reader) Reading() bool {
	return true
}
