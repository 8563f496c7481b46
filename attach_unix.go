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

//go:build linux || darwin

package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/jetsetilly/goeinstein/curated"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// attachTerminal connects the user's terminal to the pseudo-terminal at path.
// The terminal is put into raw mode for the duration of the session.
func attachTerminal(ctx context.Context, path string, in *os.File, out io.Writer) error {
	dev, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return curated.Errorf("attach: %v", err)
	}

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			dev.Close()
			return curated.Errorf("attach: %v", err)
		}
		defer term.Restore(fd, old)
	}

	// stdin is read without blocking so that the reader can be stopped at
	// the end of the session
	if err := unix.SetNonblock(fd, true); err != nil {
		dev.Close()
		return curated.Errorf("attach: %v", err)
	}
	defer unix.SetNonblock(fd, false)

	stop := make(chan bool)
	done := make(chan bool)
	keys := make(chan []byte)

	go func() {
		defer close(done)
		defer close(keys)
		buf := make([]byte, 64)
		for {
			select {
			case <-stop:
				return
			default:
			}

			n, err := unix.Read(fd, buf)
			if n > 0 {
				k := make([]byte, n)
				copy(k, buf[:n])
				select {
				case keys <- k:
				case <-stop:
					return
				}
				continue // for loop
			}
			if err == unix.EAGAIN || err == unix.EINTR {
				time.Sleep(5 * time.Millisecond)
				continue // for loop
			}
			return
		}
	}()

	err = relay(ctx, dev, keys, out)
	close(stop)
	<-done

	if err != nil {
		return curated.Errorf("attach: %v", err)
	}
	return nil
}
