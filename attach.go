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

package main

import (
	"context"
	"io"
	"sync"
)

// the key that ends an ATTACH session (ctrl-])
const escapeKey = 0x1d

// relay copies bytes between the device and the user until the escape key is
// pressed, the keys channel is closed or the context is cancelled. The device
// is closed before relay returns.
func relay(ctx context.Context, dev io.ReadWriteCloser, keys <-chan []byte, out io.Writer) error {
	var wg sync.WaitGroup
	wg.Add(1)

	readErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		buf := make([]byte, 256)
		for {
			n, err := dev.Read(buf)
			if n > 0 {
				if _, err := out.Write(buf[:n]); err != nil {
					readErr <- err
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	var err error

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case err = <-readErr:
			if err == io.EOF {
				err = nil
			}
			break loop
		case k, ok := <-keys:
			if !ok {
				break loop
			}
			for i, b := range k {
				if b == escapeKey {
					if i > 0 {
						_, err = dev.Write(k[:i])
					}
					break loop
				}
			}
			if _, err = dev.Write(k); err != nil {
				break loop
			}
		}
	}

	if cerr := dev.Close(); err == nil {
		err = cerr
	}
	wg.Wait()

	return err
}
