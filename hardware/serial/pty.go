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

package serial

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/logger"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// how long the reader goroutine waits for data before checking whether it
// should end.
const pollTimeout = 50 * time.Millisecond

// PTY is a host port connected to a pseudo-terminal. A symbolic link to the
// slave side of the pseudo-terminal is created at LinkPath(location) so that
// other programs can find it.
type PTY struct {
	*port
	stubs

	log  *logger.Logger
	link string

	master *os.File
	slave  *os.File
	fd     int

	// serialises writes to the master
	writeCrit sync.Mutex

	// bytes from PutByte that the pseudo-terminal could not accept
	dropped atomic.Uint64

	// closed to stop the reader goroutine. done is closed by the reader when
	// it ends, for whatever reason
	quit     chan struct{}
	done     chan struct{}
	quitOnce sync.Once
}

// LinkPath returns the path of the symbolic link for the location ID.
func LinkPath(location uint32) string {
	return fmt.Sprintf("/tmp/einstein-%08x.pty", location)
}

// NewPTY opens a pseudo-terminal for the serial line with the location ID.
// Failure to create the pseudo-terminal is returned as an error. A serial
// port that silently doesn't work is worse than no serial port at all.
func NewPTY(log *logger.Logger, ints Interrupter, location uint32) (*PTY, error) {
	if log == nil {
		log = logger.Central()
	}

	pt := &PTY{
		port: newPort(location, ints),
		log:  log,
		link: LinkPath(location),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	// remove stale link from a previous run
	if err := os.Remove(pt.link); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, curated.Errorf("serial: pty: %v", err)
	}

	var err error
	pt.master, pt.slave, err = termios.Pty()
	if err != nil {
		return nil, curated.Errorf("serial: pty: %v", err)
	}

	if err := os.Symlink(pt.slave.Name(), pt.link); err != nil {
		pt.closeFiles()
		return nil, curated.Errorf("serial: pty: %v", err)
	}

	for _, f := range []*os.File{pt.master, pt.slave} {
		if err := rawMode(f); err != nil {
			pt.closeFiles()
			_ = os.Remove(pt.link)
			return nil, curated.Errorf("serial: pty: %v", err)
		}
	}

	// the reader polls the master with a timeout so that it can notice the
	// quit channel. reads must then never block
	pt.fd = int(pt.master.Fd())
	if err := unix.SetNonblock(pt.fd, true); err != nil {
		pt.closeFiles()
		_ = os.Remove(pt.link)
		return nil, curated.Errorf("serial: pty: %v", err)
	}

	go pt.run()

	pt.log.Logf(logger.Allow, "serial", "pty for %08x at %s (%s)", location, pt.link, pt.slave.Name())

	return pt, nil
}

// raw mode is set on both ends of the pseudo-terminal. HUPCL and CLOCAL are
// set in addition to the raw mode settings.
func rawMode(f *os.File) error {
	var attr unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &attr); err != nil {
		return err
	}
	termios.Cfmakeraw(&attr)
	attr.Cflag |= unix.HUPCL | unix.CLOCAL
	return termios.Tcsetattr(f.Fd(), termios.TCSANOW, &attr)
}

func (pt *PTY) closeFiles() {
	if pt.master != nil {
		_ = pt.master.Close()
	}
	if pt.slave != nil {
		_ = pt.slave.Close()
	}
}

// SlaveName returns the path of the slave side of the pseudo-terminal.
func (pt *PTY) SlaveName() string {
	return pt.slave.Name()
}

// Link returns the path of the symbolic link to the slave.
func (pt *PTY) Link() string {
	return pt.link
}

// run is the reader goroutine. When the master is readable, all available
// bytes (up to the free space in the ring) are read and added to the ring.
//
// The ring is never overwritten. If it is full the reader stops reading and
// waits for the guest to consume some bytes. The kernel buffers the
// pseudo-terminal in the meantime and the writer on the slave side will
// eventually block.
func (pt *PTY) run() {
	defer close(pt.done)

	buffer := make([]byte, RingSize)
	fds := []unix.PollFd{{Fd: int32(pt.fd), Events: unix.POLLIN}}

	for {
		select {
		case <-pt.quit:
			return
		default:
		}

		free := pt.free()
		if free == 0 {
			time.Sleep(pollTimeout)
			continue
		}

		n, err := unix.Poll(fds, int(pollTimeout/time.Millisecond))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			pt.log.Logf(logger.Allow, "serial", "pty %08x: %v", pt.location, err)
			return
		}
		if n == 0 {
			continue
		}
		if fds[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
			pt.log.Logf(logger.Allow, "serial", "pty %08x: master descriptor error", pt.location)
			return
		}

		// drain everything that is available now
		for free > 0 {
			n, err := unix.Read(pt.fd, buffer[:free])
			if n > 0 {
				pt.receive(buffer[:n])
				free -= n
			}
			if err != nil || n <= 0 {
				break // for loop
			}
		}
	}
}

// PutByte implements the HostPort interface. The byte is written directly to
// the master side of the pseudo-terminal.
//
// PutByte never waits for the other end of the pseudo-terminal. If the kernel
// buffer is full, because nothing is reading the slave, the byte is dropped.
func (pt *PTY) PutByte(b uint8) {
	pt.transmitting()

	pt.writeCrit.Lock()
	for {
		_, err := unix.Write(pt.fd, []byte{b})
		if err == unix.EINTR {
			continue // for loop
		}
		if err == unix.EAGAIN {
			if pt.dropped.Add(1) == 1 {
				pt.log.Logf(logger.Allow, "serial", "pty %08x: output buffer full, dropping bytes", pt.location)
			}
		} else if err != nil {
			pt.log.Logf(logger.Allow, "serial", "pty %08x: %v", pt.location, err)
		}
		break // for loop
	}
	pt.writeCrit.Unlock()

	pt.raise()
}

// Dropped returns the number of bytes from PutByte that were dropped because
// the pseudo-terminal was full.
func (pt *PTY) Dropped() uint64 {
	return pt.dropped.Load()
}

// Close implements the HostPort interface. The reader goroutine is stopped
// before the descriptors are closed.
func (pt *PTY) Close() error {
	pt.quitOnce.Do(func() {
		close(pt.quit)
	})
	<-pt.done

	pt.closeFiles()

	if err := os.Remove(pt.link); err != nil && !errors.Is(err, os.ErrNotExist) {
		return curated.Errorf("serial: pty: %v", err)
	}
	return nil
}
