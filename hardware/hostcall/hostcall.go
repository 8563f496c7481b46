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

// Package hostcall lets the guest call functions in shared libraries on the
// host. Libraries are opened and symbols are found with the dynamic linker
// and functions are called without cgo.
//
// Only integer, pointer and buffer arguments are supported. Buffers are
// copied out of guest memory by the caller and are kept pinned until the
// call is disposed so that the host function can write to them.
//
// The bridge is available on linux and darwin for amd64 and arm64. On other
// platforms Available() returns false and every operation fails.
package hostcall

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/logger"
)

// MaxArgs is the largest number of arguments a host function can take.
const MaxArgs = 15

// ResultType is the type of value returned by a host function. The type is
// recorded but the guest chooses how to read the result by the call opcode.
type ResultType uint32

type call struct {
	fn      uintptr
	symbol  string
	args    []uintptr
	buffers map[uint32][]byte
	pinner  runtime.Pinner
	result  ResultType
	lastErr string
}

// Bridge implements the primitives.HostCalls interface.
type Bridge struct {
	log *logger.Logger

	crit sync.Mutex

	libs    map[uint32]uintptr
	names   map[uint32]string
	nextLib uint32

	calls    map[uint32]*call
	nextCall uint32

	// error message for failures that are not tied to a call
	lastErr string

	errno uint32
}

// NewBridge is the preferred method of initialisation for the Bridge type.
func NewBridge(log *logger.Logger) *Bridge {
	if log == nil {
		log = logger.Central()
	}
	return &Bridge{
		log:   log,
		libs:  make(map[uint32]uintptr),
		names: make(map[uint32]string),
		calls: make(map[uint32]*call),
	}
}

// Available implements the primitives.HostCalls interface.
func (b *Bridge) Available() bool {
	return available
}

// OpenLib implements the primitives.HostCalls interface.
func (b *Bridge) OpenLib(name string) (uint32, error) {
	h, err := dlopen(name)
	if err != nil {
		b.crit.Lock()
		b.lastErr = err.Error()
		b.crit.Unlock()
		return 0, curated.Errorf("hostcall: %v", err)
	}

	b.crit.Lock()
	defer b.crit.Unlock()
	b.nextLib++
	b.libs[b.nextLib] = h
	b.names[b.nextLib] = name
	b.log.Logf(logger.Allow, "hostcall", "opened %s", name)
	return b.nextLib, nil
}

// CloseLib implements the primitives.HostCalls interface.
func (b *Bridge) CloseLib(handle uint32) error {
	b.crit.Lock()
	h, ok := b.libs[handle]
	delete(b.libs, handle)
	delete(b.names, handle)
	b.crit.Unlock()

	if !ok {
		return curated.Errorf("hostcall: unknown library (%d)", handle)
	}
	if err := dlclose(h); err != nil {
		return curated.Errorf("hostcall: %v", err)
	}
	return nil
}

// PrepareFFIStructure implements the primitives.HostCalls interface.
func (b *Bridge) PrepareFFIStructure(handle uint32, symbol string, numArgs uint32) (uint32, error) {
	b.crit.Lock()
	defer b.crit.Unlock()

	h, ok := b.libs[handle]
	if !ok {
		return 0, curated.Errorf("hostcall: unknown library (%d)", handle)
	}
	if numArgs > MaxArgs {
		return 0, curated.Errorf("hostcall: too many arguments for %s (%d)", symbol, numArgs)
	}

	fn, err := dlsym(h, symbol)
	if err != nil {
		b.lastErr = err.Error()
		return 0, curated.Errorf("hostcall: %v", err)
	}

	b.nextCall++
	b.calls[b.nextCall] = &call{
		fn:      fn,
		symbol:  symbol,
		args:    make([]uintptr, numArgs),
		buffers: make(map[uint32][]byte),
	}
	return b.nextCall, nil
}

// DisposeFFIStructure implements the primitives.HostCalls interface.
func (b *Bridge) DisposeFFIStructure(id uint32) {
	b.crit.Lock()
	defer b.crit.Unlock()
	if c, ok := b.calls[id]; ok {
		c.pinner.Unpin()
		delete(b.calls, id)
	}
}

// GetErrorMessage implements the primitives.HostCalls interface. An unknown
// call returns the most recent error not tied to a call.
func (b *Bridge) GetErrorMessage(id uint32) string {
	b.crit.Lock()
	defer b.crit.Unlock()
	if c, ok := b.calls[id]; ok && c.lastErr != "" {
		return c.lastErr
	}
	return b.lastErr
}

// lookup must be called from inside the critical section.
func (b *Bridge) lookup(id uint32, index uint32) (*call, error) {
	c, ok := b.calls[id]
	if !ok {
		return nil, curated.Errorf("hostcall: unknown call (%d)", id)
	}
	if index >= uint32(len(c.args)) {
		err := fmt.Sprintf("argument %d out of range for %s", index, c.symbol)
		c.lastErr = err
		return nil, curated.Errorf("hostcall: %v", err)
	}
	return c, nil
}

// SetArgValue implements the primitives.HostCalls interface.
func (b *Bridge) SetArgValue(id uint32, index uint32, value uint64) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	c, err := b.lookup(id, index)
	if err != nil {
		return err
	}
	delete(c.buffers, index)
	c.args[index] = uintptr(value)
	return nil
}

// SetArgBuffer implements the primitives.HostCalls interface. The buffer is
// passed to the host function as a pointer.
func (b *Bridge) SetArgBuffer(id uint32, index uint32, data []byte) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	c, err := b.lookup(id, index)
	if err != nil {
		return err
	}

	// an empty buffer is still a valid pointer
	buf := make([]byte, max(len(data), 1))
	copy(buf, data)
	c.pinner.Pin(&buf[0])
	c.buffers[index] = buf[:len(data)]
	c.args[index] = pointer(buf)
	return nil
}

// SetResultType implements the primitives.HostCalls interface.
func (b *Bridge) SetResultType(id uint32, t uint32) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	c, ok := b.calls[id]
	if !ok {
		return curated.Errorf("hostcall: unknown call (%d)", id)
	}
	c.result = ResultType(t)
	return nil
}

// GetOutArgValue implements the primitives.HostCalls interface. The contents
// of the buffer after the call are returned.
func (b *Bridge) GetOutArgValue(id uint32, index uint32) ([]byte, error) {
	b.crit.Lock()
	defer b.crit.Unlock()
	c, err := b.lookup(id, index)
	if err != nil {
		return nil, err
	}
	buf, ok := c.buffers[index]
	if !ok {
		return nil, curated.Errorf("hostcall: argument %d of %s is not a buffer", index, c.symbol)
	}
	return append([]byte{}, buf...), nil
}

// Call implements the primitives.HostCalls interface.
func (b *Bridge) Call(id uint32) (uint64, error) {
	b.crit.Lock()
	defer b.crit.Unlock()
	c, ok := b.calls[id]
	if !ok {
		return 0, curated.Errorf("hostcall: unknown call (%d)", id)
	}
	r, errno := callFunction(c.fn, c.args)
	b.errno = uint32(errno)
	return uint64(r), nil
}

// CallString implements the primitives.HostCalls interface. The result of
// the host function is a pointer to a null terminated string.
func (b *Bridge) CallString(id uint32) (string, error) {
	b.crit.Lock()
	defer b.crit.Unlock()
	c, ok := b.calls[id]
	if !ok {
		return "", curated.Errorf("hostcall: unknown call (%d)", id)
	}
	r, errno := callFunction(c.fn, c.args)
	b.errno = uint32(errno)
	return cString(r), nil
}

// GetErrno implements the primitives.HostCalls interface. The value is the
// host errno after the most recent call.
func (b *Bridge) GetErrno() uint32 {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.errno
}

// Close disposes of every call and closes every library.
func (b *Bridge) Close() {
	b.crit.Lock()
	defer b.crit.Unlock()
	for id, c := range b.calls {
		c.pinner.Unpin()
		delete(b.calls, id)
	}
	for id, h := range b.libs {
		if err := dlclose(h); err != nil {
			b.log.Logf(logger.Allow, "hostcall", "closing %s: %v", b.names[id], err)
		}
		delete(b.libs, id)
		delete(b.names, id)
	}
}

var _ primitives.HostCalls = (*Bridge)(nil)
