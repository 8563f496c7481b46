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

package performance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/goeinstein/curated"
)

// Dispatcher is the part of the emulation being measured.
type Dispatcher interface {
	Dispatch(instruction uint32)
}

// only check for the end of the measurement period every brake dispatches.
// reading the clock is expensive compared to a primitive
const brake = 1000

// Check dispatches the instruction repeatedly for the specified duration and
// writes the rate to output. Returns early without error if the context is
// cancelled.
func Check(ctx context.Context, output io.Writer, profile Profile, emu Dispatcher, instruction uint32, duration time.Duration) error {
	if duration <= 0 {
		return curated.Errorf("performance: duration must be positive")
	}

	var count int
	var elapsed time.Duration

	runner := func() error {
		start := time.Now()
		end := start.Add(duration)

		for {
			for range brake {
				emu.Dispatch(instruction)
			}
			count += brake

			now := time.Now()
			if now.After(end) || ctx.Err() != nil {
				elapsed = now.Sub(start)
				return nil
			}
		}
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil {
		return err
	}

	rate := float64(count) / elapsed.Seconds()
	fmt.Fprintf(output, "%08x: %.0f dispatches/sec (%d in %.2f seconds)\n", instruction, rate, count, elapsed.Seconds())

	return nil
}
