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

package logger

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tagStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6))
	repeatStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(1))
)

// Colorizer applies basic coloring rules to logging output. It is intended to
// be used as the argument to SetEcho() when the output is a terminal.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	for _, l := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if _, err := io.WriteString(c.out, colorize(l)+"\n"); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func colorize(line string) string {
	tag, detail, ok := strings.Cut(line, ": ")
	if !ok {
		return line
	}

	var repeat string
	if i := strings.LastIndex(detail, " (repeat x"); i >= 0 {
		repeat = repeatStyle.Render(detail[i:])
		detail = detail[:i]
	}

	if strings.HasPrefix(detail, "unknown") || strings.Contains(detail, "error") {
		detail = errorStyle.Render(detail)
	}

	return tagStyle.Render(tag) + ": " + detail + repeat
}
