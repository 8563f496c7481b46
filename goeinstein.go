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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/goeinstein/curated"
	"github.com/jetsetilly/goeinstein/hardware"
	"github.com/jetsetilly/goeinstein/hardware/preferences"
	"github.com/jetsetilly/goeinstein/hardware/primitives"
	"github.com/jetsetilly/goeinstein/hardware/serial"
	"github.com/jetsetilly/goeinstein/hardware/stream"
	"github.com/jetsetilly/goeinstein/logger"
	"github.com/jetsetilly/goeinstein/modalflag"
	"github.com/jetsetilly/goeinstein/performance"
	"github.com/jetsetilly/goeinstein/prefs"
	"github.com/jetsetilly/goeinstein/scripting"
	"github.com/jetsetilly/goeinstein/statsview"
	"github.com/jetsetilly/goeinstein/version"
)

// exit values
const (
	exitOK    = 0
	exitParse = 10
	exitMode  = 20
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. Returns the value
// to use with os.Exit().
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "PTY", "ATTACH", "STATE", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParse
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md, output)
	case "PTY":
		err = pty(ctx, md, output)
	case "ATTACH":
		err = attach(ctx, md, output)
	case "STATE":
		err = state(md, output)
	case "PERFORMANCE":
		err = perform(ctx, md, output)
	case "VERSION":
		err = showVersion(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return exitOK
}

// options common to the modes that create a Newton.
type machineOptions struct {
	prefs     *string
	log       *bool
	statsview *bool
}

func addMachineOptions(md *modalflag.Modes) machineOptions {
	opts := machineOptions{
		prefs: md.AddString("prefs", "", "preferences for this run: \"key::value; key::value\""),
		log:   md.AddBool("log", false, "echo log to stdout"),
	}
	if statsview.Available() {
		opts.statsview = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return opts
}

// newNewton creates a Newton from the preferences file and the command line
// preferences.
func newNewton(opts machineOptions, output io.Writer, override string) (*hardware.Newton, error) {
	if *opts.log {
		logger.SetEcho(logger.NewColorizer(output), false)
	} else {
		logger.SetEcho(nil, false)
	}

	if opts.statsview != nil && *opts.statsview {
		statsview.Launch(output)
	}

	// later entries take priority
	prefs.PushCommandLineStack(fmt.Sprintf("%s; %s", *opts.prefs, override))
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "goeinstein", "unused preferences: %s", unused)
		}
	}()

	p, err := preferences.NewPreferences("")
	if err != nil {
		return nil, err
	}

	return hardware.NewNewton(nil, p)
}

func run(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("The script is a Lua file. See the scripting package for the available functions.")

	opts := addMachineOptions(md)
	savePrefs := md.AddBool("saveprefs", false, "save preferences on exit")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf("a script is required for %s mode", md)
	}

	n, err := newNewton(opts, output, "")
	if err != nil {
		return err
	}

	scr := scripting.NewScript(n, n.Mem, nil)
	defer scr.Close()

	err = scr.Run(ctx, md.GetArg(0))
	if err != nil && !errors.Is(ctx.Err(), context.Canceled) {
		_ = n.Close()
		return err
	}

	if *savePrefs {
		if err := n.Prefs.Save(); err != nil {
			_ = n.Close()
			return err
		}
	}

	return n.Close()
}

// pty opens the serial host port and echoes everything received back to the
// sender.
func pty(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	opts := addMachineOptions(md)
	location := md.AddUint("location", preferences.DefaultSerialLocation, "location ID of the serial port")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	override := fmt.Sprintf("serial.driver::%s; serial.location::%d", serial.DriverPTY, *location)
	n, err := newNewton(opts, output, override)
	if err != nil {
		return err
	}
	defer n.Close()

	hp := n.Ports.Get(uint32(*location))
	if pt, ok := hp.(*serial.PTY); ok {
		fmt.Fprintf(output, "serial port available at %s (%s)\n", pt.Link(), pt.SlaveName())
	}

	received := make(chan bool, 1)
	id := n.Interrupts.RegisterHandler(serial.InterruptMask, received, func(ctx any, _ uint32) {
		select {
		case ctx.(chan bool) <- true:
		default:
		}
	})
	defer n.Interrupts.UnregisterHandler(id)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(output, "\r")
			return nil
		case <-received:
			n.Interrupts.ClearInterrupt(serial.InterruptMask)
			var echo []byte
			for hp.GetSerialStatus()&serial.RxCharAvailable == serial.RxCharAvailable {
				echo = append(echo, hp.GetByte())
			}
			if len(echo) > 0 {
				logger.Logf(logger.Allow, "pty", "%q", echo)
				for _, b := range echo {
					hp.PutByte(b)
				}
			}
		}
	}
}

func attach(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Press ctrl-] to end the session.")

	location := md.AddUint("location", preferences.DefaultSerialLocation, "location ID of the serial port")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	path := serial.LinkPath(uint32(*location))
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		path = md.GetArg(0)
	default:
		return curated.Errorf("too many arguments for %s mode", md)
	}

	return attachTerminal(ctx, path, os.Stdin, output)
}

// state decodes a state file.
func state(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return curated.Errorf("a state file is required for %s mode", md)
	}

	f, err := os.Open(md.GetArg(0))
	if err != nil {
		return curated.Errorf("state: %v", err)
	}
	defer f.Close()

	prm := primitives.NewPrimitives(nil, nil)
	if err := prm.TransferState(stream.NewReader(f)); err != nil {
		return err
	}

	fmt.Fprint(output, prm.StateString())
	return nil
}

// the default instruction for PERFORMANCE mode is "get tablet sample rate",
// which has no side effects
const defaultPerformanceInstruction = 0x507

func perform(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	opts := addMachineOptions(md)
	instruction := md.AddUint("instruction", defaultPerformanceInstruction, "primitive to dispatch")
	duration := md.AddDuration("duration", 5*time.Second, "run for duration")
	profile := md.AddString("profile", "none", "generate profile: cpu, mem, trace, all (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	n, err := newNewton(opts, output, fmt.Sprintf("serial.driver::%s", serial.DriverNull))
	if err != nil {
		return err
	}
	defer n.Close()

	return performance.Check(ctx, output, prf, n, uint32(*instruction), *duration)
}

func showVersion(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *revision {
		v, r, _ := version.Version()
		fmt.Fprintf(output, "%s %s\n", v, r)
		return nil
	}
	fmt.Fprintln(output, version.String())
	return nil
}
