// This file is part of VMDisplay.
//
// VMDisplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VMDisplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VMDisplay.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bilelmoussaoui/vmdisplay/console"
	"github.com/bilelmoussaoui/vmdisplay/display"
	"github.com/bilelmoussaoui/vmdisplay/guest"
	"github.com/bilelmoussaoui/vmdisplay/gui/sdlwin"
	"github.com/bilelmoussaoui/vmdisplay/logger"
	"github.com/bilelmoussaoui/vmdisplay/terminal"
)

func main() {
	name := flag.String("name", "demo", "guest machine name, shown in window captions")
	fullscreen := flag.Bool("fullscreen", false, "start with the main window fullscreen")
	grabOnHover := flag.Bool("grab-on-hover", false, "grab the keyboard when the pointer enters a console")
	attach := flag.String("attach", "", "bridge the serial console to this host terminal (eg. /dev/tty)")
	echoLog := flag.Bool("log", false, "echo log entries to stderr as they happen")
	flag.Parse()

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if err := run(*name, *fullscreen, *grabOnHover, *attach); err != nil {
		fmt.Fprintf(os.Stderr, "*** %v\n", err)
		logger.Tail(os.Stderr, 20)
		os.Exit(10)
	}
}

func run(name string, fullscreen bool, grabOnHover bool, attach string) error {
	demo := guest.NewDemo(name)
	demo.Machine().AddConsole(console.NewTextConsole("serial0"))

	serial, err := terminal.New("serial0")
	if err != nil {
		return err
	}
	defer serial.Close()

	plt, err := sdlwin.NewPlatform()
	if err != nil {
		return err
	}
	defer plt.Destroy()

	opts := []display.Option{
		display.WithKeymap(sdlwin.Keymap()),
	}
	if grabOnHover {
		opts = append(opts, display.WithGrabOnHover())
	}

	sess, err := display.NewSession(plt, plt.Renderer(), plt.ContextProvider(),
		demo.Machine(), opts...)
	if err != nil {
		return err
	}
	plt.Connect(sess)

	if err := sess.BindTextConsole("serial0", serial); err != nil {
		return err
	}

	if attach != "" {
		if err := serial.Attach(attach); err != nil {
			return err
		}
		defer serial.Detach()
	}

	if fullscreen {
		plt.SetFullscreen(true)
	}

	// a fake serial guest: a clock ticking on the console
	stop := make(chan struct{})
	defer close(stop)
	go serialClock(serial, stop)

	for plt.Service() {
	}

	return nil
}

// serialClock writes a timestamp to the guest end of the serial console every
// second
func serialClock(serial *terminal.Terminal, stop chan struct{}) {
	tty := serial.TTY()
	_, _ = tty.WriteString("vmdisplay demo guest\r\n")

	tck := time.NewTicker(time.Second)
	defer tck.Stop()

	for {
		select {
		case <-stop:
			return
		case t := <-tck.C:
			_, _ = fmt.Fprintf(tty, "%s\r\n", t.Format("15:04:05"))
		}
	}
}
