package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hanok2/pich8/chip8"
)

type command func(e *Emulator, args []string)

var cmds = map[string]command{
	"press":   cmdPress,
	"release": cmdRelease,
	"run":     cmdRun,
	"frames":  cmdFrames,
	"save":    cmdSave,
	"load":    cmdLoad,
	"reset":   cmdReset,
	"quit":    cmdQuit,

	"expect-pixel": cmdExpectPixel,
}

func parseKey(arg string) byte {
	key, err := strconv.ParseUint(arg, 16, 8)
	if err != nil || key > 0xF {
		panic(fmt.Errorf("key must be a hex digit 0-f, got '%s'", arg))
	}
	return byte(key)
}

func cmdPress(e *Emulator, args []string) {
	if len(args) < 1 {
		panic("'press' requires a key (hex digit) as an argument")
	}
	e.scriptKeys.Press(parseKey(args[0]))
}

func cmdRelease(e *Emulator, args []string) {
	if len(args) < 1 {
		panic("'release' requires a key (hex digit) as an argument")
	}
	e.scriptKeys.Release(parseKey(args[0]))
}

func cmdRun(e *Emulator, args []string) {
	if len(args) < 1 {
		panic("'run' requires an argument giving the cycle count")
	}

	cycles, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		panic("'run' requires a positive integer argument")
	}

	for i := uint64(0); i < cycles; i++ {
		if err := e.cpu.Tick(e.scriptKeys); err != nil {
			panic(err)
		}
	}
}

func cmdFrames(e *Emulator, args []string) {
	if len(args) < 1 {
		panic("'frames' requires an argument giving the frame count")
	}

	frames, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		panic("'frames' requires a positive integer argument")
	}

	for i := uint64(0); i < frames; i++ {
		if err := e.runFrame(); err != nil {
			panic(err)
		}
	}
}

func cmdSave(e *Emulator, args []string) {
	if len(args) < 1 {
		panic("'save' requires a filename as an argument")
	}
	if err := os.WriteFile(args[0], e.cpu.MarshalState(), 0o644); err != nil {
		panic(err)
	}
}

func cmdLoad(e *Emulator, args []string) {
	if len(args) < 1 {
		panic("'load' requires a filename as an argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		panic(err)
	}
	if err := e.cpu.RestoreState(data); err != nil {
		panic(err)
	}
}

// expect-pixel asserts the display state, so scripts double as checks.
func cmdExpectPixel(e *Emulator, args []string) {
	if len(args) < 3 {
		panic("'expect-pixel' requires x, y and 0/1 as arguments")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil || x < 0 || x >= chip8.DisplayWidth {
		panic(fmt.Errorf("x coordinate '%s' must be 0-%d", args[0], chip8.DisplayWidth-1))
	}
	y, err := strconv.Atoi(args[1])
	if err != nil || y < 0 || y >= chip8.DisplayHeight {
		panic(fmt.Errorf("y coordinate '%s' must be 0-%d", args[1], chip8.DisplayHeight-1))
	}
	want := args[2] == "1"

	if got := e.cpu.Display().Pixel(x, y); got != want {
		panic(fmt.Errorf("pixel (%d,%d) is %v, want %v", x, y, got, want))
	}
}

func cmdReset(e *Emulator, args []string) {
	e.scriptKeys = 0
	if err := e.cpu.LoadROM(e.rom); err != nil {
		panic(err)
	}
}

func cmdQuit(e *Emulator, args []string) {
	os.Exit(0)
}

// RunScript executes a line-oriented automation script against the
// machine before the interactive loop starts. Lines starting with '#'
// are comments.
func RunScript(e *Emulator, file string) {
	contents, err := os.ReadFile(file)
	if err != nil {
		panic(err)
	}

	lines := strings.Split(string(contents), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		args := strings.Split(line, " ")
		if cmd, ok := cmds[args[0]]; ok {
			cmd(e, args[1:])
		} else {
			panic(fmt.Errorf("unknown command '%s'", args[0]))
		}
	}
}
