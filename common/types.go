package common

import "bufio"

// Machine is the interface the host and the debug console use to drive
// the interpreter, keeping them independent of the core package.
type Machine interface {
	Memory() []byte
	Registers() []string
	RegByName(name string) (uint16, string, bool)
	RegisterWidth(name string) int
	PC() uint16
	Step() error
	DisassembleOp(addr uint16) uint16
	AddBreakpoint(addr uint16)
	Debugging() *bool
	MarshalState() []byte
	RestoreState(data []byte) error
}

// DisplayOutput is the interface to the video backends. Draw receives
// the packed 1bpp framebuffer once per frame.
type DisplayOutput interface {
	Draw(vmem []byte) error
	ToggleFullscreen() error
	Cleanup()
}

// SoundOutput is the interface to the audio backends. Beep and Silence
// are idempotent; the host calls one of them every frame.
type SoundOutput interface {
	Beep()
	Silence()
	Cleanup()
}

// InputReader is shared by the inputs, since os.Stdin is global.
var InputReader *bufio.Reader
