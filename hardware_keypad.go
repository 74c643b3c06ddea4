package main

import (
	"github.com/hanok2/pich8/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

// HostEvent is an emulator control request from the input layer, as
// opposed to a key the running program sees.
type HostEvent int

const (
	HostQuit HostEvent = iota
	HostHelp
	HostDebug
	HostResume
	HostTurbo
	HostSaveState
	HostLoadState
	HostFullscreen
)

// InputSource feeds the frame loop. Poll drains pending events and
// Keys returns the current pad state.
type InputSource interface {
	Poll() []HostEvent
	Keys() chip8.Keys
}

// The left half of the keyboard maps onto the 4x4 pad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
//
// Y doubles for Z so QWERTZ layouts work too.
var keymap = map[sdl.Keycode]byte{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,
	sdl.K_y: 0xA,
}

var fKeyEvents = map[sdl.Keycode]HostEvent{
	sdl.K_F1:  HostHelp,
	sdl.K_F2:  HostDebug,
	sdl.K_F3:  HostResume,
	sdl.K_F4:  HostTurbo,
	sdl.K_F5:  HostSaveState,
	sdl.K_F9:  HostLoadState,
	sdl.K_F11: HostFullscreen,
}

// Keypad reads the SDL event queue and tracks which pad keys are down.
type Keypad struct {
	keys chip8.Keys
}

func (k *Keypad) Poll() []HostEvent {
	var events []HostEvent
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			events = append(events, HostQuit)

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				sym := e.Keysym.Sym
				if sym == sdl.K_ESCAPE {
					events = append(events, HostQuit)
				} else if he, ok := fKeyEvents[sym]; ok && e.Repeat == 0 {
					events = append(events, he)
				} else if key, ok := keymap[sym]; ok {
					k.keys.Press(key)
				}
			} else if e.Type == sdl.KEYUP {
				if key, ok := keymap[e.Keysym.Sym]; ok {
					k.keys.Release(key)
				}
			}
		}
	}
	return events
}

func (k *Keypad) Keys() chip8.Keys {
	return k.keys
}

// nullInput is the input source of the headless backend. Scripts drive
// the pad instead.
type nullInput struct{}

func (nullInput) Poll() []HostEvent { return nil }
func (nullInput) Keys() chip8.Keys  { return 0 }
