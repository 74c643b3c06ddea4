package main

import (
	"fmt"

	"github.com/hanok2/pich8/common"
)

// Backend constructors. Video backends also own the input source since
// key events arrive through the same event queue as window events.
var videoBackends = map[string]func() (common.DisplayOutput, InputSource, error){
	"sdl":      newVideoDisplay,
	"headless": newHeadlessDisplay,
}

var audioBackends = map[string]func() (common.SoundOutput, error){
	"oto":  newBeeper,
	"none": newNoSound,
}

var backendDescriptions = map[string]string{
	"sdl":      "SDL2 window, 64x32 scaled up, with keyboard input",
	"headless": "No video output, for scripted runs",
	"oto":      "Square-wave beeper on the default audio device",
	"none":     "No audio output",
}

func dumpBackendList() {
	for name, desc := range backendDescriptions {
		fmt.Printf("%-10s %s\n", name, desc)
	}
}
