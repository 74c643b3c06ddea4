package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hanok2/pich8/chip8"
	"github.com/hanok2/pich8/common"
	"github.com/retroenv/retrogolib/log"
)

const (
	frameRate = 60
	// Turbo runs this many times more cycles per frame, with the frame
	// pacing removed.
	turboMultiplier = 20
)

// Emulator owns the frame loop: poll input, run a batch of CPU cycles,
// tick the timers, paint the frame and gate the beeper.
type Emulator struct {
	cpu    *chip8.CPU
	rom    []byte
	video  common.DisplayOutput
	sound  common.SoundOutput
	input  InputSource
	logger *log.Logger

	cyclesPerFrame int
	turbo          bool
	quit           bool

	// Keys held down by script commands, merged with the live pad.
	scriptKeys chip8.Keys

	// Pending save/load path prompt, nil when no dialog is open.
	dialog <-chan dialogResult
}

func newEmulator(cpu *chip8.CPU, rom []byte, video common.DisplayOutput, sound common.SoundOutput,
	input InputSource, logger *log.Logger, cyclesPerFrame int, turbo bool) *Emulator {
	return &Emulator{
		cpu:            cpu,
		rom:            rom,
		video:          video,
		sound:          sound,
		input:          input,
		logger:         logger,
		cyclesPerFrame: cyclesPerFrame,
		turbo:          turbo,
	}
}

// Run drives the machine at 60 frames per second until the window is
// closed or the program faults.
func (e *Emulator) Run() error {
	defer e.video.Cleanup()
	defer e.sound.Cleanup()

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for !e.quit {
		for _, ev := range e.input.Poll() {
			e.handleHostEvent(ev)
		}
		if e.quit {
			break
		}

		e.pollDialog()

		if *e.cpu.Debugging() {
			e.sound.Silence()
			// A breakpoint can trip while a path prompt is open; hold the
			// console until the prompt has released stdin.
			if e.dialog == nil {
				debugConsole(e.cpu)
			} else {
				<-ticker.C
			}
			continue
		}

		if err := e.runFrame(); err != nil {
			return err
		}

		if !e.turbo {
			<-ticker.C
		}
	}
	return nil
}

// runFrame executes one frame worth of cycles and presents the result.
// A breakpoint cuts the cycle batch short so the console opens on the
// same frame.
func (e *Emulator) runFrame() error {
	cycles := e.cyclesPerFrame
	if e.turbo {
		cycles *= turboMultiplier
	}

	keys := e.input.Keys() | e.scriptKeys
	for i := 0; i < cycles; i++ {
		if err := e.cpu.Tick(keys); err != nil {
			return err
		}
		if *e.cpu.Debugging() {
			break
		}
	}

	e.cpu.UpdateTimers()

	if err := e.video.Draw(e.cpu.Display().Buffer()); err != nil {
		return err
	}
	if e.cpu.SoundActive() {
		e.sound.Beep()
	} else {
		e.sound.Silence()
	}
	return nil
}

func (e *Emulator) handleHostEvent(ev HostEvent) {
	switch ev {
	case HostQuit:
		e.quit = true

	case HostHelp:
		fmt.Println("=== Emulator commands ===")
		fmt.Println("F1\tShow this help")
		fmt.Println("F2\tStart debugging")
		fmt.Println("F3\tResume running")
		fmt.Println("F4\tTurbo speed toggle")
		fmt.Println("F5\tSave state")
		fmt.Println("F9\tLoad state")
		fmt.Println("F11\tToggle fullscreen")
		fmt.Println("ESC\tQuit")

	case HostDebug:
		// The path prompt owns stdin while it is open; both reading the
		// same reader would interleave their input.
		if e.dialog == nil {
			*e.cpu.Debugging() = true
		} else {
			fmt.Println("Finish the state file prompt before debugging")
		}

	case HostResume:
		*e.cpu.Debugging() = false

	case HostTurbo:
		e.turbo = !e.turbo
		if e.turbo {
			fmt.Println("Turbo enabled: speed unlimited")
		} else {
			fmt.Printf("Turbo disabled: running at %d cycles per frame\n", e.cyclesPerFrame)
		}

	case HostSaveState:
		if e.dialog == nil {
			e.dialog = promptPath(dialogSave)
		}

	case HostLoadState:
		if e.dialog == nil {
			e.dialog = promptPath(dialogLoad)
		}

	case HostFullscreen:
		if err := e.video.ToggleFullscreen(); err != nil {
			e.logger.Error("Fullscreen toggle failed", log.Err(err))
		}
	}
}

// pollDialog checks for a finished path prompt without blocking the
// frame loop.
func (e *Emulator) pollDialog() {
	if e.dialog == nil {
		return
	}

	select {
	case res := <-e.dialog:
		e.dialog = nil
		if res.err != nil {
			e.logger.Error("State dialog failed", log.Err(res.err))
			return
		}
		switch res.kind {
		case dialogSave:
			e.saveState(res.path)
		case dialogLoad:
			e.loadState(res.path)
		}
	default:
	}
}

func (e *Emulator) saveState(path string) {
	if err := os.WriteFile(path, e.cpu.MarshalState(), 0o644); err != nil {
		e.logger.Error("Writing state failed", log.Err(err))
		return
	}
	e.logger.Info("State saved", log.String("file", path))
}

func (e *Emulator) loadState(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Error("Reading state failed", log.Err(err))
		return
	}
	if err := e.cpu.RestoreState(data); err != nil {
		e.logger.Error("Restoring state failed", log.Err(err))
		return
	}
	e.logger.Info("State loaded", log.String("file", path))
}
