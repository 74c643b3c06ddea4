package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/hanok2/pich8/chip8"
	"github.com/hanok2/pich8/common"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	video string
	audio string
	state string

	cyclesPerFrame int
	shiftQuirk     bool
	loadStoreQuirk bool

	disassemble  bool
	listBackends bool
	turbo        bool
	script       string

	debug bool
	quiet bool
}

func main() {
	options := readArguments()
	logger := createLogger(options)

	if !options.quiet {
		printBanner()
	}

	if options.listBackends {
		dumpBackendList()
		return
	}

	romFile := flag.Arg(0)
	rom, err := os.ReadFile(romFile)
	if err != nil {
		logger.Fatal("Reading ROM failed", log.Err(err))
	}

	if options.disassemble {
		if err := chip8.Disassemble(os.Stdout, rom, chip8.ProgramStart); err != nil {
			logger.Fatal("Disassembling failed", log.Err(err))
		}
		return
	}

	cpu := chip8.New(chip8.Quirks{
		ShiftSourceVY:  options.shiftQuirk,
		LoadStoreBumpI: options.loadStoreQuirk,
	})
	if err := cpu.LoadROM(rom); err != nil {
		logger.Fatal("Loading ROM failed", log.Err(err))
	}

	if options.state != "" {
		data, err := os.ReadFile(options.state)
		if err != nil {
			logger.Fatal("Reading state failed", log.Err(err))
		}
		if err := cpu.RestoreState(data); err != nil {
			logger.Fatal("Restoring state failed", log.Err(err))
		}
		logger.Info("Resumed from state", log.String("file", options.state))
	}

	common.InputReader = bufio.NewReader(os.Stdin)

	newVideo, ok := videoBackends[options.video]
	if !ok {
		fmt.Printf("Unknown video backend: %s\n", options.video)
		dumpBackendList()
		os.Exit(1)
	}
	video, input, err := newVideo()
	if err != nil {
		logger.Fatal("Video backend failed", log.Err(err))
	}

	newAudio, ok := audioBackends[options.audio]
	if !ok {
		fmt.Printf("Unknown audio backend: %s\n", options.audio)
		dumpBackendList()
		os.Exit(1)
	}
	sound, err := newAudio()
	if err != nil {
		logger.Fatal("Audio backend failed", log.Err(err))
	}

	emu := newEmulator(cpu, rom, video, sound, input, logger,
		options.cyclesPerFrame, options.turbo)

	if options.script != "" {
		RunScript(emu, options.script)
	}

	if err := emu.Run(); err != nil {
		logger.Fatal("Emulation stopped", log.Err(err))
	}
}

func readArguments() optionFlags {
	options := optionFlags{}

	flag.StringVar(&options.video, "video", "sdl", "Video backend. See -list-backends for a list.")
	flag.StringVar(&options.audio, "audio", "oto", "Audio backend. See -list-backends for a list.")
	flag.BoolVar(&options.listBackends, "list-backends", false, "List the video and audio backends and exit.")
	flag.IntVar(&options.cyclesPerFrame, "cycles", 10, "CPU cycles to run per 60Hz frame.")
	flag.BoolVar(&options.shiftQuirk, "shift-quirk", false, "Shift instructions read VY instead of VX.")
	flag.BoolVar(&options.loadStoreQuirk, "loadstore-quirk", false, "Register dump/load instructions increment I.")
	flag.StringVar(&options.state, "state", "", "Save state file to resume from.")
	flag.BoolVar(&options.disassemble, "disassemble", false, "Disassemble the ROM to stdout and exit.")
	flag.BoolVar(&options.turbo, "turbo", false, "Start in turbo (unlimited speed) mode.")
	flag.StringVar(&options.script, "script", "", "Script file to run before the interactive loop.")
	flag.BoolVar(&options.debug, "debug", false, "Enable debug logging.")
	flag.BoolVar(&options.quiet, "q", false, "Perform operations quietly.")

	flag.Parse()

	if flag.Arg(0) == "" && !options.listBackends {
		printBanner()
		fmt.Printf("Usage: %s [options] <ROM file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	return options
}

func createLogger(options optionFlags) *log.Logger {
	cfg := log.DefaultConfig()
	if options.debug {
		cfg.Level = log.DebugLevel
	} else if options.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func printBanner() {
	fmt.Println("[-----------------------------]")
	fmt.Println("[ pich8 - CHIP-8 interpreter  ]")
	fmt.Printf("[-----------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}
