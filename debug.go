package main

import (
	"fmt"
	"strings"

	"github.com/hanok2/pich8/common"
)

// debugConsole prints the prompt and handles one line of input.
func debugConsole(m common.Machine) {
	fmt.Printf("%03x debug> ", m.PC())
	in, err := common.InputReader.ReadString('\n')
	if err != nil {
		fmt.Printf("error while reading input: %v\n", err)
		return
	}

	// Try to parse in. First split on spaces.
	args := strings.Split(strings.TrimSpace(in), " ")
	if cmd, ok := common.DebugCommands[args[0]]; ok {
		cmd.Run(m, args)
	} else {
		fmt.Printf("Unknown command '%s'\n", args[0])
		fmt.Printf("Commands:\n")
		for key, dbg := range common.DebugCommands {
			fmt.Printf("%s\t%s\n", key, dbg.Describe())
		}
	}
}
