package common

import (
	"fmt"
	"os"
)

// DebugCommand captures a self-describing debug command.
type DebugCommand interface {
	Describe() string
	Run(m Machine, args []string)
}

type debugBlob struct {
	desc string
	f    func(Machine, []string)
}

// DebugCommands is a map of command strings to command objects.
var DebugCommands = map[string]DebugCommand{
	"r": newCommand("Dump one or all (r)egisters ('r' vs. 'r <reg>')", cmdRegs),
	"q": newCommand("(Q)uit the emulator", func(Machine, []string) { os.Exit(0) }),

	"c": newCommand("(C)ontinue execution", func(m Machine, s []string) {
		*m.Debugging() = false
	}),

	"s": newCommand("(S)tep forward, run next instruction", func(m Machine, args []string) {
		if err := m.Step(); err != nil {
			fmt.Printf("%% %v\n", err)
		}
	}),

	"b": newCommand("Set a new (b)reakpoint at the given (hex) location",
		singleHexArg("No breakpoint location specified (needs hex number)",
			"Error parsing the location", func(m Machine, loc uint16) {
				m.AddBreakpoint(loc)
				fmt.Printf("Breakpoint set at PC = %03x\n", loc)
			})),
	"m": newCommand("Print a value from (m)emory",
		singleHexArg("No memory location specified", "Error parsing location",
			func(m Machine, loc uint16) {
				mem := m.Memory()
				if int(loc) >= len(mem) {
					fmt.Printf("%% Address %03x out of range\n", loc)
					return
				}
				x := mem[loc]
				fmt.Printf("[%03x] = %02x (%d)\n", loc, x, x)
			})),

	"i": newCommand("Disassemble the (i)nstruction at the given location, or at PC",
		singleHexArg("No PC value given", "Error parsing location",
			func(m Machine, loc uint16) {
				for i := loc; i < loc+16; {
					i += m.DisassembleOp(i)
				}
			})),

	"save": newCommand("(Save) the machine state to the given file",
		func(m Machine, args []string) {
			if len(args) < 2 {
				fmt.Println("No filename given")
				return
			}
			if err := os.WriteFile(args[1], m.MarshalState(), 0o644); err != nil {
				fmt.Printf("Could not write state: %v\n", err)
				return
			}
			fmt.Printf("State saved to %s\n", args[1])
		}),

	"load": newCommand("(Load) a machine state from the given file",
		func(m Machine, args []string) {
			if len(args) < 2 {
				fmt.Println("No filename given")
				return
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				fmt.Printf("Could not read state: %v\n", err)
				return
			}
			if err := m.RestoreState(data); err != nil {
				fmt.Printf("Could not restore state: %v\n", err)
				return
			}
			fmt.Printf("State loaded, PC = %03x\n", m.PC())
		}),
}

func newCommand(desc string, f func(m Machine, args []string)) DebugCommand {
	d := new(debugBlob)
	d.desc = desc
	d.f = f
	return d
}

func (dbg *debugBlob) Describe() string {
	return dbg.desc
}

func (dbg *debugBlob) Run(m Machine, args []string) {
	dbg.f(m, args)
}

// Indexed by register width in bits.
var regLines = map[int]string{
	8:  "%2s    %02x (%d)\n",
	16: "%2s  %04x (%d)\n",
}

func showReg(m Machine, name string, val uint16) {
	fmt.Printf(regLines[m.RegisterWidth(name)], name, val, val)
}

func cmdRegs(m Machine, args []string) {
	if len(args) > 1 {
		for _, r := range args[1:] {
			value, name, ok := m.RegByName(r)
			if ok {
				showReg(m, name, value)
			} else {
				fmt.Printf("%% Unknown register: %s\n", r)
			}
		}
	} else {
		for _, r := range m.Registers() {
			value, name, _ := m.RegByName(r)
			showReg(m, name, value)
		}
	}
}

func singleHexArg(notSpecifiedMsg, parseErrorMsg string,
	cmd func(m Machine, arg uint16)) func(Machine, []string) {
	return func(m Machine, args []string) {
		if len(args) <= 1 {
			fmt.Println(notSpecifiedMsg)
			return
		}

		var x uint16
		_, err := fmt.Sscanf(args[1], "%x", &x)
		if err != nil {
			fmt.Printf(parseErrorMsg+": %v\n", err)
			return
		}

		cmd(m, x)
	}
}
