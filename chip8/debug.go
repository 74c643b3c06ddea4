package chip8

import "strings"

var registers = []string{"V0", "V1", "V2", "V3", "V4", "V5", "V6", "V7",
	"V8", "V9", "VA", "VB", "VC", "VD", "VE", "VF", "I", "PC", "SP", "DT", "ST"}

// Registers returns the register names in display order.
func (c *CPU) Registers() []string {
	return registers
}

// RegByName resolves a register name (case-insensitive) to its current
// value and canonical name.
func (c *CPU) RegByName(name string) (uint16, string, bool) {
	upper := strings.ToUpper(name)
	switch upper {
	case "I":
		return c.i, "I", true
	case "PC":
		return c.pc, "PC", true
	case "SP":
		return uint16(c.sp), "SP", true
	case "DT":
		return uint16(c.dt), "DT", true
	case "ST":
		return uint16(c.st), "ST", true
	}
	if len(upper) == 2 && upper[0] == 'V' {
		d := upper[1]
		switch {
		case d >= '0' && d <= '9':
			return uint16(c.v[d-'0']), upper, true
		case d >= 'A' && d <= 'F':
			return uint16(c.v[d-'A'+10]), upper, true
		}
	}
	return 0, "", false
}

// RegisterWidth returns a register's width in bits for display purposes.
func (c *CPU) RegisterWidth(name string) int {
	switch strings.ToUpper(name) {
	case "I", "PC":
		return 16
	default:
		return 8
	}
}

// Memory exposes the address space to the debug console.
func (c *CPU) Memory() []byte {
	return c.mem[:]
}

// PC returns the current program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// Debugging exposes the debug-console flag. The console clears it to
// resume execution; a breakpoint hit sets it.
func (c *CPU) Debugging() *bool {
	return &c.debug
}

// AddBreakpoint registers a breakpoint address. Execution stops and the
// debug console opens when PC reaches it.
func (c *CPU) AddBreakpoint(addr uint16) {
	c.breakpoints = append(c.breakpoints, addr)
}
