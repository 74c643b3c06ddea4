package chip8

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassembler. Takes a ROM image and dumps it to w.
// The format is:
// ADDR: WORD   MNEMONIC operands

// Disassemble prints every instruction word of the ROM image, addressed
// from base (normally ProgramStart). Words that match no opcode are
// emitted as data.
func Disassemble(w io.Writer, rom []byte, base uint16) error {
	for off := 0; off+1 < len(rom); off += 2 {
		opcode := uint16(rom[off])<<8 | uint16(rom[off+1])
		if err := disasmOp(w, base+uint16(off), opcode); err != nil {
			return err
		}
	}
	if len(rom)%2 != 0 {
		tail := rom[len(rom)-1]
		addr := base + uint16(len(rom)) - 1
		if _, err := fmt.Fprintf(w, "%04x: %02x     .db $%02x\n", addr, tail, tail); err != nil {
			return err
		}
	}
	return nil
}

// DisassembleOp prints the instruction at addr to stdout and returns its
// size in bytes. Used by the debug console's 'i' command.
func (c *CPU) DisassembleOp(addr uint16) uint16 {
	if int(addr)+1 >= MemorySize {
		return 2
	}
	opcode := uint16(c.mem[addr])<<8 | uint16(c.mem[addr+1])
	disasmOp(os.Stdout, addr, opcode)
	return 2
}

// lookup finds the instruction matching an opcode word in retrogolib's
// table, which groups opcodes by their high nibble. The entry with the
// most specific mask wins.
func lookup(opcode uint16) *chip8.Instruction {
	var best *chip8.Instruction
	var bestMask uint16
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Info.Mask >= bestMask {
			best = op.Instruction
			bestMask = op.Info.Mask
		}
	}
	return best
}

func disasmOp(w io.Writer, addr, opcode uint16) error {
	ins := lookup(opcode)
	if ins == nil {
		_, err := fmt.Fprintf(w, "%04x: %04x   .dw $%04x\n", addr, opcode, opcode)
		return err
	}
	params := formatParams(ins.Name, opcode)
	if params == "" {
		_, err := fmt.Fprintf(w, "%04x: %04x   %s\n", addr, opcode, ins.Name)
		return err
	}
	_, err := fmt.Fprintf(w, "%04x: %04x   %s %s\n", addr, opcode, ins.Name, params)
	return err
}

// formatParams renders the operand list for a mnemonic. The operand
// encoding depends on the opcode's high nibble for the mnemonics that
// have several forms (LD, ADD, JP, SE, SNE).
func formatParams(name string, opcode uint16) string {
	x := (opcode & 0x0F00) >> 8
	y := (opcode & 0x00F0) >> 4
	nn := opcode & 0x00FF
	nnn := opcode & 0x0FFF

	switch name {
	case chip8.ClsInst.Name, chip8.RetInst.Name:
		return ""
	case chip8.JpInst.Name:
		if opcode&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", nnn)
		}
		return fmt.Sprintf("$%03X", nnn)
	case chip8.CallInst.Name:
		return fmt.Sprintf("$%03X", nnn)
	case chip8.SeInst.Name, chip8.SneInst.Name:
		if opcode&0xF000 == 0x5000 || opcode&0xF000 == 0x9000 {
			return fmt.Sprintf("V%X, V%X", x, y)
		}
		return fmt.Sprintf("V%X, $%02X", x, nn)
	case chip8.LdInst.Name:
		return formatLoad(opcode, x, y, nn, nnn)
	case chip8.AddInst.Name:
		switch opcode & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, nn)
		case 0x8000:
			return fmt.Sprintf("V%X, V%X", x, y)
		default: // FX1E
			return fmt.Sprintf("I, V%X", x)
		}
	case chip8.OrInst.Name, chip8.AndInst.Name, chip8.XorInst.Name, chip8.SubInst.Name, chip8.SubnInst.Name:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.ShrInst.Name, chip8.ShlInst.Name:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.RndInst.Name:
		return fmt.Sprintf("V%X, $%02X", x, nn)
	case chip8.DrwInst.Name:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, opcode&0xF)
	case chip8.SkpInst.Name, chip8.SknpInst.Name:
		return fmt.Sprintf("V%X", x)
	}
	return ""
}

// The LD mnemonic covers nine encodings; pick operands by form.
func formatLoad(opcode, x, y, nn, nnn uint16) string {
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, nn)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", nnn)
	case 0xF000:
		switch nn {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}
