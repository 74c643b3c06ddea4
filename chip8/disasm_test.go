package chip8

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	rom := []byte{
		0x00, 0xE0, // CLS
		0x12, 0x34, // JP $234
		0x6A, 0x2B, // LD VA, $2B
		0xD0, 0x15, // DRW V0, V1, $5
		0xE0, 0xFF, // no matching opcode
	}

	var buf bytes.Buffer
	assert.NoError(t, Disassemble(&buf, rom, ProgramStart))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[0], "0200: 00e0"))
	assert.Contains(t, lines[0], chip8.ClsInst.Name)

	assert.True(t, strings.HasPrefix(lines[1], "0202: 1234"))
	assert.Contains(t, lines[1], chip8.JpInst.Name)
	assert.Contains(t, lines[1], "$234")

	assert.Contains(t, lines[2], chip8.LdInst.Name)
	assert.Contains(t, lines[2], "VA, $2B")

	assert.Contains(t, lines[3], chip8.DrwInst.Name)
	assert.Contains(t, lines[3], "V0, V1, $5")

	assert.Contains(t, lines[4], ".dw $e0ff")
}

func TestDisassembleOddTail(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Disassemble(&buf, []byte{0x00, 0xE0, 0xAB}, ProgramStart))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], ".db $ab")
	assert.True(t, strings.HasPrefix(lines[1], "0202:"))
}

func TestFormatParams(t *testing.T) {
	tests := []struct {
		name   string
		ins    string
		opcode uint16
		want   string
	}{
		{"cls", chip8.ClsInst.Name, 0x00E0, ""},
		{"ret", chip8.RetInst.Name, 0x00EE, ""},
		{"jp absolute", chip8.JpInst.Name, 0x1345, "$345"},
		{"jp offset", chip8.JpInst.Name, 0xB345, "V0, $345"},
		{"call", chip8.CallInst.Name, 0x2400, "$400"},
		{"se immediate", chip8.SeInst.Name, 0x3107, "V1, $07"},
		{"se register", chip8.SeInst.Name, 0x5120, "V1, V2"},
		{"sne immediate", chip8.SneInst.Name, 0x4107, "V1, $07"},
		{"sne register", chip8.SneInst.Name, 0x9120, "V1, V2"},
		{"ld immediate", chip8.LdInst.Name, 0x61FE, "V1, $FE"},
		{"ld register", chip8.LdInst.Name, 0x8120, "V1, V2"},
		{"ld index", chip8.LdInst.Name, 0xA123, "I, $123"},
		{"ld from delay", chip8.LdInst.Name, 0xF107, "V1, DT"},
		{"ld key wait", chip8.LdInst.Name, 0xF10A, "V1, K"},
		{"ld to delay", chip8.LdInst.Name, 0xF115, "DT, V1"},
		{"ld to sound", chip8.LdInst.Name, 0xF118, "ST, V1"},
		{"ld font", chip8.LdInst.Name, 0xF129, "F, V1"},
		{"ld bcd", chip8.LdInst.Name, 0xF133, "B, V1"},
		{"ld store", chip8.LdInst.Name, 0xF155, "[I], V1"},
		{"ld load", chip8.LdInst.Name, 0xF165, "V1, [I]"},
		{"add immediate", chip8.AddInst.Name, 0x7107, "V1, $07"},
		{"add register", chip8.AddInst.Name, 0x8124, "V1, V2"},
		{"add index", chip8.AddInst.Name, 0xF11E, "I, V1"},
		{"or", chip8.OrInst.Name, 0x8121, "V1, V2"},
		{"shr", chip8.ShrInst.Name, 0x8126, "V1, V2"},
		{"shl", chip8.ShlInst.Name, 0x812E, "V1, V2"},
		{"rnd", chip8.RndInst.Name, 0xC1F0, "V1, $F0"},
		{"drw", chip8.DrwInst.Name, 0xD125, "V1, V2, $5"},
		{"skp", chip8.SkpInst.Name, 0xE19E, "V1"},
		{"sknp", chip8.SknpInst.Name, 0xE1A1, "V1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatParams(tt.ins, tt.opcode))
		})
	}
}

func TestDisassembleOp(t *testing.T) {
	c := newTestCPU(t, []byte{0x00, 0xE0})
	assert.Equal(t, uint16(2), c.DisassembleOp(ProgramStart))
	assert.Equal(t, uint16(2), c.DisassembleOp(0xFFF))
}
