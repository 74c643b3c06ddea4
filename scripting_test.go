package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hanok2/pich8/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func testEmulator(t *testing.T, rom []byte) *Emulator {
	t.Helper()

	cpu := chip8.New(chip8.Quirks{})
	assert.NoError(t, cpu.LoadROM(rom))
	cpu.SeedRandom(1)

	video, input, err := newHeadlessDisplay()
	assert.NoError(t, err)
	sound, err := newNoSound()
	assert.NoError(t, err)

	return newEmulator(cpu, rom, video, sound, input, log.NewTestLogger(t), 2, false)
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.script")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScriptRun(t *testing.T) {
	rom := []byte{
		0x60, 0x05, // LD V0, $05
		0x12, 0x02, // JP $202
	}
	e := testEmulator(t, rom)
	RunScript(e, writeScript(t, "# comment line\nrun 10\n"))

	val, _, ok := e.cpu.RegByName("v0")
	assert.True(t, ok)
	assert.Equal(t, uint16(5), val)
}

func TestScriptPress(t *testing.T) {
	rom := []byte{
		0xF0, 0x0A, // LD V0, K
		0x12, 0x02, // JP $202
	}
	e := testEmulator(t, rom)
	RunScript(e, writeScript(t, "press b\nrun 1\nrelease b\n"))

	val, _, ok := e.cpu.RegByName("v0")
	assert.True(t, ok)
	assert.Equal(t, uint16(0xB), val)
	assert.Equal(t, chip8.Keys(0), e.scriptKeys)
}

func TestScriptFrames(t *testing.T) {
	rom := []byte{
		0x60, 0x0A, // LD V0, $0A
		0xF0, 0x15, // LD DT, V0
		0x12, 0x04, // JP $204
	}
	e := testEmulator(t, rom)
	RunScript(e, writeScript(t, "frames 3\n"))

	// Two cycles per frame: the timer is set during the first frame and
	// decremented once per frame after that.
	assert.Equal(t, byte(7), e.cpu.DelayTimer())
}

func TestScriptSaveLoadReset(t *testing.T) {
	rom := []byte{
		0x70, 0x01, // ADD V0, $01
		0x12, 0x00, // JP $200
	}
	e := testEmulator(t, rom)
	statePath := filepath.Join(t.TempDir(), "test.p8s")

	RunScript(e, writeScript(t, fmt.Sprintf("run 9\nsave %s\n", statePath)))
	val, _, _ := e.cpu.RegByName("v0")
	assert.Equal(t, uint16(5), val)

	RunScript(e, writeScript(t, "reset\nrun 1\n"))
	val, _, _ = e.cpu.RegByName("v0")
	assert.Equal(t, uint16(1), val)

	RunScript(e, writeScript(t, fmt.Sprintf("load %s\n", statePath)))
	val, _, _ = e.cpu.RegByName("v0")
	assert.Equal(t, uint16(5), val)
}

func TestScriptExpectPixel(t *testing.T) {
	rom := []byte{
		0xA0, 0x00, // LD I, $000
		0xD0, 0x15, // DRW V0, V1, $5
		0x12, 0x04, // JP $204
	}
	e := testEmulator(t, rom)
	RunScript(e, writeScript(t, "run 2\nexpect-pixel 0 0 1\nexpect-pixel 5 0 0\n"))

	// A failed expectation aborts the script.
	defer func() {
		assert.NotNil(t, recover())
	}()
	RunScript(e, writeScript(t, "expect-pixel 0 0 0\n"))
}

func TestScriptExpectPixelRejectsBadCoords(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"negative x", "expect-pixel -1 0 1\n", "must be 0-63"},
		{"x past edge", "expect-pixel 64 0 1\n", "must be 0-63"},
		{"negative y", "expect-pixel 0 -1 1\n", "must be 0-31"},
		{"y past edge", "expect-pixel 0 32 1\n", "must be 0-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEmulator(t, []byte{0x12, 0x00})
			defer func() {
				r := recover()
				assert.NotNil(t, r)
				assert.Contains(t, fmt.Sprint(r), tt.want)
			}()
			RunScript(e, writeScript(t, tt.script))
		})
	}
}

func TestHeadlessFrameKeepsLastImage(t *testing.T) {
	rom := []byte{
		0xA0, 0x00, // LD I, $000
		0xD0, 0x15, // DRW V0, V1, $5
		0x12, 0x04, // JP $204
	}
	e := testEmulator(t, rom)
	RunScript(e, writeScript(t, "frames 2\n"))

	display, ok := e.video.(*HeadlessDisplay)
	assert.True(t, ok)
	assert.NotEmpty(t, display.lastFrame)
	assert.Equal(t, byte(0xF0), display.lastFrame[0])
}
