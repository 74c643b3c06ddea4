package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimerDecay(t *testing.T) {
	rom := []byte{
		0x60, 0x03, // LD V0, $03
		0xF0, 0x15, // LD DT, V0
	}
	c := newTestCPU(t, rom)
	runTicks(t, c, 2)
	assert.Equal(t, byte(3), c.DelayTimer())

	for want := byte(2); ; want-- {
		c.UpdateTimers()
		assert.Equal(t, want, c.DelayTimer())
		if want == 0 {
			break
		}
	}

	// An expired timer stays at zero.
	c.UpdateTimers()
	assert.Equal(t, byte(0), c.DelayTimer())
}

func TestSoundActive(t *testing.T) {
	rom := []byte{
		0x60, 0x02, // LD V0, $02
		0xF0, 0x18, // LD ST, V0
	}
	c := newTestCPU(t, rom)
	assert.False(t, c.SoundActive())

	runTicks(t, c, 2)
	assert.True(t, c.SoundActive())
	assert.Equal(t, byte(2), c.SoundTimer())

	c.UpdateTimers()
	assert.True(t, c.SoundActive())
	c.UpdateTimers()
	assert.False(t, c.SoundActive())
}
