package chip8

// UpdateTimers advances the two countdown timers by one frame. The host
// calls it once per displayed frame (60Hz), not once per instruction.
func (c *CPU) UpdateTimers() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

// SoundActive reports whether the beep should currently play. True
// exactly while the sound timer is nonzero.
func (c *CPU) SoundActive() bool {
	return c.st > 0
}

// DelayTimer returns the current delay timer value.
func (c *CPU) DelayTimer() byte {
	return c.dt
}

// SoundTimer returns the current sound timer value.
func (c *CPU) SoundTimer() byte {
	return c.st
}
