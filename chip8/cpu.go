// Package chip8 implements the CHIP-8 virtual machine: memory, registers,
// the fetch-decode-execute cycle, the countdown timers and the save-state
// codec. The host frame loop drives it through Tick and UpdateTimers and
// reads the display buffer and sound flag back each frame.
package chip8

import (
	"fmt"
	"time"
)

const (
	// MemorySize is the full addressable memory range.
	MemorySize = 4096
	// ProgramStart is where ROM images are installed and execution begins.
	ProgramStart = 0x200
	// StackDepth is the maximum number of nested calls.
	StackDepth = 16
	// NumRegisters is the number of data registers V0-VF.
	NumRegisters = 16
)

// noBreak marks the resume address tracking as idle; it is outside the
// addressable range so it never matches a real PC.
const noBreak = 0xFFFF

// Keys is the state of the 16-key pad, one bit per key, key 0 in the
// least significant bit. The host passes a fresh snapshot to every Tick.
type Keys uint16

// Pressed reports whether the given key (0-F) is down.
func (k Keys) Pressed(key byte) bool {
	return k&(1<<(key&0xF)) != 0
}

// Press marks a key (0-F) as down.
func (k *Keys) Press(key byte) {
	*k |= 1 << (key & 0xF)
}

// Release marks a key (0-F) as up.
func (k *Keys) Release(key byte) {
	*k &^= 1 << (key & 0xF)
}

// first returns the lowest-numbered pressed key.
func (k Keys) first() (byte, bool) {
	for key := byte(0); key < 16; key++ {
		if k.Pressed(key) {
			return key, true
		}
	}
	return 0, false
}

// Quirks selects between the diverging historical behaviours of the shift
// and register dump/load instructions. The zero value is the common modern
// variant; setting the flags restores the original COSMAC VIP behaviour.
type Quirks struct {
	// ShiftSourceVY makes 8XY6/8XYE read VY and store the shifted value
	// into VX instead of shifting VX in place.
	ShiftSourceVY bool
	// LoadStoreBumpI makes FX55/FX65 leave I pointing past the last
	// register transferred instead of leaving it unchanged.
	LoadStoreBumpI bool
}

// CPU is the complete machine state. Create one with New, install a
// program with LoadROM or restore one with UnmarshalState.
type CPU struct {
	mem   [MemorySize]byte
	v     [NumRegisters]byte
	i     uint16
	pc    uint16
	sp    byte
	stack [StackDepth]uint16
	dt    byte
	st    byte

	display Display
	quirks  Quirks

	// FX0A parks the machine until a key arrives.
	waiting bool
	waitReg byte

	// xorshift state, carried in save states so a restored run repeats
	// the same CXNN sequence.
	rngState uint64

	// keys is the snapshot passed to the last Tick; EX9E/EXA1/FX0A read
	// it. Not part of the serialized state.
	keys Keys

	// host-side debugging aids, not serialized.
	debug       bool
	breakpoints []uint16
	resumedFrom uint16
}

// New returns a reset machine with the given quirk configuration.
func New(quirks Quirks) *CPU {
	c := &CPU{quirks: quirks}
	c.Reset()
	return c
}

// Reset clears memory, registers, timers and the display, reloads the
// font and points the PC at the program entry. Quirk configuration and
// breakpoints survive a reset.
func (c *CPU) Reset() {
	c.mem = [MemorySize]byte{}
	c.v = [NumRegisters]byte{}
	c.stack = [StackDepth]uint16{}
	c.i = 0
	c.sp = 0
	c.dt = 0
	c.st = 0
	c.pc = ProgramStart
	c.waiting = false
	c.waitReg = 0
	c.keys = 0
	c.resumedFrom = noBreak
	c.display.clear()
	copy(c.mem[:], fontData[:])
	c.SeedRandom(uint64(time.Now().UnixNano()))
}

// SeedRandom reseeds the CXNN random source. A fixed seed makes a run
// reproducible.
func (c *CPU) SeedRandom(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	c.rngState = seed
}

// xorshift64*. The multiply mixes the high bits, which we keep.
func (c *CPU) randByte() byte {
	c.rngState ^= c.rngState >> 12
	c.rngState ^= c.rngState << 25
	c.rngState ^= c.rngState >> 27
	return byte((c.rngState * 0x2545F4914F6CDD1D) >> 56)
}

// LoadROM resets the machine and installs the program image at the entry
// offset. Fails with a DecodeError wrapping ErrROMTooLarge if the image
// does not fit; the machine is left untouched in that case.
func (c *CPU) LoadROM(rom []byte) error {
	if len(rom) > MemorySize-ProgramStart {
		return &DecodeError{
			Detail: fmt.Sprintf("%d bytes, %d available", len(rom), MemorySize-ProgramStart),
			Err:    ErrROMTooLarge,
		}
	}
	c.Reset()
	copy(c.mem[ProgramStart:], rom)
	return nil
}

// Display returns the framebuffer for the renderer. Read-only by
// contract; the buffer is owned by the machine.
func (c *CPU) Display() *Display {
	return &c.display
}

// Quirks returns the active quirk configuration.
func (c *CPU) Quirks() Quirks {
	return c.quirks
}

// Tick runs exactly one fetch-decode-execute step against the given key
// snapshot. A non-nil error is always an *ExecutionFault and is terminal.
func (c *CPU) Tick(keys Keys) error {
	c.keys = keys
	return c.step()
}

// Step repeats one execution step with the key snapshot from the last
// Tick. Used by the debugger's single-step command.
func (c *CPU) Step() error {
	return c.step()
}

func (c *CPU) step() error {
	if !c.debug && c.pc != c.resumedFrom && c.hasBreakpoint(c.pc) {
		c.debug = true
		c.resumedFrom = c.pc
		return nil
	}
	if c.pc != c.resumedFrom {
		c.resumedFrom = noBreak
	}

	// FX0A parked the machine; consume ticks until a key is down.
	if c.waiting {
		if key, ok := c.keys.first(); ok {
			c.v[c.waitReg] = key
			c.waiting = false
		}
		return nil
	}

	if int(c.pc)+1 >= MemorySize {
		return &ExecutionFault{PC: c.pc, Err: ErrMemoryBounds}
	}
	opcode := uint16(c.mem[c.pc])<<8 | uint16(c.mem[c.pc+1])
	c.pc += 2
	return c.execute(opcode)
}

func (c *CPU) execute(opcode uint16) error {
	x := byte(opcode>>8) & 0xF
	y := byte(opcode>>4) & 0xF
	nn := byte(opcode)
	nnn := opcode & 0x0FFF

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0: // CLS
			c.display.clear()
		case 0x00EE: // RET
			if c.sp == 0 {
				return c.fault(opcode, ErrStackUnderflow)
			}
			c.sp--
			c.pc = c.stack[c.sp]
		default:
			// 0NNN called native machine code on the original
			// hardware; nothing to run here.
			return c.fault(opcode, ErrUnknownOpcode)
		}

	case 0x1000: // JP NNN
		c.pc = nnn

	case 0x2000: // CALL NNN
		if c.sp >= StackDepth {
			return c.fault(opcode, ErrStackOverflow)
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = nnn

	case 0x3000: // SE VX, NN
		if c.v[x] == nn {
			c.pc += 2
		}

	case 0x4000: // SNE VX, NN
		if c.v[x] != nn {
			c.pc += 2
		}

	case 0x5000: // SE VX, VY
		if opcode&0xF != 0 {
			return c.fault(opcode, ErrUnknownOpcode)
		}
		if c.v[x] == c.v[y] {
			c.pc += 2
		}

	case 0x6000: // LD VX, NN
		c.v[x] = nn

	case 0x7000: // ADD VX, NN (no carry)
		c.v[x] += nn

	case 0x8000:
		return c.executeALU(opcode, x, y)

	case 0x9000: // SNE VX, VY
		if opcode&0xF != 0 {
			return c.fault(opcode, ErrUnknownOpcode)
		}
		if c.v[x] != c.v[y] {
			c.pc += 2
		}

	case 0xA000: // LD I, NNN
		c.i = nnn

	case 0xB000: // JP V0, NNN
		c.pc = nnn + uint16(c.v[0])

	case 0xC000: // RND VX, NN
		c.v[x] = c.randByte() & nn

	case 0xD000: // DRW VX, VY, N
		n := uint16(opcode & 0xF)
		if int(c.i)+int(n) > MemorySize {
			return c.fault(opcode, ErrMemoryBounds)
		}
		sprite := c.mem[c.i : c.i+n]
		if c.display.drawSprite(c.v[x], c.v[y], sprite) {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}

	case 0xE000:
		switch nn {
		case 0x9E: // SKP VX
			if c.keys.Pressed(c.v[x]) {
				c.pc += 2
			}
		case 0xA1: // SKNP VX
			if !c.keys.Pressed(c.v[x]) {
				c.pc += 2
			}
		default:
			return c.fault(opcode, ErrUnknownOpcode)
		}

	case 0xF000:
		return c.executeMisc(opcode, x, nn)
	}

	return nil
}

// 8XY_ register-to-register ALU forms. VF is written after the result so
// an instruction targeting VF keeps the flag, matching the reference
// machine.
func (c *CPU) executeALU(opcode uint16, x, y byte) error {
	switch opcode & 0xF {
	case 0x0: // LD VX, VY
		c.v[x] = c.v[y]
	case 0x1: // OR VX, VY
		c.v[x] |= c.v[y]
	case 0x2: // AND VX, VY
		c.v[x] &= c.v[y]
	case 0x3: // XOR VX, VY
		c.v[x] ^= c.v[y]

	case 0x4: // ADD VX, VY
		sum := uint16(c.v[x]) + uint16(c.v[y])
		c.v[x] = byte(sum)
		if sum > 0xFF {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}

	case 0x5: // SUB VX, VY - VF is the NOT-borrow flag
		borrow := c.v[y] > c.v[x]
		c.v[x] -= c.v[y]
		if borrow {
			c.v[0xF] = 0
		} else {
			c.v[0xF] = 1
		}

	case 0x6: // SHR VX {, VY}
		src := x
		if c.quirks.ShiftSourceVY {
			src = y
		}
		lsb := c.v[src] & 1
		c.v[x] = c.v[src] >> 1
		c.v[0xF] = lsb

	case 0x7: // SUBN VX, VY
		borrow := c.v[x] > c.v[y]
		c.v[x] = c.v[y] - c.v[x]
		if borrow {
			c.v[0xF] = 0
		} else {
			c.v[0xF] = 1
		}

	case 0xE: // SHL VX {, VY}
		src := x
		if c.quirks.ShiftSourceVY {
			src = y
		}
		msb := c.v[src] >> 7
		c.v[x] = c.v[src] << 1
		c.v[0xF] = msb

	default:
		return c.fault(opcode, ErrUnknownOpcode)
	}
	return nil
}

// FX__ timer, key, index and memory forms.
func (c *CPU) executeMisc(opcode uint16, x, nn byte) error {
	switch nn {
	case 0x07: // LD VX, DT
		c.v[x] = c.dt

	case 0x0A: // LD VX, K - park until a key is pressed
		c.waiting = true
		c.waitReg = x

	case 0x15: // LD DT, VX
		c.dt = c.v[x]

	case 0x18: // LD ST, VX
		c.st = c.v[x]

	case 0x1E: // ADD I, VX
		c.i += uint16(c.v[x])

	case 0x29: // LD F, VX - font glyph address
		c.i = uint16(c.v[x]&0xF) * fontGlyphSize

	case 0x33: // LD B, VX - BCD of VX at I, I+1, I+2
		if int(c.i)+2 >= MemorySize {
			return c.fault(opcode, ErrMemoryBounds)
		}
		val := c.v[x]
		c.mem[c.i] = val / 100
		c.mem[c.i+1] = (val / 10) % 10
		c.mem[c.i+2] = val % 10

	case 0x55: // LD [I], VX - store V0..VX
		if int(c.i)+int(x) >= MemorySize {
			return c.fault(opcode, ErrMemoryBounds)
		}
		for r := byte(0); r <= x; r++ {
			c.mem[c.i+uint16(r)] = c.v[r]
		}
		if c.quirks.LoadStoreBumpI {
			c.i += uint16(x) + 1
		}

	case 0x65: // LD VX, [I] - load V0..VX
		if int(c.i)+int(x) >= MemorySize {
			return c.fault(opcode, ErrMemoryBounds)
		}
		for r := byte(0); r <= x; r++ {
			c.v[r] = c.mem[c.i+uint16(r)]
		}
		if c.quirks.LoadStoreBumpI {
			c.i += uint16(x) + 1
		}

	default:
		return c.fault(opcode, ErrUnknownOpcode)
	}
	return nil
}

// fault builds an ExecutionFault for an opcode that was already fetched.
// PC is rewound to the offending instruction so a retried tick faults at
// the same spot instead of running past it.
func (c *CPU) fault(opcode uint16, err error) error {
	c.pc -= 2
	return &ExecutionFault{PC: c.pc, Opcode: opcode, Err: err}
}

func (c *CPU) hasBreakpoint(addr uint16) bool {
	for _, bp := range c.breakpoints {
		if bp == addr {
			return true
		}
	}
	return false
}
