package chip8

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Save-state binary layout (all multi-byte values big-endian):
//
//	offset size
//	0      3    magic "P8S"
//	3      1    version (currently 1)
//	4      4096 memory
//	4100   16   V0-VF
//	4116   2    I
//	4118   2    PC
//	4120   1    stack depth
//	4121   32   stack entries (all 16 slots, unused ones zero)
//	4153   1    delay timer
//	4154   1    sound timer
//	4155   256  display buffer
//	4411   1    flags (bit 0 shift quirk, bit 1 load/store quirk,
//	            bit 2 waiting for key)
//	4412   1    wait register
//	4413   8    RNG state
//
// Any layout change bumps the version byte; unknown versions are
// rejected, never guessed at.
const (
	stateVersion = 1
	stateSize    = 4 + MemorySize + NumRegisters + 2 + 2 + 1 + StackDepth*2 + 2 + displayBytes + 2 + 8
)

var stateMagic = [3]byte{'P', '8', 'S'}

const (
	flagShiftQuirk = 1 << iota
	flagLoadStoreQuirk
	flagWaiting
)

// MarshalState serializes the complete machine state. The encoding is
// deterministic: marshaling the same state twice yields identical bytes.
func (c *CPU) MarshalState() []byte {
	buf := make([]byte, stateSize)
	n := copy(buf, stateMagic[:])
	buf[n] = stateVersion
	n++
	n += copy(buf[n:], c.mem[:])
	n += copy(buf[n:], c.v[:])
	binary.BigEndian.PutUint16(buf[n:], c.i)
	n += 2
	binary.BigEndian.PutUint16(buf[n:], c.pc)
	n += 2
	buf[n] = c.sp
	n++
	for _, addr := range c.stack {
		binary.BigEndian.PutUint16(buf[n:], addr)
		n += 2
	}
	buf[n] = c.dt
	buf[n+1] = c.st
	n += 2
	n += copy(buf[n:], c.display.buf[:])

	var flags byte
	if c.quirks.ShiftSourceVY {
		flags |= flagShiftQuirk
	}
	if c.quirks.LoadStoreBumpI {
		flags |= flagLoadStoreQuirk
	}
	if c.waiting {
		flags |= flagWaiting
	}
	buf[n] = flags
	buf[n+1] = c.waitReg
	n += 2
	binary.BigEndian.PutUint64(buf[n:], c.rngState)

	return buf
}

// UnmarshalState reconstructs a machine from a serialized state.
func UnmarshalState(data []byte) (*CPU, error) {
	c := new(CPU)
	if err := c.RestoreState(data); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreState replaces the machine state with a deserialized one. On
// error the receiver is left unchanged. Host-side debugging state
// (breakpoints, console mode) is preserved across a restore.
func (c *CPU) RestoreState(data []byte) error {
	if len(data) < stateSize {
		return &DecodeError{
			Detail: fmt.Sprintf("%d bytes, want %d", len(data), stateSize),
			Err:    ErrTruncatedState,
		}
	}
	if len(data) > stateSize {
		return &DecodeError{
			Detail: fmt.Sprintf("%d trailing bytes", len(data)-stateSize),
			Err:    ErrCorruptState,
		}
	}
	if !bytes.Equal(data[:3], stateMagic[:]) {
		return &DecodeError{Detail: "bad magic", Err: ErrCorruptState}
	}
	if data[3] != stateVersion {
		return &DecodeError{
			Detail: fmt.Sprintf("version %d, support %d", data[3], stateVersion),
			Err:    ErrStateVersion,
		}
	}

	var tmp CPU
	n := 4
	n += copy(tmp.mem[:], data[n:])
	n += copy(tmp.v[:], data[n:])
	tmp.i = binary.BigEndian.Uint16(data[n:])
	n += 2
	tmp.pc = binary.BigEndian.Uint16(data[n:])
	n += 2
	tmp.sp = data[n]
	n++
	for s := range tmp.stack {
		tmp.stack[s] = binary.BigEndian.Uint16(data[n:])
		n += 2
	}
	tmp.dt = data[n]
	tmp.st = data[n+1]
	n += 2
	n += copy(tmp.display.buf[:], data[n:])

	flags := data[n]
	tmp.quirks.ShiftSourceVY = flags&flagShiftQuirk != 0
	tmp.quirks.LoadStoreBumpI = flags&flagLoadStoreQuirk != 0
	tmp.waiting = flags&flagWaiting != 0
	tmp.waitReg = data[n+1]
	n += 2
	tmp.rngState = binary.BigEndian.Uint64(data[n:])

	if tmp.sp > StackDepth {
		return &DecodeError{
			Detail: fmt.Sprintf("stack depth %d exceeds %d", tmp.sp, StackDepth),
			Err:    ErrCorruptState,
		}
	}
	if tmp.pc >= MemorySize {
		return &DecodeError{
			Detail: fmt.Sprintf("PC %04X outside memory", tmp.pc),
			Err:    ErrCorruptState,
		}
	}
	if tmp.waitReg >= NumRegisters {
		return &DecodeError{
			Detail: fmt.Sprintf("wait register %d", tmp.waitReg),
			Err:    ErrCorruptState,
		}
	}
	if tmp.rngState == 0 {
		return &DecodeError{Detail: "zero RNG state", Err: ErrCorruptState}
	}

	tmp.resumedFrom = noBreak
	tmp.debug = c.debug
	tmp.breakpoints = c.breakpoints
	*c = tmp
	return nil
}
