package chip8

import (
	"errors"
	"fmt"
)

// Causes for an ExecutionFault. Match with errors.Is.
var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrMemoryBounds   = errors.New("memory access out of bounds")
)

// Causes for a DecodeError. Match with errors.Is.
var (
	ErrTruncatedState = errors.New("state buffer truncated")
	ErrStateVersion   = errors.New("unsupported state version")
	ErrCorruptState   = errors.New("corrupt state")
	ErrROMTooLarge    = errors.New("ROM exceeds available memory")
)

// ExecutionFault is returned by Tick when the machine cannot continue:
// an unrecognized opcode, a stack violation or an out-of-bounds access.
// The fault is terminal; the machine state is left as it was when the
// fault was detected and further ticks will fail the same way.
type ExecutionFault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *ExecutionFault) Error() string {
	return fmt.Sprintf("execution fault at %04X (opcode %04X): %v", f.PC, f.Opcode, f.Err)
}

func (f *ExecutionFault) Unwrap() error {
	return f.Err
}

// DecodeError is returned when a ROM image or a serialized state cannot
// be loaded. Loading is all-or-nothing: on error the machine is unchanged.
type DecodeError struct {
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
