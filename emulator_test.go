package main

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDebugDeferredWhileDialogOpen(t *testing.T) {
	e := testEmulator(t, []byte{0x12, 0x00})

	dialog := make(chan dialogResult, 1)
	e.dialog = dialog

	// The prompt worker holds stdin, so the debug request is dropped.
	e.handleHostEvent(HostDebug)
	assert.False(t, *e.cpu.Debugging())

	// A second prompt request must not replace the pending one either.
	e.handleHostEvent(HostSaveState)

	dialog <- dialogResult{err: errors.New("cancelled")}
	e.pollDialog()
	assert.True(t, e.dialog == nil)

	e.handleHostEvent(HostDebug)
	assert.True(t, *e.cpu.Debugging())
}
