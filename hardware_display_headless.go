package main

import "github.com/hanok2/pich8/common"

// HeadlessDisplay swallows frames. It keeps the last one so scripted
// runs can inspect the final screen.
type HeadlessDisplay struct {
	lastFrame []byte
}

func newHeadlessDisplay() (common.DisplayOutput, InputSource, error) {
	return new(HeadlessDisplay), nullInput{}, nil
}

func (d *HeadlessDisplay) Draw(vmem []byte) error {
	if d.lastFrame == nil {
		d.lastFrame = make([]byte, len(vmem))
	}
	copy(d.lastFrame, vmem)
	return nil
}

func (d *HeadlessDisplay) ToggleFullscreen() error { return nil }

func (d *HeadlessDisplay) Cleanup() {}
