package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
	"github.com/hanok2/pich8/common"
)

const (
	sampleRate = 44100
	beepFreq   = 440
	beepVolume = 0.25
)

// beepWave generates a square wave while the gate is open and silence
// otherwise. It is the io.Reader the oto player pulls samples from, so
// Read runs on the audio thread and only touches the gate atomically.
type beepWave struct {
	gate  atomic.Bool
	phase int
}

func (w *beepWave) Read(p []byte) (int, error) {
	const period = sampleRate / beepFreq
	active := w.gate.Load()

	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		var s float32
		if active {
			if w.phase < period/2 {
				s = beepVolume
			} else {
				s = -beepVolume
			}
		}
		w.phase = (w.phase + 1) % period
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(s))
	}
	return n, nil
}

// Beeper is the sound timer's output: a single tone that plays while
// the timer is nonzero.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	wave   *beepWave
}

func newBeeper() (common.SoundOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	b := &Beeper{
		ctx:  ctx,
		wave: new(beepWave),
	}
	b.player = ctx.NewPlayer(b.wave)
	b.player.Play()
	return b, nil
}

func (b *Beeper) Beep() {
	b.wave.gate.Store(true)
}

func (b *Beeper) Silence() {
	b.wave.gate.Store(false)
}

func (b *Beeper) Cleanup() {
	b.player.Close()
}

// NoSound drops the beep, for machines without audio or scripted runs.
type NoSound struct{}

func newNoSound() (common.SoundOutput, error) {
	return NoSound{}, nil
}

func (NoSound) Beep()    {}
func (NoSound) Silence() {}
func (NoSound) Cleanup() {}
