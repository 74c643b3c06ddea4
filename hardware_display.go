package main

import (
	"fmt"
	"runtime"

	"github.com/hanok2/pich8/chip8"
	"github.com/hanok2/pich8/common"
	"github.com/veandco/go-sdl2/sdl"
)

const scaleFactor = 12

const (
	pixelOn  = 0xFFFFFFFF
	pixelOff = 0xFF000000
)

// VideoDisplay renders the framebuffer into an SDL window. The 64x32
// texture is scaled up by the renderer.
type VideoDisplay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels     []byte
	fullscreen bool
}

func newVideoDisplay() (common.DisplayOutput, InputSource, error) {
	runtime.LockOSThread() // Latch this goroutine to the same thread for SDL.
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, nil, fmt.Errorf("failed to init SDL: %w", err)
	}

	window, err := sdl.CreateWindow("pich8", sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED, chip8.DisplayWidth*scaleFactor,
		chip8.DisplayHeight*scaleFactor, sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING, chip8.DisplayWidth, chip8.DisplayHeight)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create texture: %w", err)
	}

	d := &VideoDisplay{
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}
	return d, new(Keypad), nil
}

// Draw expands the packed 1bpp buffer to ARGB and presents it.
func (d *VideoDisplay) Draw(vmem []byte) error {
	for i, bits := range vmem {
		for bit := 0; bit < 8; bit++ {
			var c uint32 = pixelOff
			if bits&(0x80>>bit) != 0 {
				c = pixelOn
			}
			off := (i*8 + bit) * 4
			d.pixels[off] = byte(c)
			d.pixels[off+1] = byte(c >> 8)
			d.pixels[off+2] = byte(c >> 16)
			d.pixels[off+3] = byte(c >> 24)
		}
	}

	if err := d.texture.Update(nil, d.pixels, chip8.DisplayWidth*4); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}
	if err := d.renderer.Clear(); err != nil {
		return fmt.Errorf("failed to clear renderer: %w", err)
	}
	if err := d.renderer.Copy(d.texture, nil, nil); err != nil {
		return fmt.Errorf("failed to copy texture: %w", err)
	}
	d.renderer.Present()
	return nil
}

func (d *VideoDisplay) ToggleFullscreen() error {
	var flags uint32
	if !d.fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := d.window.SetFullscreen(flags); err != nil {
		return fmt.Errorf("failed to toggle fullscreen: %w", err)
	}
	d.fullscreen = !d.fullscreen
	return nil
}

func (d *VideoDisplay) Cleanup() {
	d.texture.Destroy()
	d.renderer.Destroy()
	d.window.Destroy()
	sdl.Quit()
}
