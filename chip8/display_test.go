package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestPixelPacking(t *testing.T) {
	var d Display
	d.drawSprite(0, 0, []byte{0x80})
	assert.True(t, d.Pixel(0, 0))
	assert.False(t, d.Pixel(1, 0))
	assert.Equal(t, byte(0x80), d.Buffer()[0])
}

func TestPixelNegativeCoordinates(t *testing.T) {
	var d Display
	d.drawSprite(0, 0, []byte{0x80})

	// Negative coordinates wrap the same as positive ones.
	assert.True(t, d.Pixel(-64, -32))
	assert.True(t, d.Pixel(-64, 0))
	assert.False(t, d.Pixel(-1, 0))
	assert.False(t, d.Pixel(0, -1))
}

func TestSpriteHorizontalWrap(t *testing.T) {
	var d Display
	d.drawSprite(60, 0, []byte{0xFF})

	for x := 60; x < 64; x++ {
		assert.True(t, d.Pixel(x, 0))
	}
	for x := 0; x < 4; x++ {
		assert.True(t, d.Pixel(x, 0))
	}
	assert.False(t, d.Pixel(4, 0))
	assert.False(t, d.Pixel(59, 0))
}

func TestSpriteVerticalWrap(t *testing.T) {
	var d Display
	d.drawSprite(0, 30, []byte{0x80, 0x80, 0x80})

	assert.True(t, d.Pixel(0, 30))
	assert.True(t, d.Pixel(0, 31))
	assert.True(t, d.Pixel(0, 0))
	assert.False(t, d.Pixel(0, 1))
}

func TestSpriteCollision(t *testing.T) {
	var d Display
	assert.False(t, d.drawSprite(4, 2, []byte{0xF0, 0x90}))

	// The second draw erases every pixel it touches.
	assert.True(t, d.drawSprite(4, 2, []byte{0xF0, 0x90}))
	for _, b := range d.Buffer() {
		assert.Equal(t, byte(0), b)
	}
}

func TestOverlappingSprites(t *testing.T) {
	var d Display
	assert.False(t, d.drawSprite(0, 0, []byte{0xF0}))
	// Shifted by four pixels, overlapping nothing that is lit.
	assert.False(t, d.drawSprite(4, 1, []byte{0xF0}))
	// Overlapping one lit pixel is enough.
	assert.True(t, d.drawSprite(3, 0, []byte{0x80}))
}

func TestClear(t *testing.T) {
	var d Display
	d.drawSprite(10, 10, []byte{0xFF, 0xFF})
	d.clear()
	for _, b := range d.Buffer() {
		assert.Equal(t, byte(0), b)
	}
}
