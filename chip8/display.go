package chip8

// Display dimensions, 1 bit per pixel.
const (
	DisplayWidth  = 64
	DisplayHeight = 32

	displayBytes = DisplayWidth * DisplayHeight / 8
)

// Display is the monochrome framebuffer. Pixels are packed 8 per byte,
// row-major, most significant bit leftmost.
type Display struct {
	buf [displayBytes]byte
}

// Buffer returns the packed pixel data. The renderer must treat it as
// read-only; only the CPU writes to it.
func (d *Display) Buffer() []byte {
	return d.buf[:]
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap at
// the display edges, negative ones included.
func (d *Display) Pixel(x, y int) bool {
	x = ((x % DisplayWidth) + DisplayWidth) % DisplayWidth
	y = ((y % DisplayHeight) + DisplayHeight) % DisplayHeight
	return d.buf[y*DisplayWidth/8+x/8]&(0x80>>(x%8)) != 0
}

func (d *Display) clear() {
	d.buf = [displayBytes]byte{}
}

// drawSprite XORs the sprite rows onto the buffer starting at (x, y),
// wrapping at both edges. Reports whether any lit pixel was erased.
func (d *Display) drawSprite(x, y byte, sprite []byte) bool {
	collision := false
	for row, bits := range sprite {
		py := (int(y) + row) % DisplayHeight
		for bit := 0; bit < 8; bit++ {
			if bits&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % DisplayWidth
			idx := py*DisplayWidth/8 + px/8
			mask := byte(0x80 >> (px % 8))
			if d.buf[idx]&mask != 0 {
				collision = true
			}
			d.buf[idx] ^= mask
		}
	}
	return collision
}
