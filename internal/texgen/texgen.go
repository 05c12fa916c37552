// Package texgen synthesises the tiling surface textures of the scene.
// Everything is deterministic for a given seed and wraps seamlessly, since
// the renderer samples with GL_REPEAT.
package texgen

import (
	"fmt"

	"bascule/internal/scene"
)

// DefaultSize is the edge length used by the renderer.
const DefaultSize = 128

// Image is a square RGBA8 pixel buffer, rows top to bottom.
type Image struct {
	Size int
	Pix  []uint8
}

func newImage(size int) *Image {
	return &Image{Size: size, Pix: make([]uint8, size*size*4)}
}

func (img *Image) set(x, y int, col RGB) {
	i := (y*img.Size + x) * 4
	img.Pix[i+0] = col.R
	img.Pix[i+1] = col.G
	img.Pix[i+2] = col.B
	img.Pix[i+3] = 255
}

// At returns the colour of pixel (x, y).
func (img *Image) At(x, y int) RGB {
	i := (y*img.Size + x) * 4
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// Generate builds the texture for t. TextureNone yields nil. size must be a
// positive multiple of 16.
func Generate(t scene.Texture, size int, seed uint64) *Image {
	if size <= 0 || size%16 != 0 {
		panic(fmt.Sprintf("texgen: size %d is not a positive multiple of 16", size))
	}
	seed = splitmix64(seed ^ uint64(t))
	switch t {
	case scene.TextureRoad:
		return road(size, seed)
	case scene.TextureStone:
		return stone(size, seed)
	case scene.TextureBrick:
		return brick(size, seed)
	case scene.TextureSteel:
		return steel(size, seed)
	case scene.TextureRock:
		return rock(size, seed)
	case scene.TextureWater:
		return water(size, seed)
	default:
		return nil
	}
}

// road is asphalt with a dashed centre line along V and solid edge lines.
func road(size int, seed uint64) *Image {
	img := newImage(size)
	asphalt := RGB{R: 58, G: 60, B: 64}
	paint := RGB{R: 215, G: 205, B: 150}
	edge := RGB{R: 205, G: 205, B: 200}

	lineHalf := size/64 + 1
	edgeW := size / 32
	dash := size / 4

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := fbm(seed, float64(x), float64(y), size, 8, 4)
			col := asphalt.Shade(0.8 + 0.4*n)
			if hash2D(seed, x, y)%97 == 0 {
				col = col.Shade(1.5)
			}
			switch {
			case x < edgeW || x >= size-edgeW:
				col = edge.Shade(0.9 + 0.1*n)
			case abs(x-size/2) < lineHalf && (y/dash)%2 == 0:
				col = paint.Shade(0.9 + 0.1*n)
			}
			img.set(x, y, col)
		}
	}
	return img
}

// stone is square setts in offset rows with dark joints.
func stone(size int, seed uint64) *Image {
	img := newImage(size)
	base := RGB{R: 150, G: 146, B: 138}
	joint := RGB{R: 70, G: 68, B: 64}
	cell := size / 8
	mortar := max(1, size/64)

	for y := 0; y < size; y++ {
		row := y / cell
		off := 0
		if row%2 == 1 {
			off = cell / 2
		}
		for x := 0; x < size; x++ {
			xs := (x + off) % size
			col := xs / cell
			lx, ly := xs%cell, y%cell
			n := fbm(seed, float64(x), float64(y), size, 16, 3)
			if lx < mortar || ly < mortar {
				img.set(x, y, joint.Shade(0.85+0.3*n))
				continue
			}
			tone := 0.8 + 0.35*unit(hash2D(seed, col, row))
			img.set(x, y, base.Shade(tone*(0.85+0.3*n)))
		}
	}
	return img
}

// brick is a running bond of red-brown bricks in pale mortar.
func brick(size int, seed uint64) *Image {
	img := newImage(size)
	clay := RGB{R: 150, G: 72, B: 52}
	burnt := RGB{R: 110, G: 52, B: 40}
	mortar := RGB{R: 180, G: 172, B: 160}
	bw, bh := size/4, size/8
	gap := max(1, size/64)

	for y := 0; y < size; y++ {
		row := y / bh
		off := 0
		if row%2 == 1 {
			off = bw / 2
		}
		for x := 0; x < size; x++ {
			xs := (x + off) % size
			col := xs / bw
			n := fbm(seed, float64(x), float64(y), size, 16, 3)
			if xs%bw < gap || y%bh < gap {
				img.set(x, y, mortar.Shade(0.85+0.2*n))
				continue
			}
			c := lerpRGB(clay, burnt, unit(hash2D(seed, col, row)))
			img.set(x, y, c.Shade(0.8+0.4*n))
		}
	}
	return img
}

// steel is brushed metal: streaks run along U.
func steel(size int, seed uint64) *Image {
	img := newImage(size)
	base := RGB{R: 128, G: 134, B: 142}
	for y := 0; y < size; y++ {
		streak := 0.92 + 0.12*unit(hash2D(seed, 0, y))
		for x := 0; x < size; x++ {
			n := fbm(seed, float64(x), float64(y), size, 2, 3)
			img.set(x, y, base.Shade(streak*(0.9+0.2*n)))
		}
	}
	return img
}

// rock is layered fractal noise with faint cracks.
func rock(size int, seed uint64) *Image {
	img := newImage(size)
	dark := RGB{R: 68, G: 64, B: 58}
	light := RGB{R: 142, G: 134, B: 120}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := fbm(seed, float64(x), float64(y), size, 4, 5)
			col := lerpRGB(dark, light, n)
			if c := fbm(seed^0xC7AC, float64(x), float64(y), size, 8, 2); c > 0.49 && c < 0.51 {
				col = col.Shade(0.6)
			}
			img.set(x, y, col)
		}
	}
	return img
}

// water is blue ripples with sparse glints.
func water(size int, seed uint64) *Image {
	img := newImage(size)
	deep := RGB{R: 22, G: 48, B: 72}
	shallow := RGB{R: 60, G: 110, B: 140}
	glint := RGB{R: 190, G: 215, B: 230}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := fbm(seed, float64(x), float64(y)*2, size, 8, 4)
			col := lerpRGB(deep, shallow, n)
			if n > 0.72 {
				col = lerpRGB(col, glint, (n-0.72)*2)
			}
			img.set(x, y, col)
		}
	}
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
