package texgen

import "math"

type RGB struct {
	R, G, B uint8
}

// Mul scales each channel by k/255.
func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Shade scales by f, saturating at 255.
func (c RGB) Shade(f float64) RGB {
	return RGB{R: scaleU8(c.R, f), G: scaleU8(c.G, f), B: scaleU8(c.B, f)}
}

func scaleU8(v uint8, f float64) uint8 {
	x := math.Round(float64(v) * f)
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

func lerpU8(a, b uint8, t float64) uint8 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: lerpU8(a.R, b.R, t),
		G: lerpU8(a.G, b.G, t),
		B: lerpU8(a.B, b.B, t),
	}
}
