package texgen

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// hash2D returns a deterministic 64-bit hash for (x,y) under the given seed.
func hash2D(seed uint64, x, y int) uint64 {
	ux := uint64(uint32(x))
	uy := uint64(uint32(y))
	h := seed
	h ^= ux * 0x9E3779B185EBCA87
	h ^= uy * 0xC2B2AE3D27D4EB4F
	return splitmix64(h)
}

// unit maps a hash to [0,1).
func unit(h uint64) float64 {
	return float64(h>>11) * (1.0 / (1 << 53))
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

// valueNoise samples lattice noise with the given period in cells, so the
// result tiles every period cells. Output is in [0,1).
func valueNoise(seed uint64, x, y float64, period int) float64 {
	x0, y0 := int(x), int(y)
	if float64(x0) > x {
		x0--
	}
	if float64(y0) > y {
		y0--
	}
	fx, fy := smooth(x-float64(x0)), smooth(y-float64(y0))

	at := func(ix, iy int) float64 {
		return unit(hash2D(seed, wrap(ix, period), wrap(iy, period)))
	}
	a := at(x0, y0)
	b := at(x0+1, y0)
	c := at(x0, y0+1)
	d := at(x0+1, y0+1)
	top := a + (b-a)*fx
	bot := c + (d-c)*fx
	return top + (bot-top)*fy
}

// fbm sums octaves of tileable value noise over a size×size image. u and v
// are pixel coordinates; base is the cell count of the first octave.
func fbm(seed uint64, u, v float64, size, base, octaves int) float64 {
	var sum, amp, norm float64 = 0, 1, 0
	cells := base
	for o := 0; o < octaves; o++ {
		scale := float64(cells) / float64(size)
		sum += amp * valueNoise(seed+uint64(o)*0x51ED27, u*scale, v*scale, cells)
		norm += amp
		amp *= 0.5
		cells *= 2
	}
	return sum / norm
}
