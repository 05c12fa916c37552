package audio

import "math"

const (
	roadLoopSeconds  = 4.0
	riverLoopSeconds = 6.0
)

// sampleKey addresses one generated buffer.
type sampleKey struct {
	cue     Cue
	variant int
}

// generateSamples renders every buffer the mixer can play.
func generateSamples() map[sampleKey][]byte {
	out := map[sampleKey][]byte{
		{CueRoad, 0}:   genRoad(),
		{CueRiver, 0}:  genRiver(),
		{CueBridge, 0}: genBridgeMotor(),
		{CueHorn, 0}:   genBoatHorn(),
	}
	for v := 0; v < HonkVariants; v++ {
		out[sampleKey{CueCarHonk, v}] = genHonk(false, v)
		out[sampleKey{CueBusHonk, v}] = genHonk(true, v)
	}
	return out
}

// genRoad: distant traffic rumble with passing swells. Every periodic term
// completes whole cycles in the loop, so the seam is inaudible.
func genRoad() []byte {
	n := frames(roadLoopSeconds)
	buf := makeBuf(n)
	seed := uint64(31337)
	lp, lp2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		ph := t / roadLoopSeconds
		lp = lp*0.97 + lcg(&seed)*0.03
		lp2 = lp2*0.8 + lcg(&seed)*0.2
		swell := 0.55 + 0.3*math.Sin(2*math.Pi*ph) + 0.15*math.Sin(2*math.Pi*3*ph+1.1)
		tyre := lp2 * 0.12 * swell
		engine := math.Sin(2*math.Pi*55*t) * 0.06 * swell
		s := (lp*2.2 + tyre + engine) * 0.6
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genRiver: brighter babbling water under a slow surge.
func genRiver() []byte {
	n := frames(riverLoopSeconds)
	buf := makeBuf(n)
	seed := uint64(4242)
	lp, hp := 0.0, 0.0
	prev := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		ph := t / riverLoopSeconds
		x := lcg(&seed)
		lp = lp*0.9 + x*0.1
		hp = 0.95 * (hp + lp - prev)
		prev = lp
		surge := 0.7 + 0.2*math.Sin(2*math.Pi*2*ph) + 0.1*math.Sin(2*math.Pi*5*ph)
		bubble := math.Sin(2*math.Pi*(600+200*math.Sin(2*math.Pi*7*ph))*t) * 0.03 * math.Max(0, math.Sin(2*math.Pi*11*ph))
		s := (hp*1.6 + lp*0.5 + bubble) * surge * 0.7
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genBridgeMotor: geared hum whose whine rises as the leaf starts and falls
// as it settles. Long enough to cover a full lift.
func genBridgeMotor() []byte {
	const dur = 3.2
	n := frames(dur)
	buf := makeBuf(n)
	seed := uint64(90210)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.08, 0.1, 0.85, 0.2)
		load := math.Sin(math.Pi * p)
		hum := fm(t, 50, 2, 1.2) * 0.35
		whine := math.Sin(2*math.Pi*(320+180*load)*t) * 0.08 * load
		lp = lp*0.9 + lcg(&seed)*0.1
		clank := 0.0
		if p < 0.03 || (p > 0.94 && p < 0.97) {
			clank = lcg(&seed) * 0.4
		}
		s := (hum+whine+lp*0.4)*env + clank
		putStereoF32(buf, i, softSat(s*0.8))
	}
	return buf
}

// genBoatHorn: low two-note ship horn with a breathy edge.
func genBoatHorn() []byte {
	const dur = 1.6
	n := frames(dur)
	buf := makeBuf(n)
	seed := uint64(1912)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.06, 0.1, 0.9, 0.25)
		src := 0.0
		for h := 1; h <= 6; h++ {
			fh := float64(h)
			src += (math.Sin(2*math.Pi*110*fh*t) + math.Sin(2*math.Pi*138.6*fh*t)) / fh
		}
		breath := lcg(&seed) * 0.04
		s := (src*0.12 + breath) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHonk renders a car or bus honk. Variant 0 is one blast, 1 is a double
// tap, 2 is a long lean on the horn.
func genHonk(bus bool, variant int) []byte {
	base, dur := 420.0, 0.35
	if bus {
		base, dur = 250.0, 0.6
	}
	base += float64(variant) * 0.08 * base
	if variant == 2 {
		dur *= 1.8
	}
	n := frames(dur)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.03, 0.1, 0.8, 0.15)
		if variant == 1 && p > 0.42 && p < 0.55 {
			env = 0
		}
		// two detuned reeds, like a real dual-tone horn
		s := fm(t, base, 1, 0.9) + fm(t, base*1.26, 1, 0.7)
		putStereoF32(buf, i, softSat(s*0.35*env))
	}
	return buf
}
