package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"bascule/internal/geom"
)

// Lighting is the directional sun plus ambient term.
type Lighting struct {
	SunDir   mgl64.Vec3
	SunColor mgl64.Vec3
	Ambient  float64
}

var (
	DayLight = Lighting{
		SunDir:   mgl64.Vec3{-0.4, -1, -0.2}.Normalize(),
		SunColor: mgl64.Vec3{1, 0.98, 0.92},
		Ambient:  0.28,
	}
	NightLight = Lighting{
		SunDir:   mgl64.Vec3{0.2, -1, 0.15}.Normalize(),
		SunColor: mgl64.Vec3{0.45, 0.55, 0.8},
		Ambient:  0.10,
	}

	DaySky   = mgl64.Vec3{0.55, 0.75, 0.95}
	NightSky = mgl64.Vec3{0.05, 0.07, 0.12}
)

// BlendLighting interpolates the day and night presets by blend in [0,1].
func BlendLighting(blend float64) Lighting {
	b := geom.ClampF(blend, 0, 1)
	return Lighting{
		SunDir:   geom.NormalizeSafe(geom.LerpVec3(DayLight.SunDir, NightLight.SunDir, b)),
		SunColor: geom.LerpVec3(DayLight.SunColor, NightLight.SunColor, b),
		Ambient:  geom.Lerp(DayLight.Ambient, NightLight.Ambient, b),
	}
}

// SkyColor is the clear colour for the given blend.
func SkyColor(blend float64) mgl64.Vec3 {
	return geom.LerpVec3(DaySky, NightSky, geom.ClampF(blend, 0, 1))
}

// scrollWater advances the water UV offset and keeps it small.
func scrollWater(off mgl64.Vec2, dt float64) mgl64.Vec2 {
	off[0] += dt * 0.002
	off[1] += dt * 0.03
	for i := range off {
		if off[i] > 1000 {
			off[i] -= 1000
		}
	}
	return off
}
