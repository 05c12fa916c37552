package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	pickMinWorldRadius = 0.35
	pickLengthFactor   = 0.55
	pickMinPixels      = 10.0
	pickFallbackPixels = 18.0
	pickNDCLimit       = 1.2
	pickMinW           = 1e-4
)

// project maps a world point to window pixels (origin top-left). ok is
// false behind the camera.
func project(vp mgl64.Mat4, p mgl64.Vec3, w, h int) (x, y, ndcX, ndcY float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip[3] <= pickMinW {
		return 0, 0, 0, 0, false
	}
	ndcX = clip[0] / clip[3]
	ndcY = clip[1] / clip[3]
	x = (ndcX*0.5 + 0.5) * float64(w)
	y = (1 - (ndcY*0.5 + 0.5)) * float64(h)
	return x, y, ndcX, ndcY, true
}

// PickVehicle returns the active vehicle nearest to the window point
// (px, py) within its on-screen pick radius, or nil.
func PickVehicle(vehicles []*Vehicle, cam *Camera, px, py float64, w, h int) *Vehicle {
	if w <= 0 || h <= 0 {
		return nil
	}
	vp := cam.Proj(float64(w) / float64(h)).Mul4(cam.View())

	var best *Vehicle
	bestD2 := math.Inf(1)
	for _, v := range vehicles {
		if !v.active {
			continue
		}
		sx, sy, nx, ny, ok := project(vp, v.Position, w, h)
		if !ok {
			continue
		}
		if nx < -pickNDCLimit || nx > pickNDCLimit || ny < -pickNDCLimit || ny > pickNDCLimit {
			continue
		}

		rw := math.Max(pickMinWorldRadius, pickLengthFactor*v.Length)
		rpx := pickFallbackPixels
		if rx, _, _, _, ok := project(vp, v.Position.Add(mgl64.Vec3{rw, 0, 0}), w, h); ok {
			rpx = math.Max(pickMinPixels, math.Abs(rx-sx))
		}

		dx, dy := px-sx, py-sy
		d2 := dx*dx + dy*dy
		if d2 <= rpx*rpx && d2 < bestD2 {
			bestD2 = d2
			best = v
		}
	}
	return best
}
