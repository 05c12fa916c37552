package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"bascule/internal/geom"
	"bascule/internal/scene"
	"bascule/internal/texgen"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

type litUniforms struct {
	model, view, proj         int32
	uvMul, uvOffset           int32
	camPos                    int32
	sunDir, sunColor, ambient int32
	tint                      int32
	specStrength, specPower   int32
	useTexture, useBoxMap     int32
	boxScale, tex             int32
}

type waterUniforms struct {
	model, view, proj         int32
	uvOffset                  int32
	sunDir, sunColor, ambient int32
	night, tex                int32
}

// Renderer owns the GL programs, uploaded meshes and textures.
type Renderer struct {
	litProg   uint32
	waterProg uint32
	lit       litUniforms
	water     waterUniforms

	meshes   []gpuMesh
	textures map[scene.Texture]uint32
}

func NewRenderer() (*Renderer, error) {
	litProg, err := linkProgram(litVertSrc, litFragSrc)
	if err != nil {
		return nil, fmt.Errorf("lit program: %w", err)
	}
	waterProg, err := linkProgram(waterVertSrc, waterFragSrc)
	if err != nil {
		gl.DeleteProgram(litProg)
		return nil, fmt.Errorf("water program: %w", err)
	}

	r := &Renderer{
		litProg:   litProg,
		waterProg: waterProg,
		textures:  make(map[scene.Texture]uint32),
	}

	r.lit = litUniforms{
		model:        uniform(litProg, "uModel"),
		view:         uniform(litProg, "uView"),
		proj:         uniform(litProg, "uProj"),
		uvMul:        uniform(litProg, "uUVMul"),
		uvOffset:     uniform(litProg, "uUVOffset"),
		camPos:       uniform(litProg, "uCamPos"),
		sunDir:       uniform(litProg, "uSunDir"),
		sunColor:     uniform(litProg, "uSunColor"),
		ambient:      uniform(litProg, "uAmbient"),
		tint:         uniform(litProg, "uTint"),
		specStrength: uniform(litProg, "uSpecularStrength"),
		specPower:    uniform(litProg, "uSpecularPower"),
		useTexture:   uniform(litProg, "uUseTexture"),
		useBoxMap:    uniform(litProg, "uUseBoxMap"),
		boxScale:     uniform(litProg, "uBoxScale"),
		tex:          uniform(litProg, "uTex"),
	}
	gl.UseProgram(litProg)
	gl.Uniform1i(r.lit.tex, 0)
	gl.Uniform2f(r.lit.uvOffset, 0, 0)

	r.water = waterUniforms{
		model:    uniform(waterProg, "uModel"),
		view:     uniform(waterProg, "uView"),
		proj:     uniform(waterProg, "uProj"),
		uvOffset: uniform(waterProg, "uUVOffset"),
		sunDir:   uniform(waterProg, "uSunDir"),
		sunColor: uniform(waterProg, "uSunColor"),
		ambient:  uniform(waterProg, "uAmbient"),
		night:    uniform(waterProg, "uNight"),
		tex:      uniform(waterProg, "uTex"),
	}
	gl.UseProgram(waterProg)
	gl.Uniform1i(r.water.tex, 0)

	gl.UseProgram(0)
	return r, nil
}

// Upload creates one VAO per library mesh. MeshIDs index the result
// directly, so it must run once after the library is complete.
func (r *Renderer) Upload(lib *geom.Library) {
	r.meshes = make([]gpuMesh, lib.Len())
	var scratch []float32
	lib.Each(func(id geom.MeshID, _ string, m *geom.Mesh) {
		scratch = m.Interleaved(scratch)
		var g gpuMesh
		gl.GenVertexArrays(1, &g.vao)
		gl.GenBuffers(1, &g.vbo)
		gl.GenBuffers(1, &g.ebo)
		gl.BindVertexArray(g.vao)

		gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(scratch)*4, gl.Ptr(scratch), gl.STATIC_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

		stride := int32(geom.VertexFloats * 4)
		// aPos (vec3)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
		// aNrm (vec3)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
		// aUV (vec2)
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, glOffset(6*4))

		g.count = int32(len(m.Indices))
		r.meshes[id] = g
	})
	gl.BindVertexArray(0)
}

// UploadTextures synthesises and uploads every surface texture.
func (r *Renderer) UploadTextures(seed uint64) {
	for t := scene.TextureRoad; t <= scene.TextureWater; t++ {
		img := texgen.Generate(t, texgen.DefaultSize, seed)
		var tex uint32
		gl.GenTextures(1, &tex)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Size), int32(img.Size), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		gl.GenerateMipmap(gl.TEXTURE_2D)
		r.textures[t] = tex
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func mat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

func setMat4(loc int32, m mgl64.Mat4) {
	m32 := mat32(m)
	gl.UniformMatrix4fv(loc, 1, false, &m32[0])
}

func setVec3(loc int32, v mgl64.Vec3) {
	gl.Uniform3f(loc, float32(v[0]), float32(v[1]), float32(v[2]))
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Draw clears to the frame's sky and issues every instance: lit pass first,
// then water.
func (r *Renderer) Draw(f scene.Frame, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(float32(f.Sky[0]), float32(f.Sky[1]), float32(f.Sky[2]), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.UseProgram(r.litProg)
	setMat4(r.lit.view, f.View)
	setMat4(r.lit.proj, f.Proj)
	setVec3(r.lit.camPos, f.Eye)
	setVec3(r.lit.sunDir, f.Light.SunDir)
	setVec3(r.lit.sunColor, f.Light.SunColor)
	gl.Uniform1f(r.lit.ambient, float32(f.Light.Ambient))
	for i := range f.Instances {
		in := &f.Instances[i]
		if in.Pass != scene.PassLit {
			continue
		}
		setMat4(r.lit.model, in.Model)
		gl.Uniform2f(r.lit.uvMul, float32(in.UVMul[0]), float32(in.UVMul[1]))
		setVec3(r.lit.tint, in.Tint)
		gl.Uniform1f(r.lit.specStrength, float32(in.Material.SpecularStrength))
		gl.Uniform1f(r.lit.specPower, float32(in.Material.SpecularPower))
		tex, textured := r.textures[in.Texture]
		gl.Uniform1i(r.lit.useTexture, boolInt(textured))
		gl.Uniform1i(r.lit.useBoxMap, boolInt(in.BoxMap))
		setVec3(r.lit.boxScale, in.BoxScale)
		if textured {
			gl.BindTexture(gl.TEXTURE_2D, tex)
		}
		r.drawMesh(in.Mesh)
	}

	gl.UseProgram(r.waterProg)
	setMat4(r.water.view, f.View)
	setMat4(r.water.proj, f.Proj)
	setVec3(r.water.sunDir, f.Light.SunDir)
	setVec3(r.water.sunColor, f.Light.SunColor)
	gl.Uniform1f(r.water.ambient, float32(f.Light.Ambient))
	gl.Uniform1f(r.water.night, float32(f.Night))
	gl.Uniform2f(r.water.uvOffset, float32(f.WaterOffset[0]), float32(f.WaterOffset[1]))
	gl.BindTexture(gl.TEXTURE_2D, r.textures[scene.TextureWater])
	for i := range f.Instances {
		in := &f.Instances[i]
		if in.Pass != scene.PassWater {
			continue
		}
		setMat4(r.water.model, in.Model)
		r.drawMesh(in.Mesh)
	}

	gl.BindVertexArray(0)
}

func (r *Renderer) drawMesh(id geom.MeshID) {
	if int(id) >= len(r.meshes) {
		return
	}
	g := r.meshes[id]
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
}

func (r *Renderer) Destroy() {
	for _, g := range r.meshes {
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		gl.DeleteVertexArrays(1, &g.vao)
	}
	for _, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
	}
	for _, id := range []uint32{r.litProg, r.waterProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}
