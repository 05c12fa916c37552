package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Lit vertex shader: world-space lighting inputs plus object-space
// position/normal for box mapping.
const litVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNrm;
layout(location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;
uniform vec2 uUVMul;
uniform vec2 uUVOffset;

out vec3 vPos;
out vec3 vNrm;
out vec2 vUV;
out vec3 vObjPos;
out vec3 vObjNrm;

void main() {
    vec4 wpos = uModel * vec4(aPos, 1.0);
    vPos = wpos.xyz;
    vNrm = mat3(uModel) * aNrm;
    vUV = aUV * uUVMul + uUVOffset;
    vObjPos = aPos;
    vObjNrm = aNrm;
    gl_Position = uProj * uView * wpos;
}
` + "\x00"

// Lit fragment shader: ambient + Lambert + Blinn-Phong. Box mapping picks
// the projection plane from the dominant object-space normal axis.
const litFragSrc = `#version 410 core

in vec3 vPos;
in vec3 vNrm;
in vec2 vUV;
in vec3 vObjPos;
in vec3 vObjNrm;

uniform sampler2D uTex;
uniform vec3 uCamPos;
uniform vec3 uSunDir;
uniform vec3 uSunColor;
uniform float uAmbient;
uniform vec3 uTint;
uniform float uSpecularStrength;
uniform float uSpecularPower;
uniform int uUseTexture;
uniform int uUseBoxMap;
uniform vec3 uBoxScale;

out vec4 FragColor;

void main() {
    vec3 texColor = vec3(1.0);
    if (uUseTexture != 0) {
        vec2 uv = vUV;
        if (uUseBoxMap != 0) {
            vec3 an = abs(normalize(vObjNrm));
            if (an.y >= an.x && an.y >= an.z) {
                uv = vObjPos.xz * vec2(uBoxScale.x, uBoxScale.z);
            } else if (an.x >= an.y && an.x >= an.z) {
                uv = vObjPos.zy * vec2(uBoxScale.z, uBoxScale.y);
            } else {
                uv = vObjPos.xy * vec2(uBoxScale.x, uBoxScale.y);
            }
        }
        texColor = texture(uTex, uv).rgb;
    }
    vec3 albedo = texColor * uTint;

    vec3 N = normalize(vNrm);
    vec3 L = normalize(-uSunDir);
    float ndl = max(dot(N, L), 0.0);

    vec3 diff = albedo * uSunColor * ndl;
    vec3 amb = albedo * uAmbient;

    vec3 V = normalize(uCamPos - vPos);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), max(uSpecularPower, 1.0)) * uSpecularStrength;

    FragColor = vec4(amb + diff + spec * uSunColor, 1.0);
}
` + "\x00"

const waterVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNrm;
layout(location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;
uniform vec2 uUVOffset;

out vec2 vUV;
out vec3 vNrm;

void main() {
    vUV = aUV + uUVOffset;
    vNrm = mat3(uModel) * aNrm;
    gl_Position = uProj * uView * (uModel * vec4(aPos, 1.0));
}
` + "\x00"

// Water fragment shader: texture pulled toward a deep tint, darkened at night.
const waterFragSrc = `#version 410 core

in vec2 vUV;
in vec3 vNrm;

uniform sampler2D uTex;
uniform vec3 uSunDir;
uniform vec3 uSunColor;
uniform float uAmbient;
uniform float uNight;

out vec4 FragColor;

void main() {
    vec3 tex = texture(uTex, vUV).rgb;
    vec3 N = normalize(vNrm);
    vec3 L = normalize(-uSunDir);
    float ndl = max(dot(N, L), 0.0);

    vec3 albedo = mix(tex, vec3(0.05, 0.08, 0.12), 0.35);
    vec3 col = albedo * (uAmbient + ndl) * uSunColor;
    col *= mix(1.0, 0.35, uNight);

    FragColor = vec4(col, 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}
