package render

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShaderManager owns the shader program and its uniforms.
type ShaderManager struct {
	program    uint32 // program ID
	uTransform int32  // uniform location for transformation matrix
	uAlpha     int32  // uniform location for the global opacity
}

// Vertex shader. Applies the transformation matrix to the screen-space
// vertices and forwards the colour to the fragment shader.
const vertexShaderSource = `
#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uTransform;

out vec4 vColor;

void main() {
    gl_Position = uTransform * vec4(aPos, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

// Fragment shader. Scales the forwarded colour's alpha by uAlpha.
const fragmentShaderSource = `
#version 330 core
in vec4 vColor;
out vec4 FragColor;

uniform float uAlpha;

void main() {
    FragColor = vec4(vColor.rgb, vColor.a * uAlpha);
}
` + "\x00"

// NewShaderManager compiles and links the program and binds it.
func NewShaderManager() (*ShaderManager, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("shader linking failed: %s", logText)
	}

	sm := &ShaderManager{
		program:    program,
		uTransform: gl.GetUniformLocation(program, gl.Str("uTransform\x00")),
		uAlpha:     gl.GetUniformLocation(program, gl.Str("uAlpha\x00")),
	}
	gl.UseProgram(program)
	sm.SetAlpha(1)
	return sm, nil
}

// SetTransform sets the uniform transformation matrix.
func (sm *ShaderManager) SetTransform(matrix [16]float32) {
	gl.UniformMatrix4fv(sm.uTransform, 1, false, &matrix[0])
}

// SetAlpha sets the opacity applied to everything drawn next.
func (sm *ShaderManager) SetAlpha(alpha float32) {
	gl.Uniform1f(sm.uAlpha, alpha)
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compilation failed: %s", logText)
	}
	return shader, nil
}
