package renderer

import (
	"fmt"
	"strings"

	"Cinematic3D/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	program   uint32
	locations map[string]int32
}

// NewShader compiles and links a program. It needs a current GL context.
func NewShader(vertexSource, fragmentSource string) (*Shader, error) {
	vertex, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	fragment, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return nil, err
	}
	program, err := linkProgram(vertex, fragment)
	if err != nil {
		return nil, err
	}
	return &Shader{program: program, locations: make(map[string]int32)}, nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

// location caches uniform lookups; -1 means the program has no such uniform.
func (shader *Shader) location(name string) int32 {
	if loc, ok := shader.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(shader.program, gl.Str(name+"\x00"))
	shader.locations[name] = loc
	return loc
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	if loc := shader.location(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	if loc := shader.location(name); loc != -1 {
		gl.Uniform3f(loc, value.X(), value.Y(), value.Z())
	}
}

func (shader *Shader) Delete() {
	gl.DeleteProgram(shader.program)
	shader.locations = nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shader type", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile shader %d: %s", shaderType, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

var boxVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition;

uniform mat4 viewProjection;

void main() {
    gl_Position = viewProjection * vec4(inPosition, 1.0);
}
`

var boxFragmentShaderSource = `#version 330 core

uniform vec3 color;

out vec4 FragColor;

void main() {
    FragColor = vec4(color, 1.0);
}
`
