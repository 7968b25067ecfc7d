package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis aligned outline to draw, usually a loaded asset's bounds.
type Box struct {
	Min, Max mgl32.Vec3
	Color    mgl32.Vec3
}

// corner index bits: 1 = max x, 2 = max y, 4 = max z
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along x
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along z
}

// BoxLines returns the 12 edges of the box as 24 line vertices, xyz each.
func BoxLines(min, max mgl32.Vec3) []float32 {
	var corners [8]mgl32.Vec3
	for i := range corners {
		c := min
		if i&1 != 0 {
			c[0] = max[0]
		}
		if i&2 != 0 {
			c[1] = max[1]
		}
		if i&4 != 0 {
			c[2] = max[2]
		}
		corners[i] = c
	}
	out := make([]float32, 0, len(boxEdges)*2*3)
	for _, e := range boxEdges {
		a, b := corners[e[0]], corners[e[1]]
		out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
	}
	return out
}

// BoxRenderer draws wireframe boxes as seen by a Camera. It needs a current
// GL context for its whole life.
type BoxRenderer struct {
	shader *Shader
	vao    uint32
	vbo    uint32
}

func NewBoxRenderer() (*BoxRenderer, error) {
	shader, err := NewShader(boxVertexShaderSource, boxFragmentShaderSource)
	if err != nil {
		return nil, err
	}
	r := &BoxRenderer{shader: shader}
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return r, nil
}

func (r *BoxRenderer) Draw(camera *Camera, boxes []Box) {
	if len(boxes) == 0 {
		return
	}
	r.shader.Use()
	r.shader.SetMat4("viewProjection", camera.GetViewProjection())
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	for _, box := range boxes {
		lines := BoxLines(box.Min, box.Max)
		gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, gl.Ptr(lines), gl.STREAM_DRAW)
		r.shader.SetVec3("color", box.Color)
		gl.DrawArrays(gl.LINES, 0, int32(len(lines)/3))
	}
	gl.BindVertexArray(0)
}

func (r *BoxRenderer) Delete() {
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	r.shader.Delete()
}
