package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxLinesCoversEveryEdge(t *testing.T) {
	min := mgl32.Vec3{-1, 0, -2}
	max := mgl32.Vec3{1, 3, 2}
	lines := BoxLines(min, max)
	require.Len(t, lines, 12*2*3)

	var lengths []float32
	for i := 0; i < len(lines); i += 6 {
		a := mgl32.Vec3{lines[i], lines[i+1], lines[i+2]}
		b := mgl32.Vec3{lines[i+3], lines[i+4], lines[i+5]}
		d := b.Sub(a)

		axes := 0
		for k := 0; k < 3; k++ {
			if d[k] != 0 {
				axes++
			}
		}
		assert.Equal(t, 1, axes, "edge %v-%v is not axis aligned", a, b)
		lengths = append(lengths, d.Len())
	}
	assert.ElementsMatch(t, []float32{2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4}, lengths)
}

func TestBoxLinesStaysInside(t *testing.T) {
	min := mgl32.Vec3{-6.9, 0, -1}
	max := mgl32.Vec3{-5, 5.5, 1.7}
	lines := BoxLines(min, max)
	for i := 0; i < len(lines); i += 3 {
		for k := 0; k < 3; k++ {
			v := lines[i+k]
			assert.True(t, v == min[k] || v == max[k], "coordinate %v on axis %d is not a corner", v, k)
		}
	}
}
