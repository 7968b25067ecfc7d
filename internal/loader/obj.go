package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Cinematic3D/internal/logger"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// ParseOBJ reads the geometry of a Wavefront OBJ stream. Only what the
// choreography needs is kept: vertex and face counts and the bounding box.
func ParseOBJ(r io.Reader) (Bounds, int, int, error) {
	var bounds Bounds
	vertices, faces := 0, 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "v":
			vertex, err := parseVertex(parts[1:])
			if err != nil {
				logger.Log.Error("Error parsing vertex", zap.Int("vertex", vertices+1), zap.Error(err))
				return Bounds{}, 0, 0, err
			}
			if vertices == 0 {
				bounds = Bounds{Min: vertex, Max: vertex}
			} else {
				bounds = bounds.Extend(vertex)
			}
			vertices++
		case "f":
			indices, err := parseFace(parts[1:])
			if err != nil {
				logger.Log.Error("Error parsing face", zap.Int("face", faces+1), zap.Error(err))
				return Bounds{}, 0, 0, err
			}
			for _, ref := range indices {
				// negative references count back from the latest vertex
				idx := ref - 1
				if ref < 0 {
					idx = vertices + ref
				}
				if ref == 0 || idx < 0 || idx >= vertices {
					return Bounds{}, 0, 0, fmt.Errorf("face %d references vertex %d of %d", faces+1, ref, vertices)
				}
			}
			faces++
		}
	}
	if err := scanner.Err(); err != nil {
		return Bounds{}, 0, 0, err
	}
	if vertices == 0 {
		return Bounds{}, 0, 0, errors.New("no vertices")
	}
	return bounds, vertices, faces, nil
}

func parseVertex(parts []string) (mgl64.Vec3, error) {
	if len(parts) < 3 {
		return mgl64.Vec3{}, fmt.Errorf("vertex needs 3 components, got %d", len(parts))
	}
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		val, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("invalid vertex value %v: %v", parts[i], err)
		}
		v[i] = val
	}
	return v, nil
}

// parseFace returns the vertex references as written, one based or negative;
// texture and normal indices are ignored.
func parseFace(parts []string) ([]int, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs 3 vertices, got %d", len(parts))
	}
	face := make([]int, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		idx, err := strconv.ParseInt(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %v: %v", vals[0], err)
		}
		face = append(face, int(idx))
	}
	return face, nil
}
