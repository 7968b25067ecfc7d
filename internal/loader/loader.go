package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Cinematic3D/internal/logger"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported asset format")

// Bounds is an axis aligned bounding box.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (b Bounds) Extend(p mgl64.Vec3) Bounds {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

func (b Bounds) Size() mgl64.Vec3 { return b.Max.Sub(b.Min) }
func (b Bounds) Center() mgl64.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Asset is what a scene learns about a loaded model.
type Asset struct {
	Path     string
	Bounds   Bounds
	Vertices int
	Faces    int
}

// Source starts loads. Each call resolves its future at most once and is
// never retried.
type Source interface {
	Load(path string) *Future
}

// Loader reads assets on a worker pool.
type Loader struct {
	pool pond.Pool
	// opaque holds the bounds of binary scene formats that are not parsed.
	opaque map[string]Bounds
}

func NewLoader(workers int, opaque map[string]Bounds) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		pool:   pond.NewPool(workers),
		opaque: opaque,
	}
}

func (l *Loader) Load(path string) *Future {
	f := NewFuture(path)
	l.pool.Submit(func() {
		asset, err := l.read(path)
		if err != nil {
			logger.Log.Warn("Asset load failed", zap.String("path", path), zap.Error(err))
		} else {
			logger.Log.Info("Asset loaded",
				zap.String("path", path),
				zap.Int("vertices", asset.Vertices),
				zap.Float64("maxZ", asset.Bounds.Max.Z()))
		}
		f.Resolve(asset, err)
	})
	return f
}

// Close waits for running loads and stops the workers.
func (l *Loader) Close() {
	l.pool.StopAndWait()
}

func (l *Loader) read(path string) (*Asset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		bounds, vertices, faces, err := ParseOBJ(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &Asset{Path: path, Bounds: bounds, Vertices: vertices, Faces: faces}, nil
	case ".glb", ".gltf":
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		bounds, ok := l.opaque[path]
		if !ok {
			logger.Log.Warn("No bounds configured for binary scene, using empty bounds", zap.String("path", path))
		}
		return &Asset{Path: path, Bounds: bounds}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}
