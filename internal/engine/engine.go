package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Cinematic3D/internal/audio"
	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/config"
	"Cinematic3D/internal/gate"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/renderer"

	"go.uber.org/zap"
)

var ErrNoScene = errors.New("no such scene")

const defaultFov = 75

func defaultPose() pose.Pose {
	return pose.Pose{Fov: defaultFov}
}

// Engine drives one staged scene frame by frame. It is not safe for
// concurrent use; everything runs on the frame thread.
type Engine struct {
	Width   int32
	Height  int32
	Camera  *renderer.Camera
	Players *behaviour.PlayerManager
	Audio   audio.Player

	cfg     *config.Config
	source  loader.Source
	stage   *behaviour.Stage
	loaded  map[string]*loader.Asset
	frame   int
	elapsed float64
	onFrame func(dt float64)
}

// New builds an engine whose camera starts at the origin. Scripts place it.
func New(cfg *config.Config, source loader.Source, sounds audio.Player) *Engine {
	width, height := int32(cfg.Window.Width), int32(cfg.Window.Height)
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}
	return &Engine{
		Width:   width,
		Height:  height,
		Camera:  renderer.NewCamera(width, height, defaultPose()),
		Players: behaviour.NewPlayerManager(),
		Audio:   sounds,
		cfg:     cfg,
		source:  source,
		loaded:  make(map[string]*loader.Asset),
	}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *config.Config { return e.cfg }

func (e *Engine) Stage() *behaviour.Stage { return e.stage }

func (e *Engine) Frame() int { return e.frame }

// Elapsed is the sum of every dt handed to Tick.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Open starts loading the asset configured under name. Unknown names give a
// gate that has already failed.
func (e *Engine) Open(name string) *gate.Gate {
	path, err := e.cfg.AssetPath(name)
	if err != nil {
		return gate.New(name, loader.Resolved(name, nil, err))
	}
	g := gate.New(name, e.source.Load(path))
	g.OnReady(func(a *loader.Asset) { e.loaded[name] = a })
	return g
}

// Loaded returns the assets that arrived so far, by configured name.
func (e *Engine) Loaded() map[string]*loader.Asset {
	return e.loaded
}

// SetOnFrame registers fn to run at the end of every Tick.
func (e *Engine) SetOnFrame(fn func(dt float64)) {
	e.onFrame = fn
}

// Load stages the script registered under name.
func (e *Engine) Load(name string) error {
	script := behaviour.CreateScript(name)
	if script == nil {
		return fmt.Errorf("%w %q, have %v", ErrNoScene, name, behaviour.GetAvailableScripts())
	}
	return e.Start(script)
}

// Start replaces whatever is playing with script.
func (e *Engine) Start(script behaviour.Script) error {
	e.Players.Clear()
	e.Camera.Mount = nil
	e.stage = behaviour.NewStage(e.Camera, e.Players, e.Audio, e)
	if err := script.Start(e.stage); err != nil {
		return fmt.Errorf("start scene %s: %w", script.Name(), err)
	}
	e.Camera.Sync()
	logger.Log.Info("Scene staged",
		zap.String("scene", script.Name()),
		zap.Int("waiters", len(e.stage.Waiters())),
		zap.Int("players", e.Players.Len()))
	return nil
}

// Tick runs one frame: gates first, so a sequence a gate releases plays from
// this frame on, then every player in order, then the camera matrices.
func (e *Engine) Tick(dt float64) {
	if e.stage != nil {
		for _, w := range e.stage.Waiters() {
			w.Poll()
		}
	}
	e.Players.Advance(dt)
	e.Camera.Sync()
	e.frame++
	e.elapsed += dt

	if ce := logger.Log.Check(zap.DebugLevel, "Frame"); ce != nil {
		ce.Write(
			zap.Int("frame", e.frame),
			zap.Float64("t", e.elapsed),
			zap.Int("players", e.Players.Len()),
			zap.Strings("visible", e.visible()))
	}
	if e.onFrame != nil {
		e.onFrame(dt)
	}
}

func (e *Engine) visible() []string {
	var names []string
	for name, a := range e.loaded {
		if e.Camera.Sees(a.Bounds.Center(), a.Bounds.Size().Len()/2) {
			names = append(names, name)
		}
	}
	return names
}

// Resize follows the window size.
func (e *Engine) Resize(width, height int32) {
	if width <= 0 || height <= 0 || (width == e.Width && height == e.Height) {
		return
	}
	e.Width, e.Height = width, height
	e.Camera.SetAspectRatio(width, height)
}

// Run ticks at fps with a fixed step until ctx is done or, when duration is
// positive, until that much scene time has been played.
func (e *Engine) Run(ctx context.Context, fps int, duration float64) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	step := 1 / float64(fps)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	logger.Log.Info("Running headless", zap.Int("fps", fps), zap.Float64("duration", duration))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Tick(step)
			if duration > 0 && e.elapsed >= duration {
				logger.Log.Info("Run finished", zap.Int("frames", e.frame), zap.Float64("t", e.elapsed))
				return nil
			}
		}
	}
}
