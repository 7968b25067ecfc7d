package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"Cinematic3D/internal/behaviour"
	"Cinematic3D/internal/config"
	"Cinematic3D/internal/gate"
	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/logger"
	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type dollyScript struct {
	fail error
	tl   *timeline.Timeline
}

func (s *dollyScript) Name() string { return "dolly" }

func (s *dollyScript) Start(stage *behaviour.Stage) error {
	if s.fail != nil {
		return s.fail
	}
	stage.Camera.SetPose(pose.Pose{Position: mgl64.Vec3{0, 2, 10}, Fov: 60})
	room := stage.Open("room", nil)
	stage.After("dolly", func() {
		tl, err := timeline.NewBuilder(stage.Camera, timeline.Options{Name: "dolly"}).
			To(timeline.Spec{Targets: []timeline.Target{timeline.Abs(pose.PositionZ, 4)}, Duration: 1}).
			Build()
		if err != nil {
			return
		}
		s.tl = tl
		stage.Play(tl)
	}, room)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Assets = map[string]config.AssetConfig{"room": {Path: "models/room.obj"}}
	return cfg
}

func testSource() *loader.Static {
	return &loader.Static{Assets: map[string]loader.Asset{
		"models/room.obj": {Bounds: loader.Bounds{Min: mgl64.Vec3{-5, 0, -5}, Max: mgl64.Vec3{5, 3, 5}}},
	}}
}

func TestTickPollsGatesThenAdvances(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	script := &dollyScript{}
	require.NoError(t, e.Start(script))
	assert.Nil(t, script.tl)

	e.Tick(0.5)
	require.NotNil(t, script.tl)
	assert.Equal(t, 0.5, script.tl.Position(), "the released sequence plays in the frame that released it")

	e.Tick(0.5)
	assert.Equal(t, 4.0, e.Camera.Pose.Position.Z())
	assert.InDelta(t, 4.0, float64(e.Camera.Position.Z()), 1e-6)
	assert.Contains(t, e.Loaded(), "room")
	assert.Equal(t, 2, e.Frame())
	assert.Equal(t, 1.0, e.Elapsed())
}

func TestOpenUnknownAssetFails(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	g := e.Open("ghost")
	assert.Equal(t, gate.Failed, g.Poll())
	assert.ErrorIs(t, g.Err(), config.ErrUnknownAsset)
}

func TestLoadUnknownScene(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	err := e.Load("no-such-scene")
	assert.ErrorIs(t, err, ErrNoScene)
}

func TestStartReportsScriptErrors(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	boom := errors.New("boom")
	err := e.Start(&dollyScript{fail: boom})
	assert.ErrorIs(t, err, boom)
}

func TestRestartClearsPlayers(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	require.NoError(t, e.Start(&dollyScript{}))
	e.Tick(0.1)
	assert.Equal(t, 1, e.Players.Len())

	require.NoError(t, e.Start(&dollyScript{}))
	assert.Equal(t, 0, e.Players.Len())
}

func TestResizeUpdatesAspectRatio(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	e.Resize(800, 400)
	assert.Equal(t, float32(2), e.Camera.AspectRatio)

	e.Resize(0, 400)
	assert.Equal(t, int32(800), e.Width)
}

func TestRunStopsAfterDuration(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	require.NoError(t, e.Start(&dollyScript{}))

	frames := 0
	e.SetOnFrame(func(dt float64) {
		frames++
		assert.Equal(t, 1.0/64, dt)
	})
	require.NoError(t, e.Run(context.Background(), 64, 0.0625))
	assert.Equal(t, 4, frames)
}

func TestRunStopsOnCancel(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := e.Run(ctx, 120, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, e.Frame(), 0)
}

func TestRunRejectsBadFPS(t *testing.T) {
	e := New(testConfig(), testSource(), nil)
	assert.Error(t, e.Run(context.Background(), 0, 1))
}

func TestFrameDebugLogListsVisibleAssets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger.Use(zap.New(core))
	defer logger.Use(zap.NewNop())

	e := New(testConfig(), testSource(), nil)
	require.NoError(t, e.Start(&dollyScript{}))
	e.Tick(0.1)

	frames := logs.FilterMessage("Frame").All()
	require.Len(t, frames, 1)
	assert.Equal(t, []interface{}{"room"}, frames[0].ContextMap()["visible"])
}
