package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/logger"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func angel() *loader.Asset {
	return &loader.Asset{Path: "models/weeping_angel.glb", Bounds: loader.Bounds{Max: mgl64.Vec3{1, 3, 0.7}}}
}

func TestGateFiresOnceAfterLoad(t *testing.T) {
	f := loader.NewFuture("models/weeping_angel.glb")
	g := New("angel", f)

	var got []float64
	g.OnReady(func(a *loader.Asset) { got = append(got, a.Bounds.Max.Z()) })

	assert.Equal(t, Pending, g.Poll())
	assert.Empty(t, got)

	f.Resolve(angel(), nil)
	assert.Equal(t, Resolved, g.Poll())
	assert.Equal(t, Resolved, g.Poll())
	assert.Equal(t, []float64{0.7}, got)

	// Late subscribers run immediately.
	g.OnReady(func(a *loader.Asset) { got = append(got, 0) })
	assert.Len(t, got, 2)
}

func TestFailedGateNeverStartsSequence(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger.Use(zap.New(core))
	defer logger.Use(nil)

	f := loader.NewFuture("models/horror_corridor_1.glb")
	g := New("corridor", f)

	sequenceStarted := false
	g.OnReady(func(*loader.Asset) { sequenceStarted = true })

	f.Resolve(nil, errors.New("404"))
	for i := 0; i < 100; i++ {
		g.Poll()
	}
	g.OnReady(func(*loader.Asset) { sequenceStarted = true })

	assert.Equal(t, Failed, g.State())
	assert.False(t, sequenceStarted)
	assert.EqualError(t, g.Err(), "404")
	assert.Nil(t, g.Asset())

	require.Equal(t, 1, logs.Len(), "failure is reported exactly once")
	entry := logs.All()[0]
	assert.Equal(t, "corridor", entry.ContextMap()["gate"])
}

// waitFor blocks until the gate's load finishes or ctx is done, then polls.
func waitFor(ctx context.Context, g *Gate) (State, error) {
	select {
	case <-g.future.Done():
		return g.Poll(), nil
	case <-ctx.Done():
		return g.state, ctx.Err()
	}
}

func TestGateSettlesWhenLoadFinishes(t *testing.T) {
	f := loader.NewFuture("a.obj")
	g := New("a", f)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	state, err := waitFor(ctx, g)
	assert.Equal(t, Pending, state)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	go f.Resolve(angel(), nil)
	state, err = waitFor(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, Resolved, state)
}

func TestBarrierWaitsForEveryGate(t *testing.T) {
	room := loader.NewFuture("room.glb")
	fish := loader.NewFuture("fish.glb")
	b := All("aquarium", New("room", room), New("fish", fish))

	started := 0
	b.OnReady(func() { started++ })

	room.Resolve(&loader.Asset{Path: "room.glb"}, nil)
	assert.Equal(t, Pending, b.Poll())
	assert.Equal(t, 0, started)

	fish.Resolve(&loader.Asset{Path: "fish.glb"}, nil)
	assert.Equal(t, Resolved, b.Poll())
	b.Poll()
	assert.Equal(t, 1, started)
}

func TestBarrierFailsWhenAnyGateFails(t *testing.T) {
	room := loader.NewFuture("room.glb")
	fish := loader.NewFuture("fish.glb")
	roomGate := New("room", room)
	b := All("aquarium", roomGate, New("fish", fish))

	started := false
	b.OnReady(func() { started = true })
	roomGate.OnReady(func(*loader.Asset) {})

	fish.Resolve(nil, errors.New("corrupt"))
	assert.Equal(t, Failed, b.Poll())

	room.Resolve(&loader.Asset{Path: "room.glb"}, nil)
	assert.Equal(t, Failed, b.Poll())
	assert.False(t, started)
	assert.Contains(t, b.Err().Error(), "fish")
}

func TestEmptyBarrierResolves(t *testing.T) {
	b := All("nothing")
	assert.Equal(t, Resolved, b.Poll())
}
