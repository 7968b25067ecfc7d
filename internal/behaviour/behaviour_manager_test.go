package behaviour

import (
	"testing"

	"Cinematic3D/internal/pose"
	"Cinematic3D/internal/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockPlayer struct {
	name    string
	log     *[]string
	frames  int
	limit   int
	onFrame func()
}

func (p *MockPlayer) Advance(dt float64) {
	p.frames++
	*p.log = append(*p.log, p.name)
	if p.onFrame != nil {
		p.onFrame()
	}
}

func (p *MockPlayer) Done() bool {
	return p.limit > 0 && p.frames >= p.limit
}

func TestPlayerManagerAdvancesInOrder(t *testing.T) {
	var log []string
	m := NewPlayerManager()
	m.Add(&MockPlayer{name: "swim", log: &log})
	m.Add(&MockPlayer{name: "wiggle", log: &log})

	m.Advance(0.016)
	m.Advance(0.016)

	assert.Equal(t, []string{"swim", "wiggle", "swim", "wiggle"}, log)
}

func TestPlayerManagerDropsFinishedPlayers(t *testing.T) {
	var log []string
	m := NewPlayerManager()
	m.Add(&MockPlayer{name: "intro", log: &log, limit: 1})
	m.Add(&MockPlayer{name: "loop", log: &log})

	m.Advance(1)
	if m.Len() != 1 {
		t.Errorf("Expected 1 player left, got %d", m.Len())
	}
	m.Advance(1)
	assert.Equal(t, []string{"intro", "loop", "loop"}, log)
}

func TestPlayersAddedDuringFrameStartNextFrame(t *testing.T) {
	var log []string
	m := NewPlayerManager()
	loop := &MockPlayer{name: "loop", log: &log}
	intro := &MockPlayer{name: "intro", log: &log, limit: 1}
	intro.onFrame = func() { m.Add(loop) }
	m.Add(intro)

	m.Advance(1)
	assert.Equal(t, []string{"intro"}, log)

	m.Advance(1)
	assert.Equal(t, []string{"intro", "loop"}, log)
}

func TestPlayerManagerRemoveKeepsOrder(t *testing.T) {
	var log []string
	m := NewPlayerManager()
	a := &MockPlayer{name: "a", log: &log}
	b := &MockPlayer{name: "b", log: &log}
	c := &MockPlayer{name: "c", log: &log}
	m.Add(a)
	m.Add(b)
	m.Add(c)

	m.Remove(a)
	m.Advance(1)
	assert.Equal(t, []string{"b", "c"}, log)
}

func TestPlayerRemovedDuringFrameIsSkipped(t *testing.T) {
	var log []string
	m := NewPlayerManager()
	b := &MockPlayer{name: "b", log: &log}
	a := &MockPlayer{name: "a", log: &log, onFrame: func() { m.Remove(b) }}
	m.Add(a)
	m.Add(b)

	m.Advance(1)
	assert.Equal(t, []string{"a"}, log)
	assert.Equal(t, 1, m.Len())
}

func TestPlayerManagerClear(t *testing.T) {
	var log []string
	m := NewPlayerManager()
	m.Add(&MockPlayer{name: "a", log: &log})
	m.Clear()
	m.Advance(1)

	if len(log) != 0 {
		t.Errorf("Expected no frames after Clear, got %v", log)
	}
}

func TestLaterTimelineWinsAcrossPlayers(t *testing.T) {
	cam := &pose.Pose{}
	first, err := timeline.NewBuilder(cam, timeline.Options{Name: "first"}).
		To(timeline.Spec{Targets: []timeline.Target{timeline.Abs(pose.RotationY, 1)}, Duration: 1}).
		Build()
	require.NoError(t, err)
	second, err := timeline.NewBuilder(cam, timeline.Options{Name: "second"}).
		To(timeline.Spec{Targets: []timeline.Target{timeline.Abs(pose.RotationY, -1)}, Duration: 1}).
		Build()
	require.NoError(t, err)

	m := NewPlayerManager()
	m.Add(first)
	m.Add(second)
	m.Advance(2)

	assert.Equal(t, -1.0, cam.Rotation.Y())
	assert.Equal(t, 0, m.Len())
}
