package audio

import (
	"errors"
	"fmt"
	"sync"

	"Cinematic3D/internal/logger"

	"go.uber.org/zap"
)

var ErrUnknownSound = errors.New("unknown sound")

// Player starts a sound and returns without waiting for it.
type Player interface {
	Play(name string) error
}

// LogPlayer stands in for a sound device: it checks the cue against the
// configured sound files and logs it.
type LogPlayer struct {
	mu     sync.Mutex
	sounds map[string]string
	played []string
}

func NewLogPlayer(sounds map[string]string) *LogPlayer {
	return &LogPlayer{sounds: sounds}
}

func (p *LogPlayer) Play(name string) error {
	file, ok := p.sounds[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownSound, name)
	}
	p.mu.Lock()
	p.played = append(p.played, name)
	p.mu.Unlock()
	logger.Log.Info("Playing sound", zap.String("sound", name), zap.String("file", file))
	return nil
}

// Played lists the sounds started so far, oldest first.
func (p *LogPlayer) Played() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.played))
	copy(out, p.played)
	return out
}

// Trigger adapts a sound cue to a timeline callback.
func Trigger(p Player, name string) func() error {
	return func() error {
		if p == nil {
			return fmt.Errorf("no audio player for %q", name)
		}
		return p.Play(name)
	}
}
