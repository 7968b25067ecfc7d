package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogPlayerPlaysKnownSounds(t *testing.T) {
	p := NewLogPlayer(map[string]string{"splash": "sounds/splash.mp3"})

	if err := Trigger(p, "splash")(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	assert.ErrorIs(t, Trigger(p, "scream")(), ErrUnknownSound)
	assert.Equal(t, []string{"splash"}, p.Played())
}

func TestTriggerWithoutPlayer(t *testing.T) {
	assert.Error(t, Trigger(nil, "splash")())
}
