package gate

import (
	"fmt"

	"Cinematic3D/internal/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Barrier settles after all of its gates do. It resolves only when every
// gate resolved and fails as soon as one of them fails.
type Barrier struct {
	name  string
	gates []*Gate
	state State
	err   error
	ready []func()
}

func All(name string, gates ...*Gate) *Barrier {
	return &Barrier{name: name, gates: gates}
}

func (b *Barrier) Name() string { return b.name }
func (b *Barrier) State() State { return b.state }
func (b *Barrier) Err() error { return b.err }

func (b *Barrier) OnReady(fn func()) {
	if fn == nil {
		return
	}
	switch b.state {
	case Resolved:
		fn()
	case Pending:
		b.ready = append(b.ready, fn)
	}
}

func (b *Barrier) Poll() State {
	if b.state != Pending {
		return b.state
	}

	pending := 0
	var err error
	for _, g := range b.gates {
		switch g.Poll() {
		case Pending:
			pending++
		case Failed:
			err = multierr.Append(err, fmt.Errorf("%s: %w", g.Name(), g.Err()))
		}
	}

	if err != nil {
		b.state = Failed
		b.err = err
		b.ready = nil
		logger.Log.Error("Barrier failed", zap.String("barrier", b.name), zap.Error(err))
		return b.state
	}
	if pending > 0 {
		return Pending
	}

	b.state = Resolved
	logger.Log.Info("Barrier resolved", zap.String("barrier", b.name), zap.Int("gates", len(b.gates)))
	ready := b.ready
	b.ready = nil
	for _, fn := range ready {
		fn()
	}
	return b.state
}
