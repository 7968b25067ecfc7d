package gate

import (
	"errors"
	"fmt"

	"Cinematic3D/internal/loader"
	"Cinematic3D/internal/logger"

	"go.uber.org/zap"
)

type State int

const (
	Pending State = iota
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Waiter is anything the frame loop polls until it settles.
type Waiter interface {
	Name() string
	Poll() State
}

// Gate holds a sequence back until its asset has loaded. It settles once:
// a resolved gate runs its continuations on the polling goroutine, a failed
// gate logs the failure and never runs them.
type Gate struct {
	name   string
	future *loader.Future
	state  State
	asset  *loader.Asset
	err    error
	ready  []func(*loader.Asset)
}

func New(name string, future *loader.Future) *Gate {
	return &Gate{name: name, future: future}
}

func (g *Gate) Name() string { return g.name }
func (g *Gate) State() State { return g.state }
func (g *Gate) Asset() *loader.Asset { return g.asset }
func (g *Gate) Err() error { return g.err }

// OnReady queues fn for when the asset arrives. On a gate that already
// resolved fn runs right away.
func (g *Gate) OnReady(fn func(*loader.Asset)) {
	if fn == nil {
		return
	}
	switch g.state {
	case Resolved:
		fn(g.asset)
	case Pending:
		g.ready = append(g.ready, fn)
	}
}

// Poll checks the load without blocking and settles the gate when it is done.
func (g *Gate) Poll() State {
	if g.state != Pending {
		return g.state
	}
	asset, ok, err := g.future.Poll()
	if !ok {
		return Pending
	}
	g.settle(asset, err)
	return g.state
}

func (g *Gate) settle(asset *loader.Asset, err error) {
	if err == nil && asset == nil {
		err = errors.New("load finished without an asset")
	}
	if err != nil {
		g.state = Failed
		g.err = err
		g.ready = nil
		logger.Log.Error("Asset load failed, sequence will not start",
			zap.String("gate", g.name),
			zap.String("path", g.future.Path()),
			zap.Error(err))
		return
	}

	g.state = Resolved
	g.asset = asset
	logger.Log.Info("Gate resolved",
		zap.String("gate", g.name),
		zap.String("path", asset.Path))

	ready := g.ready
	g.ready = nil
	for _, fn := range ready {
		fn(asset)
	}
}
