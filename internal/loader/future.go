package loader

import (
	"sync"
)

// Future is the pending result of one load. It resolves exactly once.
type Future struct {
	path  string
	done  chan struct{}
	once  sync.Once
	asset *Asset
	err   error
}

func NewFuture(path string) *Future {
	return &Future{path: path, done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved(path string, asset *Asset, err error) *Future {
	f := NewFuture(path)
	f.Resolve(asset, err)
	return f
}

// Resolve completes the future. Later calls are ignored.
func (f *Future) Resolve(asset *Asset, err error) {
	f.once.Do(func() {
		f.asset = asset
		f.err = err
		close(f.done)
	})
}

func (f *Future) Path() string { return f.path }

// Done is closed once the load finished, successfully or not.
func (f *Future) Done() <-chan struct{} { return f.done }

// Result blocks until the load finished.
func (f *Future) Result() (*Asset, error) {
	<-f.done
	return f.asset, f.err
}

// Poll never blocks; ok is false while the load is still running.
func (f *Future) Poll() (asset *Asset, ok bool, err error) {
	select {
	case <-f.done:
		return f.asset, true, f.err
	default:
		return nil, false, nil
	}
}
