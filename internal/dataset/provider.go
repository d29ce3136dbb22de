package dataset

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// State is where a Provider is in its one-time load.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// ErrNotLoaded is returned by Get while the first load is still running.
var ErrNotLoaded = errors.New("dataset is still loading")

// LoadObserver is told about every completed load attempt.
type LoadObserver interface {
	ObserveLoad(rows int, elapsed time.Duration, err error)
}

// Provider owns the process's single copy of the dataset. The first Load
// fetches it; concurrent callers share that fetch. A failed load stays
// failed until Reload is called.
type Provider struct {
	src      Source
	observer LoadObserver
	group    singleflight.Group

	mu    sync.RWMutex
	state State
	ds    *Dataset
	err   error
}

func NewProvider(src Source, observer LoadObserver) *Provider {
	return &Provider{src: src, observer: observer, state: StateLoading}
}

// NewStaticProvider wraps an already-built dataset.
func NewStaticProvider(ds *Dataset) *Provider {
	return &Provider{state: StateReady, ds: ds}
}

// Get returns the dataset without blocking. While loading it returns
// ErrNotLoaded; after a failure it returns the *LoadError.
func (p *Provider) Get() (*Dataset, State, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	switch p.state {
	case StateReady:
		return p.ds, p.state, nil
	case StateFailed:
		return nil, p.state, p.err
	default:
		return nil, p.state, ErrNotLoaded
	}
}

// Load blocks until the dataset is available or the load fails.
func (p *Provider) Load(ctx context.Context) (*Dataset, error) {
	p.mu.RLock()
	state, ds, err := p.state, p.ds, p.err
	p.mu.RUnlock()

	switch state {
	case StateReady:
		return ds, nil
	case StateFailed:
		return nil, err
	}
	return p.fetch(ctx)
}

// Reload fetches the dataset again. The current dataset keeps being served
// until the new one is ready; a failed reload leaves a ready provider ready.
func (p *Provider) Reload(ctx context.Context) (*Dataset, error) {
	return p.fetch(ctx)
}

func (p *Provider) fetch(ctx context.Context) (*Dataset, error) {
	if p.src == nil {
		return nil, &LoadError{Source: "static", Err: errors.New("provider has no source")}
	}

	v, err, _ := p.group.Do("load", func() (interface{}, error) {
		start := time.Now()
		ds, err := Load(ctx, p.src)
		elapsed := time.Since(start)

		rows := 0
		if ds != nil {
			rows = ds.Len()
		}
		if p.observer != nil {
			p.observer.ObserveLoad(rows, elapsed, err)
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			log.Printf("Dataset load failed after %s: %v", elapsed, err)
			if p.state != StateReady {
				p.state = StateFailed
				p.err = err
			}
			return nil, err
		}

		log.Printf("Loaded %d grade rows from %s in %s", rows, p.src, elapsed)
		p.state = StateReady
		p.ds = ds
		p.err = nil
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}
