package planner

import (
	"errors"
	"sync/atomic"
)

// ErrNoCatalog is returned while a Holder has no engine in service
var ErrNoCatalog = errors.New("no catalog loaded")

// Holder keeps the engine currently in service. Readers always see a fully
// built engine; a catalog reload builds a new engine and swaps it in.
type Holder struct {
	current atomic.Pointer[Engine]
}

// NewHolder creates a holder serving e
func NewHolder(e *Engine) *Holder {
	h := &Holder{}
	h.current.Store(e)
	return h
}

// Load returns the engine in service
func (h *Holder) Load() *Engine {
	return h.current.Load()
}

// Store swaps in a new engine. A nil engine is ignored.
func (h *Holder) Store(e *Engine) {
	if e == nil {
		return
	}
	h.current.Store(e)
}

// Reload builds an engine with build and swaps it in. On error the previous
// engine stays in service.
func (h *Holder) Reload(build func() (*Engine, error)) error {
	e, err := build()
	if err != nil {
		return err
	}
	h.current.Store(e)
	return nil
}

// Stats reports the size of the catalog in service
func (h *Holder) Stats() (modules, bundles int, err error) {
	e := h.Load()
	if e == nil {
		return 0, 0, ErrNoCatalog
	}
	return len(e.catalog.AllModules()), len(e.bundles), nil
}
