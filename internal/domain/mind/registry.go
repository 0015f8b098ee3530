package mind

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"vacuumworld/internal/domain/world"
)

var ErrUnknownMind = errors.New("unknown mind")

const (
	RefIdle     = "idle"
	RefReactive = "reactive"
	RefRandom   = "random"
	RefScripted = "scripted"
)

type Factory func() Core

type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// DefaultRegistry knows every built-in core. Random cores are seeded 1, 2,
// 3... in creation order, so each registry replays the same run.
func DefaultRegistry() *Registry {
	var seed atomic.Int64
	r := NewRegistry()
	r.Register(RefIdle, func() Core { return IdleCore{} })
	r.Register(RefReactive, func() Core { return NewReactiveCore() })
	r.Register(RefRandom, func() Core { return NewRandomCore(seed.Add(1)) })
	r.Register(RefScripted, func() Core { return NewScriptedCore() })
	return r
}

func (r *Registry) Register(reference string, f Factory) {
	r.factories[strings.TrimSpace(reference)] = f
}

func (r *Registry) New(reference string) (*Mind, error) {
	reference = strings.TrimSpace(reference)
	f, ok := r.factories[reference]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMind, reference)
	}
	return New(reference, f()), nil
}

func (r *Registry) References() []string {
	out := make([]string, 0, len(r.factories))
	for ref := range r.factories {
		out = append(out, ref)
	}
	sort.Strings(out)
	return out
}

// NewMind satisfies environment.MindFactory.
func (r *Registry) NewMind(reference string) (world.Mind, error) {
	m, err := r.New(reference)
	if err != nil {
		return nil, err
	}
	return m, nil
}
