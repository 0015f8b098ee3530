package simulation

import (
	"context"
	"fmt"

	"vacuumworld/internal/domain/environment"
	"vacuumworld/internal/domain/world"
)

type SeedActor struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Colour      string `json:"colour"`
	Orientation string `json:"orientation"`
	Mind        string `json:"mind"`
}

type SeedDirt struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Colour string `json:"colour"`
}

type SeedSpec struct {
	Size   int         `json:"size"`
	Actors []SeedActor `json:"actors"`
	Dirts  []SeedDirt  `json:"dirts"`
}

// Seed builds a fresh environment through the snapshot layout, so seeds and
// loaded snapshots go through the same checks.
func Seed(spec SeedSpec, cfg environment.Config, minds environment.MindFactory) (*environment.Environment, error) {
	snap := environment.Snapshot{Size: spec.Size}
	index := map[world.Coord]int{}
	at := func(x, y int) *environment.LocationSnapshot {
		c := world.Coord{X: x, Y: y}
		i, ok := index[c]
		if !ok {
			snap.Locations = append(snap.Locations, environment.LocationSnapshot{Coord: c})
			i = len(snap.Locations) - 1
			index[c] = i
		}
		return &snap.Locations[i]
	}

	for _, a := range spec.Actors {
		ls := at(a.X, a.Y)
		if ls.Actor != nil {
			return nil, fmt.Errorf("%w: two seed actors at (%d,%d)", ErrInvalidRequest, a.X, a.Y)
		}
		ls.Actor = &environment.ActorSnapshot{
			Colour:      world.Colour(a.Colour),
			Orientation: world.Orientation(a.Orientation),
			Mind:        a.Mind,
		}
	}
	for _, d := range spec.Dirts {
		ls := at(d.X, d.Y)
		if ls.Dirt != nil {
			return nil, fmt.Errorf("%w: two seed dirts at (%d,%d)", ErrInvalidRequest, d.X, d.Y)
		}
		ls.Dirt = &environment.DirtSnapshot{Colour: world.Colour(d.Colour)}
	}
	env, err := environment.FromSnapshot(snap, cfg, minds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return env, nil
}

// Reseed replaces the current environment with a freshly seeded one.
func (s *Simulation) Reseed(ctx context.Context, spec SeedSpec) (SnapshotResponse, error) {
	env, err := Seed(spec, s.config(), s.minds())
	if err != nil {
		return SnapshotResponse{}, err
	}
	s.Attach(env)
	return s.Snapshot(ctx)
}
