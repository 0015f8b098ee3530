package environment

import (
	"encoding/json"
	"errors"
	"fmt"

	"vacuumworld/internal/domain/world"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the persisted layout of an environment. Mind state is not
// kept, only the reference the mind was built from.
type Snapshot struct {
	Size      int                `json:"size"`
	Locations []LocationSnapshot `json:"locations"`
}

type LocationSnapshot struct {
	Coord world.Coord    `json:"coord"`
	Actor *ActorSnapshot `json:"actor,omitempty"`
	Dirt  *DirtSnapshot  `json:"dirt,omitempty"`
}

type ActorSnapshot struct {
	Colour      world.Colour      `json:"colour"`
	Orientation world.Orientation `json:"orientation"`
	Mind        string            `json:"mind"`
}

type DirtSnapshot struct {
	Colour world.Colour `json:"colour"`
}

// MindFactory rebuilds a mind from its reference.
type MindFactory interface {
	NewMind(reference string) (world.Mind, error)
}

func (e *Environment) Snapshot() Snapshot {
	coords := e.ambient.Coords()
	out := Snapshot{Size: e.ambient.Size(), Locations: make([]LocationSnapshot, 0, len(coords))}
	for _, c := range coords {
		l, _ := e.ambient.Location(c)
		ls := LocationSnapshot{Coord: c}
		if actor, ok := l.Actor(); ok {
			ls.Actor = &ActorSnapshot{
				Colour:      actor.Colour(),
				Orientation: actor.Orientation(),
				Mind:        actor.MindReference(),
			}
		}
		if dirt, ok := l.Dirt(); ok {
			ls.Dirt = &DirtSnapshot{Colour: dirt.Colour}
		}
		out.Locations = append(out.Locations, ls)
	}
	return out
}

// ToJSON encodes the snapshot for storage. It fails when an actor's mind
// cannot name itself, since FromSnapshot could not rebuild it.
func (e *Environment) ToJSON() ([]byte, error) {
	snap := e.Snapshot()
	for _, ls := range snap.Locations {
		if ls.Actor != nil && ls.Actor.Mind == "" {
			return nil, fmt.Errorf("%w: actor at %s has an unnamed mind", ErrInvalidSnapshot, ls.Coord)
		}
	}
	return json.Marshal(snap)
}

func ParseSnapshot(raw []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}

// FromSnapshot rebuilds an environment. Actors get fresh identities and
// fresh minds; users are rebuilt as users, everything else as cleaning
// agents.
func FromSnapshot(snap Snapshot, cfg Config, minds MindFactory) (*Environment, error) {
	if minds == nil {
		return nil, fmt.Errorf("%w: a mind factory is required", world.ErrInvalidArgument)
	}
	env, err := New(snap.Size, cfg)
	if err != nil {
		return nil, err
	}
	seen := map[world.Coord]bool{}
	for _, ls := range snap.Locations {
		if !env.ambient.Contains(ls.Coord) {
			return nil, fmt.Errorf("%w: %s is outside a grid of size %d", ErrInvalidSnapshot, ls.Coord, snap.Size)
		}
		if seen[ls.Coord] {
			return nil, fmt.Errorf("%w: %s appears twice", ErrInvalidSnapshot, ls.Coord)
		}
		seen[ls.Coord] = true

		if ls.Actor != nil {
			actor, err := buildActor(*ls.Actor, minds)
			if err != nil {
				return nil, fmt.Errorf("%w: actor at %s: %v", ErrInvalidSnapshot, ls.Coord, err)
			}
			if err := env.AddActor(ls.Coord, actor); err != nil {
				return nil, err
			}
		}
		if ls.Dirt != nil {
			dirt, err := world.NewDirt(ls.Dirt.Colour)
			if err != nil {
				return nil, fmt.Errorf("%w: dirt at %s: %v", ErrInvalidSnapshot, ls.Coord, err)
			}
			if err := env.AddDirt(ls.Coord, dirt); err != nil {
				return nil, err
			}
		}
	}
	return env, nil
}

func buildActor(s ActorSnapshot, minds MindFactory) (*world.Actor, error) {
	colour, err := world.ParseColour(string(s.Colour))
	if err != nil {
		return nil, err
	}
	orientation, err := world.ParseOrientation(string(s.Orientation))
	if err != nil {
		return nil, err
	}
	m, err := minds.NewMind(s.Mind)
	if err != nil {
		return nil, err
	}
	if colour == world.User {
		return world.NewUser(orientation, m)
	}
	return world.NewCleaningAgent(colour, orientation, m)
}
