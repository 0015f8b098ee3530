package environment

import (
	"fmt"

	"vacuumworld/internal/domain/physics"
	"vacuumworld/internal/domain/world"
)

// Environment drives the actors living in an Ambient, one tick per Cycle.
// It is not safe for concurrent use; callers serialize cycles.
type Environment struct {
	cfg     Config
	ambient *world.Ambient
	specs   map[world.ActionKind]physics.Spec
	tick    uint64
}

func New(size int, cfg Config) (*Environment, error) {
	if err := cfg.CheckSize(size); err != nil {
		return nil, err
	}
	ambient, err := world.NewAmbient(size)
	if err != nil {
		return nil, err
	}
	return &Environment{cfg: cfg, ambient: ambient, specs: physics.Registry()}, nil
}

// NewFromAmbient wraps an already populated ambient.
func NewFromAmbient(ambient *world.Ambient, cfg Config) (*Environment, error) {
	if ambient == nil {
		return nil, fmt.Errorf("%w: the ambient cannot be nil", world.ErrInvalidArgument)
	}
	if err := cfg.CheckSize(ambient.Size()); err != nil {
		return nil, err
	}
	return &Environment{cfg: cfg, ambient: ambient, specs: physics.Registry()}, nil
}

func (e *Environment) Config() Config          { return e.cfg }
func (e *Environment) Ambient() *world.Ambient { return e.ambient }
func (e *Environment) Size() int               { return e.ambient.Size() }
func (e *Environment) Tick() uint64            { return e.tick }

func (e *Environment) AddActor(c world.Coord, actor *world.Actor) error {
	return e.ambient.AddActorToLocation(c, actor)
}

func (e *Environment) AddDirt(c world.Coord, dirt *world.Dirt) error {
	return e.ambient.AddDirtToLocation(c, dirt)
}

func (e *Environment) Location(c world.Coord) (*world.Location, bool) {
	return e.ambient.Location(c)
}

func (e *Environment) ActorByID(id string) (*world.Actor, bool) {
	return e.ambient.ActorByID(id)
}

func (e *Environment) ActorByCoord(c world.Coord) (*world.Actor, bool) {
	return e.ambient.ActorByCoord(c)
}

func (e *Environment) ActorCoordByID(id string) (world.Coord, bool) {
	return e.ambient.ActorCoordByID(id)
}

func (e *Environment) DirtByID(id string) (*world.Dirt, bool) {
	return e.ambient.DirtByID(id)
}

func (e *Environment) DirtByCoord(c world.Coord) (*world.Dirt, bool) {
	return e.ambient.DirtByCoord(c)
}

func (e *Environment) DirtCoordByID(id string) (world.Coord, bool) {
	return e.ambient.DirtCoordByID(id)
}

// Observe builds what the actor currently perceives, carrying results.
func (e *Environment) Observe(actorID string, results ...world.ActionResult) (world.Observation, error) {
	coord, ok := e.ambient.ActorCoordByID(actorID)
	if !ok {
		return world.Observation{}, fmt.Errorf("%w: actor %s is not in the environment", world.ErrInvalidArgument, actorID)
	}
	actor, _ := e.ambient.ActorByCoord(coord)
	if results == nil {
		results = []world.ActionResult{}
	}
	return world.Observation{
		Center:    coord,
		Locations: e.ambient.VisibleFrom(coord, actor.Orientation()),
		Results:   results,
	}, nil
}

// SendMessage delivers a speak to its recipients or a broadcast to every
// other actor that can listen.
func (e *Environment) SendMessage(action world.Action) error {
	msg := world.Message{SenderID: action.ActorID, Content: action.Message}
	switch action.Kind {
	case world.ActionSpeak:
		if len(action.Recipients) == 0 {
			return fmt.Errorf("%w: a speak action needs recipients", world.ErrInvalidArgument)
		}
		sensors := make([]*world.ListeningSensor, 0, len(action.Recipients))
		for _, id := range action.Recipients {
			if id == action.ActorID {
				return fmt.Errorf("%w: actor %s cannot speak to itself", world.ErrInvalidOperation, id)
			}
			recipient, ok := e.ambient.ActorByID(id)
			if !ok {
				return fmt.Errorf("%w: recipient %s is not in the environment", world.ErrInvalidOperation, id)
			}
			sensor, ok := recipient.ListeningSensor()
			if !ok {
				return fmt.Errorf("%w: recipient %s cannot listen", world.ErrMissingCapability, id)
			}
			sensors = append(sensors, sensor)
		}
		msg.Recipients = append([]string(nil), action.Recipients...)
		for _, s := range sensors {
			s.Sink(msg)
		}
		return nil
	case world.ActionBroadcast:
		sensors := []*world.ListeningSensor{}
		for _, actor := range e.ambient.Actors() {
			if actor.ID() == action.ActorID {
				continue
			}
			if sensor, ok := actor.ListeningSensor(); ok {
				msg.Recipients = append(msg.Recipients, actor.ID())
				sensors = append(sensors, sensor)
			}
		}
		for _, s := range sensors {
			s.Sink(msg)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q is not communicative", world.ErrUnsupportedAction, action.Kind)
	}
}
