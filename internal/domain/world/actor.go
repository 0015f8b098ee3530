package world

import (
	"fmt"

	"github.com/google/uuid"
)

type Appendices struct {
	ObservationSensor     *ObservationSensor
	ListeningSensor       *ListeningSensor
	PhysicalActuator      *PhysicalActuator
	CommunicativeActuator *CommunicativeActuator
}

func FullAppendices() Appendices {
	return Appendices{
		ObservationSensor:     NewObservationSensor(),
		ListeningSensor:       NewListeningSensor(),
		PhysicalActuator:      NewPhysicalActuator(),
		CommunicativeActuator: NewCommunicativeActuator(),
	}
}

type Actor struct {
	id          string
	colour      Colour
	orientation Orientation
	mind        Mind

	observationSensor     *ObservationSensor
	listeningSensor       *ListeningSensor
	physicalActuator      *PhysicalActuator
	communicativeActuator *CommunicativeActuator
}

func NewActor(id string, colour Colour, orientation Orientation, mind Mind, appendices Appendices) (*Actor, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: the actor id cannot be empty", ErrInvalidArgument)
	}
	if !colour.IsActorColour() {
		return nil, fmt.Errorf("%w: %q is not an actor colour", ErrInvalidArgument, colour)
	}
	if !orientation.Valid() {
		return nil, fmt.Errorf("%w: unknown orientation %q", ErrInvalidArgument, orientation)
	}
	if mind == nil {
		return nil, fmt.Errorf("%w: the mind cannot be nil", ErrInvalidArgument)
	}
	return &Actor{
		id:                    id,
		colour:                colour,
		orientation:           orientation,
		mind:                  mind,
		observationSensor:     appendices.ObservationSensor,
		listeningSensor:       appendices.ListeningSensor,
		physicalActuator:      appendices.PhysicalActuator,
		communicativeActuator: appendices.CommunicativeActuator,
	}, nil
}

// NewCleaningAgent builds a green, orange or white agent with every appendix.
func NewCleaningAgent(colour Colour, orientation Orientation, mind Mind) (*Actor, error) {
	if colour == User {
		return nil, fmt.Errorf("%w: cleaning agents cannot have the user colour", ErrInvalidArgument)
	}
	return NewActor(uuid.NewString(), colour, orientation, mind, FullAppendices())
}

// NewUser builds a user actor. Users can see, listen and act physically but
// cannot speak.
func NewUser(orientation Orientation, mind Mind) (*Actor, error) {
	return NewActor(uuid.NewString(), User, orientation, mind, Appendices{
		ObservationSensor: NewObservationSensor(),
		ListeningSensor:   NewListeningSensor(),
		PhysicalActuator:  NewPhysicalActuator(),
	})
}

func (a *Actor) ID() string               { return a.id }
func (a *Actor) Colour() Colour           { return a.colour }
func (a *Actor) Orientation() Orientation { return a.orientation }
func (a *Actor) Mind() Mind               { return a.mind }
func (a *Actor) IsUser() bool             { return a.colour == User }

func (a *Actor) ObservationSensor() (*ObservationSensor, bool) {
	return a.observationSensor, a.observationSensor != nil
}

func (a *Actor) ListeningSensor() (*ListeningSensor, bool) {
	return a.listeningSensor, a.listeningSensor != nil
}

func (a *Actor) PhysicalActuator() (*PhysicalActuator, bool) {
	return a.physicalActuator, a.physicalActuator != nil
}

func (a *Actor) CommunicativeActuator() (*CommunicativeActuator, bool) {
	return a.communicativeActuator, a.communicativeActuator != nil
}

type ActorAppearance struct {
	ID          string      `json:"id"`
	Colour      Colour      `json:"colour"`
	Orientation Orientation `json:"orientation"`
}

func (a *Actor) Appearance() ActorAppearance {
	return ActorAppearance{ID: a.id, Colour: a.colour, Orientation: a.orientation}
}

// MindReference names the mind implementation, empty when the mind cannot
// name itself.
func (a *Actor) MindReference() string {
	if r, ok := a.mind.(Referencer); ok {
		return r.Reference()
	}
	return ""
}

func (a *Actor) Turn(d Direction) error {
	next, err := a.orientation.Rotate(d)
	if err != nil {
		return err
	}
	a.orientation = next
	return nil
}

// Cycle runs one sense, decide, act iteration. Observations are mandatory;
// messages are optional.
func (a *Actor) Cycle() error {
	sensor, ok := a.ObservationSensor()
	if !ok {
		return fmt.Errorf("%w: actor %s has no observation sensor", ErrMissingCapability, a.id)
	}
	observation, err := MergeObservations(sensor.SourceAll())
	if err != nil {
		return fmt.Errorf("actor %s: %w", a.id, err)
	}
	messages := []Message{}
	if listening, ok := a.ListeningSensor(); ok {
		messages = listening.SourceAll()
	}

	a.mind.Perceive(observation, messages)
	a.mind.Revise()
	a.mind.Decide()

	actions := a.mind.Execute()
	if err := ValidateActions(actions); err != nil {
		return fmt.Errorf("actor %s: %w", a.id, err)
	}
	return a.executeActions(actions)
}

func (a *Actor) executeActions(actions []Action) error {
	for _, action := range actions {
		if err := a.checkActuator(action.Kind); err != nil {
			return err
		}
	}
	for _, action := range actions {
		action.ActorID = a.id
		var err error
		if action.Kind.IsPhysical() {
			err = a.physicalActuator.Sink(action)
		} else {
			err = a.communicativeActuator.Sink(action)
		}
		if err != nil {
			a.PendingActions()
			return err
		}
	}
	return nil
}

func (a *Actor) checkActuator(kind ActionKind) error {
	switch {
	case kind.IsPhysical():
		if a.physicalActuator == nil {
			return fmt.Errorf("%w: actor %s has no physical actuator", ErrMissingCapability, a.id)
		}
	case kind.IsCommunicative():
		if a.communicativeActuator == nil {
			return fmt.Errorf("%w: actor %s has no communicative actuator", ErrMissingCapability, a.id)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, kind)
	}
	return nil
}

// PendingActions drains both actuators, physical actions first.
func (a *Actor) PendingActions() []Action {
	out := []Action{}
	if p, ok := a.PhysicalActuator(); ok {
		out = append(out, p.SourceAll()...)
	}
	if c, ok := a.CommunicativeActuator(); ok {
		out = append(out, c.SourceAll()...)
	}
	return out
}

// Reset drops queued actions and unread observations. Messages are kept.
func (a *Actor) Reset() {
	a.PendingActions()
	if s, ok := a.ObservationSensor(); ok {
		s.SourceAll()
	}
}
