package physics

import (
	"vacuumworld/internal/domain/world"
)

// Dimension is a piece of actor or location state an action kind is allowed
// to change. Colour is never one of them.
type Dimension uint8

const (
	DimOrientation Dimension = 1 << iota
	DimCoord
	DimDirt
)

func (d Dimension) Has(other Dimension) bool {
	return d&other != 0
}

// Env is what executors need from the environment.
type Env interface {
	Ambient() *world.Ambient
	SendMessage(action world.Action) error
}

// Before is the state captured right before Perform runs.
type Before struct {
	Colour      world.Colour
	Orientation world.Orientation
	Coord       world.Coord
	Dirt        *world.DirtAppearance
}

type Spec struct {
	Kind    world.ActionKind
	Mutates Dimension
	// IsPossible is the feasibility precondition. False means FAILURE
	// without Perform ever running.
	IsPossible func(action world.Action, env Env) bool
	Perform    func(action world.Action, env Env) world.Outcome
	// Verify checks the kind specific effect after Perform. The shared
	// invariants are checked by Attempt.
	Verify func(action world.Action, env Env, before Before) bool
}

func Registry() map[world.ActionKind]Spec {
	return map[world.ActionKind]Spec{
		world.ActionMove:      {Kind: world.ActionMove, Mutates: DimCoord, IsPossible: moveIsPossible, Perform: movePerform, Verify: moveVerify},
		world.ActionTurn:      {Kind: world.ActionTurn, Mutates: DimOrientation, IsPossible: turnIsPossible, Perform: turnPerform, Verify: turnVerify},
		world.ActionClean:     {Kind: world.ActionClean, Mutates: DimDirt, IsPossible: cleanIsPossible, Perform: cleanPerform, Verify: cleanVerify},
		world.ActionDropDirt:  {Kind: world.ActionDropDirt, Mutates: DimDirt, IsPossible: dropDirtIsPossible, Perform: dropDirtPerform, Verify: dropDirtVerify},
		world.ActionIdle:      {Kind: world.ActionIdle, IsPossible: idleIsPossible, Perform: idlePerform},
		world.ActionSpeak:     {Kind: world.ActionSpeak, IsPossible: speakIsPossible, Perform: communicatePerform},
		world.ActionBroadcast: {Kind: world.ActionBroadcast, IsPossible: broadcastIsPossible, Perform: communicatePerform},
	}
}

func actorState(action world.Action, env Env) (*world.Actor, world.Coord, bool) {
	amb := env.Ambient()
	coord, ok := amb.ActorCoordByID(action.ActorID)
	if !ok {
		return nil, world.Coord{}, false
	}
	actor, ok := amb.ActorByCoord(coord)
	return actor, coord, ok
}

func hasPhysicalActuator(a *world.Actor) bool {
	_, ok := a.PhysicalActuator()
	return ok
}

func hasCommunicativeActuator(a *world.Actor) bool {
	_, ok := a.CommunicativeActuator()
	return ok
}

func dirtAt(env Env, c world.Coord) *world.DirtAppearance {
	d, ok := env.Ambient().DirtByCoord(c)
	if !ok {
		return nil
	}
	appearance := d.Appearance()
	return &appearance
}

func sameDirt(a, b *world.DirtAppearance) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
