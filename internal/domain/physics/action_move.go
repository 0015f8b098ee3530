package physics

import "vacuumworld/internal/domain/world"

func moveIsPossible(action world.Action, env Env) bool {
	actor, coord, ok := actorState(action, env)
	if !ok || !hasPhysicalActuator(actor) {
		return false
	}
	target := coord.Forward(actor.Orientation())
	if !env.Ambient().Contains(target) {
		return false
	}
	_, occupied := env.Ambient().ActorByCoord(target)
	return !occupied
}

func movePerform(action world.Action, env Env) world.Outcome {
	actor, coord, ok := actorState(action, env)
	if !ok {
		return world.Failure
	}
	if err := env.Ambient().MoveActor(coord, coord.Forward(actor.Orientation())); err != nil {
		return world.Failure
	}
	return world.Success
}

// moveVerify: a move is the only kind allowed to change the coordinate, and
// only to the cell in front of the actor.
func moveVerify(action world.Action, env Env, before Before) bool {
	coord, ok := env.Ambient().ActorCoordByID(action.ActorID)
	return ok && coord == before.Coord.Forward(before.Orientation)
}
