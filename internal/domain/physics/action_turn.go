package physics

import "vacuumworld/internal/domain/world"

func turnIsPossible(action world.Action, env Env) bool {
	actor, _, ok := actorState(action, env)
	if !ok || !hasPhysicalActuator(actor) {
		return false
	}
	return action.Direction == world.Left || action.Direction == world.Right
}

func turnPerform(action world.Action, env Env) world.Outcome {
	_, coord, ok := actorState(action, env)
	if !ok {
		return world.Failure
	}
	if err := env.Ambient().TurnActor(coord, action.Direction); err != nil {
		return world.Failure
	}
	return world.Success
}

func turnVerify(action world.Action, env Env, before Before) bool {
	actor, _, ok := actorState(action, env)
	if !ok {
		return false
	}
	want, err := before.Orientation.Rotate(action.Direction)
	return err == nil && actor.Orientation() == want
}
