package physics

import "vacuumworld/internal/domain/world"

func cleanIsPossible(action world.Action, env Env) bool {
	actor, coord, ok := actorState(action, env)
	if !ok || !hasPhysicalActuator(actor) || actor.IsUser() {
		return false
	}
	dirt, ok := env.Ambient().DirtByCoord(coord)
	return ok && actor.Colour().CanClean(dirt.Colour)
}

func cleanPerform(action world.Action, env Env) world.Outcome {
	_, coord, ok := actorState(action, env)
	if !ok {
		return world.Failure
	}
	if err := env.Ambient().CleanDirtByCoord(coord); err != nil {
		return world.Failure
	}
	return world.Success
}

func cleanVerify(_ world.Action, env Env, before Before) bool {
	return dirtAt(env, before.Coord) == nil
}
