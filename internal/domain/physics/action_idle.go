package physics

import "vacuumworld/internal/domain/world"

func idleIsPossible(action world.Action, env Env) bool {
	_, _, ok := actorState(action, env)
	return ok
}

func idlePerform(world.Action, Env) world.Outcome {
	return world.Success
}
