package physics

import "vacuumworld/internal/domain/world"

func dropDirtIsPossible(action world.Action, env Env) bool {
	actor, coord, ok := actorState(action, env)
	if !ok || !hasPhysicalActuator(actor) || !actor.IsUser() {
		return false
	}
	if !action.DirtColour.IsDirtColour() {
		return false
	}
	_, dirty := env.Ambient().DirtByCoord(coord)
	return !dirty
}

func dropDirtPerform(action world.Action, env Env) world.Outcome {
	_, coord, ok := actorState(action, env)
	if !ok {
		return world.Failure
	}
	dirt, err := world.NewDirt(action.DirtColour)
	if err != nil {
		return world.Failure
	}
	if err := env.Ambient().AddDirtToLocation(coord, dirt); err != nil {
		return world.Failure
	}
	return world.Success
}

func dropDirtVerify(action world.Action, env Env, before Before) bool {
	d := dirtAt(env, before.Coord)
	return d != nil && d.Colour == action.DirtColour
}
