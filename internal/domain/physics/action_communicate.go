package physics

import "vacuumworld/internal/domain/world"

func speakIsPossible(action world.Action, env Env) bool {
	actor, _, ok := actorState(action, env)
	return ok && hasCommunicativeActuator(actor) && len(action.Recipients) > 0
}

func broadcastIsPossible(action world.Action, env Env) bool {
	actor, _, ok := actorState(action, env)
	return ok && hasCommunicativeActuator(actor)
}

// communicatePerform does not check delivery in Verify; a message that could
// not be delivered already yields FAILURE here.
func communicatePerform(action world.Action, env Env) world.Outcome {
	if err := env.SendMessage(action); err != nil {
		return world.Failure
	}
	return world.Success
}
