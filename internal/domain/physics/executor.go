package physics

import (
	"fmt"

	"vacuumworld/internal/domain/world"
)

// Attempt routes action to the executor registered for its kind.
func Attempt(action world.Action, env Env) (world.ActionResult, error) {
	if env == nil {
		return world.ActionResult{}, fmt.Errorf("%w: the environment cannot be nil", world.ErrInvalidArgument)
	}
	spec, ok := Registry()[action.Kind]
	if !ok {
		return world.ActionResult{}, fmt.Errorf("%w: %q", world.ErrUnsupportedAction, action.Kind)
	}
	return AttemptWith(spec, action, env), nil
}

// AttemptWith runs the three phase protocol for one action: feasibility,
// perform, then verification of the invariants. A broken invariant turns an
// apparently successful perform into FAILURE.
func AttemptWith(spec Spec, action world.Action, env Env) world.ActionResult {
	failure := world.NewActionResult(world.Failure, action)

	if spec.IsPossible == nil || !guard(func() bool { return spec.IsPossible(action, env) }) {
		return failure
	}

	actor, coord, ok := actorState(action, env)
	if !ok {
		return failure
	}
	before := Before{
		Colour:      actor.Colour(),
		Orientation: actor.Orientation(),
		Coord:       coord,
		Dirt:        dirtAt(env, coord),
	}

	outcome := world.Failure
	if spec.Perform != nil {
		guard(func() bool {
			outcome = spec.Perform(action, env)
			return true
		})
	}

	if !guard(func() bool { return succeeded(spec, action, env, before) }) {
		return failure
	}
	return world.NewActionResult(outcome, action)
}

func succeeded(spec Spec, action world.Action, env Env, before Before) bool {
	actor, coord, ok := actorState(action, env)
	if !ok {
		return false
	}
	if actor.Colour() != before.Colour {
		return false
	}
	if !spec.Mutates.Has(DimOrientation) && actor.Orientation() != before.Orientation {
		return false
	}
	if !spec.Mutates.Has(DimCoord) && coord != before.Coord {
		return false
	}
	if !spec.Mutates.Has(DimDirt) && !sameDirt(before.Dirt, dirtAt(env, before.Coord)) {
		return false
	}
	if spec.Verify != nil && !spec.Verify(action, env, before) {
		return false
	}
	return true
}

func guard(fn func() bool) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn()
}
