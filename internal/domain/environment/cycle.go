package environment

import (
	"fmt"

	"vacuumworld/internal/domain/physics"
	"vacuumworld/internal/domain/world"
)

type CycleReport struct {
	Tick    uint64               `json:"tick"`
	Results []world.ActionResult `json:"results"`
}

type actorTurn struct {
	actor   *world.Actor
	results []world.ActionResult
}

// Cycle advances the environment by one tick. Actors run in grid order;
// each one senses, decides and has its actions attempted before the next
// actor runs. Observations carrying this tick's results are delivered once
// every actor has acted.
//
// A structural error (missing capability, malformed mind output) aborts the
// cycle. Actors that already acted keep their effects and get their
// observations, and the tick advances if any of them did. Every other actor
// is reset so the next cycle starts from the current grid.
func (e *Environment) Cycle() (CycleReport, error) {
	tick := e.tick + 1
	report := CycleReport{Tick: tick, Results: []world.ActionResult{}}

	actors := e.ambient.Actors()
	turns := make([]actorTurn, 0, len(actors))
	abort := func(err error) (CycleReport, error) {
		e.abortCycle(actors, turns)
		return report, fmt.Errorf("cycle %d: %w", tick, err)
	}

	for _, actor := range actors {
		if err := e.primeObservation(actor); err != nil {
			return abort(err)
		}
	}

	for _, actor := range actors {
		if _, present := e.ambient.ActorByID(actor.ID()); !present {
			continue
		}
		if err := actor.Cycle(); err != nil {
			return abort(err)
		}
		actions := actor.PendingActions()
		if err := world.ValidateActions(actions); err != nil {
			return abort(fmt.Errorf("actor %s: %w", actor.ID(), err))
		}
		for _, action := range actions {
			if _, ok := e.specs[action.Kind]; !ok {
				return abort(fmt.Errorf("actor %s: %w: %q", actor.ID(), world.ErrUnsupportedAction, action.Kind))
			}
		}
		turn := actorTurn{actor: actor, results: make([]world.ActionResult, 0, len(actions))}
		for _, action := range actions {
			turn.results = append(turn.results, physics.AttemptWith(e.specs[action.Kind], action, e))
		}
		report.Results = append(report.Results, turn.results...)
		turns = append(turns, turn)
	}

	for _, turn := range turns {
		e.deliverObservations(turn)
	}
	e.tick = tick
	return report, nil
}

func (e *Environment) abortCycle(actors []*world.Actor, turns []actorTurn) {
	acted := make(map[*world.Actor]bool, len(turns))
	for _, turn := range turns {
		acted[turn.actor] = true
	}
	for _, actor := range actors {
		if !acted[actor] {
			actor.Reset()
		}
	}
	if len(turns) == 0 {
		return
	}
	for _, turn := range turns {
		e.deliverObservations(turn)
	}
	e.tick++
}

// primeObservation gives actors that have nothing to sense (first cycle,
// freshly placed) a plain observation of their surroundings.
func (e *Environment) primeObservation(actor *world.Actor) error {
	sensor, ok := actor.ObservationSensor()
	if !ok || sensor.Pending() > 0 {
		return nil
	}
	obs, err := e.Observe(actor.ID())
	if err != nil {
		return err
	}
	sensor.Sink(obs)
	return nil
}

// deliverObservations sinks one observation per attempted action, the
// communicative one first so the physical one's view is the canonical one
// when the actor merges them.
func (e *Environment) deliverObservations(turn actorTurn) {
	sensor, ok := turn.actor.ObservationSensor()
	if !ok {
		return
	}
	if _, present := e.ambient.ActorByID(turn.actor.ID()); !present {
		return
	}
	if len(turn.results) == 0 {
		if obs, err := e.Observe(turn.actor.ID()); err == nil {
			sensor.Sink(obs)
		}
		return
	}
	ordered := make([]world.ActionResult, 0, len(turn.results))
	for _, r := range turn.results {
		if r.Action.Kind.IsCommunicative() {
			ordered = append(ordered, r)
		}
	}
	for _, r := range turn.results {
		if !r.Action.Kind.IsCommunicative() {
			ordered = append(ordered, r)
		}
	}
	for _, r := range ordered {
		if obs, err := e.Observe(turn.actor.ID(), r); err == nil {
			sensor.Sink(obs)
		}
	}
}
