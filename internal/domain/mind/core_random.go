package mind

import (
	"math/rand"

	"vacuumworld/internal/domain/world"
)

type RandomCore struct {
	rng  *rand.Rand
	self world.ActorAppearance
	seen bool
}

func NewRandomCore(seed int64) *RandomCore {
	return &RandomCore{rng: rand.New(rand.NewSource(seed))}
}

func (c *RandomCore) Perceive(observation world.Observation, _ []world.Message) {
	c.self, c.seen = observation.Self()
}

func (c *RandomCore) Revise() {}

func (c *RandomCore) Decide() []world.Action {
	choices := []world.Action{
		world.NewMoveAction(""),
		world.NewTurnAction("", world.Left),
		world.NewTurnAction("", world.Right),
		world.NewIdleAction(""),
	}
	if c.seen && c.self.Colour == world.User {
		choices = append(choices, world.NewDropDirtAction("", []world.Colour{world.Green, world.Orange}[c.rng.Intn(2)]))
	} else {
		choices = append(choices, world.NewCleanAction(""))
	}
	return []world.Action{choices[c.rng.Intn(len(choices))]}
}
