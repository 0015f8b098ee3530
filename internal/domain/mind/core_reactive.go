package mind

import "vacuumworld/internal/domain/world"

const userDropEvery = 3

// ReactiveCore cleans what it can, walks forward when the way is free and
// turns right otherwise. Users drop dirt on clean cells every few cycles.
type ReactiveCore struct {
	observation world.Observation
	self        world.ActorAppearance
	seen        bool
	cycles      int
	lastFailed  bool
	nextDirt    world.Colour
}

func NewReactiveCore() *ReactiveCore {
	return &ReactiveCore{nextDirt: world.Green}
}

func (c *ReactiveCore) Perceive(observation world.Observation, _ []world.Message) {
	c.observation = observation
	c.self, c.seen = observation.Self()
}

func (c *ReactiveCore) Revise() {
	c.cycles++
	c.lastFailed = false
	for _, r := range c.observation.Results {
		if r.Action.Kind.IsPhysical() && !r.Succeeded() {
			c.lastFailed = true
		}
	}
}

func (c *ReactiveCore) Decide() []world.Action {
	if !c.seen {
		return []world.Action{world.NewIdleAction("")}
	}
	here, _ := c.observation.At(c.observation.Center)

	if c.self.Colour == world.User {
		if here.Dirt == nil && c.cycles%userDropEvery == 0 {
			colour := c.nextDirt
			if colour == world.Green {
				c.nextDirt = world.Orange
			} else {
				c.nextDirt = world.Green
			}
			return []world.Action{world.NewDropDirtAction("", colour)}
		}
		return []world.Action{c.wander()}
	}

	if here.Dirt != nil && c.self.Colour.CanClean(here.Dirt.Colour) {
		return []world.Action{world.NewCleanAction("")}
	}
	return []world.Action{c.wander()}
}

func (c *ReactiveCore) wander() world.Action {
	if c.lastFailed {
		return world.NewTurnAction("", world.Left)
	}
	ahead, visible := c.observation.At(c.observation.Center.Forward(c.self.Orientation))
	if visible && ahead.Actor == nil {
		return world.NewMoveAction("")
	}
	return world.NewTurnAction("", world.Right)
}
