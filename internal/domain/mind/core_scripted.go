package mind

import "vacuumworld/internal/domain/world"

// ScriptedCore plays back one step per cycle and idles once the script is
// exhausted.
type ScriptedCore struct {
	steps [][]world.Action
	next  int

	LastObservation world.Observation
	LastMessages    []world.Message
}

func NewScriptedCore(steps ...[]world.Action) *ScriptedCore {
	return &ScriptedCore{steps: steps}
}

func (c *ScriptedCore) Perceive(observation world.Observation, messages []world.Message) {
	c.LastObservation = observation
	c.LastMessages = messages
}

func (c *ScriptedCore) Revise() {}

func (c *ScriptedCore) Decide() []world.Action {
	if c.next >= len(c.steps) {
		return []world.Action{world.NewIdleAction("")}
	}
	step := c.steps[c.next]
	c.next++
	return step
}
