package mind

import "vacuumworld/internal/domain/world"

type IdleCore struct{}

func (IdleCore) Perceive(world.Observation, []world.Message) {}
func (IdleCore) Revise()                                    {}
func (IdleCore) Decide() []world.Action {
	return []world.Action{world.NewIdleAction("")}
}
