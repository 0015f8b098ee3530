package mind

import "vacuumworld/internal/domain/world"

// Core is a pluggable decision strategy.
type Core interface {
	Perceive(observation world.Observation, messages []world.Message)
	Revise()
	Decide() []world.Action
}

// Mind delegates to its core and keeps the last decided actions so Execute
// can be called on its own after Decide.
type Mind struct {
	core        Core
	reference   string
	nextActions []world.Action
}

func New(reference string, core Core) *Mind {
	return &Mind{core: core, reference: reference}
}

func (m *Mind) Perceive(observation world.Observation, messages []world.Message) {
	m.core.Perceive(observation, messages)
}

func (m *Mind) Revise() {
	m.core.Revise()
}

func (m *Mind) Decide() {
	m.nextActions = m.core.Decide()
}

func (m *Mind) Execute() []world.Action {
	return m.nextActions
}

func (m *Mind) Reference() string {
	return m.reference
}

func (m *Mind) Core() Core {
	return m.core
}

var (
	_ world.Mind       = (*Mind)(nil)
	_ world.Referencer = (*Mind)(nil)
)
