package world

type stubMind struct {
	calls    []string
	actions  []Action
	observed []Observation
	messages [][]Message
}

func (m *stubMind) Perceive(o Observation, msgs []Message) {
	m.calls = append(m.calls, "perceive")
	m.observed = append(m.observed, o)
	m.messages = append(m.messages, msgs)
}

func (m *stubMind) Revise() { m.calls = append(m.calls, "revise") }

func (m *stubMind) Decide() { m.calls = append(m.calls, "decide") }

func (m *stubMind) Execute() []Action {
	m.calls = append(m.calls, "execute")
	return m.actions
}

func newTestAgent(t interface{ Fatalf(string, ...any) }, id string, colour Colour, o Orientation) *Actor {
	a, err := NewActor(id, colour, o, &stubMind{}, FullAppendices())
	if err != nil {
		t.Fatalf("new actor: %v", err)
	}
	return a
}
