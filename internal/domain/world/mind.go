package world

// Mind is the decision making part of an actor. The actor drives it in a
// fixed order every cycle: Perceive, Revise, Decide, then Execute.
type Mind interface {
	Perceive(observation Observation, messages []Message)
	Revise()
	Decide()
	Execute() []Action
}

// Referencer is implemented by minds that can name the implementation they
// were built from, so a snapshot can rebuild them.
type Referencer interface {
	Reference() string
}
