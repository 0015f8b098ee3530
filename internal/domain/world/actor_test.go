package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewActor_ValidatesArguments(t *testing.T) {
	_, err := NewActor("", Green, North, &stubMind{}, Appendices{})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewActor("a", Colour("blue"), North, &stubMind{}, Appendices{})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewActor("a", Green, Orientation("up"), &stubMind{}, Appendices{})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewActor("a", Green, North, nil, Appendices{})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCleaningAgent(User, North, &stubMind{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewUser_HasNoCommunicativeActuator(t *testing.T) {
	u, err := NewUser(South, &stubMind{})
	require.NoError(t, err)
	require.True(t, u.IsUser())
	_, ok := u.CommunicativeActuator()
	require.False(t, ok)
	_, ok = u.PhysicalActuator()
	require.True(t, ok)
}

func TestActor_CycleRunsMindInOrderAndRoutesActions(t *testing.T) {
	m := &stubMind{actions: []Action{NewMoveAction(""), NewBroadcastAction("", "hello")}}
	a, err := NewActor("a1", Green, North, m, FullAppendices())
	require.NoError(t, err)

	obs, _ := a.ObservationSensor()
	obs.Sink(Observation{Center: Coord{X: 0, Y: 0}})
	ears, _ := a.ListeningSensor()
	ears.Sink(Message{SenderID: "a2", Content: "hi"})

	require.NoError(t, a.Cycle())
	require.Equal(t, []string{"perceive", "revise", "decide", "execute"}, m.calls)
	require.Equal(t, []Message{{SenderID: "a2", Content: "hi"}}, m.messages[0])

	physical, _ := a.PhysicalActuator()
	moves := physical.SourceAll()
	require.Len(t, moves, 1)
	require.Equal(t, ActionMove, moves[0].Kind)
	require.Equal(t, "a1", moves[0].ActorID)

	communicative, _ := a.CommunicativeActuator()
	talks := communicative.SourceAll()
	require.Len(t, talks, 1)
	require.Equal(t, ActionBroadcast, talks[0].Kind)
}

func TestActor_CycleFailsWithoutObservationSensor(t *testing.T) {
	a, err := NewActor("a1", Green, North, &stubMind{}, Appendices{PhysicalActuator: NewPhysicalActuator()})
	require.NoError(t, err)
	require.ErrorIs(t, a.Cycle(), ErrMissingCapability)
}

func TestActor_CycleWithoutListeningSensorPerceivesNoMessages(t *testing.T) {
	m := &stubMind{}
	a, err := NewActor("a1", Green, North, m, Appendices{ObservationSensor: NewObservationSensor()})
	require.NoError(t, err)
	obs, _ := a.ObservationSensor()
	obs.Sink(Observation{})

	require.NoError(t, a.Cycle())
	require.NotNil(t, m.messages[0])
	require.Empty(t, m.messages[0])
}

func TestActor_CycleMergesTwoObservations(t *testing.T) {
	m := &stubMind{}
	a := newTestAgentWithMind(t, m)
	obs, _ := a.ObservationSensor()
	obs.Sink(Observation{Center: Coord{X: 0, Y: 0}, Results: []ActionResult{NewActionResult(Success, NewIdleAction("a1"))}})
	obs.Sink(Observation{Center: Coord{X: 0, Y: 1}, Results: []ActionResult{NewActionResult(Failure, NewMoveAction("a1"))}})

	require.NoError(t, a.Cycle())
	require.Equal(t, Coord{X: 0, Y: 1}, m.observed[0].Center)
	require.Len(t, m.observed[0].Results, 2)
}

func TestActor_CycleRejectsThreeObservations(t *testing.T) {
	a := newTestAgentWithMind(t, &stubMind{})
	obs, _ := a.ObservationSensor()
	obs.SinkAll([]Observation{{}, {}, {}})
	require.ErrorIs(t, a.Cycle(), ErrTooManyObservations)
}

func TestActor_CycleRejectsUnsupportedAction(t *testing.T) {
	a := newTestAgentWithMind(t, &stubMind{actions: []Action{{Kind: "teleport"}}})
	obs, _ := a.ObservationSensor()
	obs.Sink(Observation{})
	require.ErrorIs(t, a.Cycle(), ErrUnsupportedAction)
}

func TestActor_CycleFailsWhenRoutingToMissingActuator(t *testing.T) {
	u, err := NewUser(North, &stubMind{actions: []Action{NewBroadcastAction("", "hey")}})
	require.NoError(t, err)
	obs, _ := u.ObservationSensor()
	obs.Sink(Observation{})
	require.ErrorIs(t, u.Cycle(), ErrMissingCapability)
}

func TestActor_MissingActuatorQueuesNothing(t *testing.T) {
	u, err := NewUser(North, &stubMind{actions: []Action{NewTurnAction("", Left), NewBroadcastAction("", "hey")}})
	require.NoError(t, err)
	obs, _ := u.ObservationSensor()
	obs.Sink(Observation{})
	require.ErrorIs(t, u.Cycle(), ErrMissingCapability)
	require.Empty(t, u.PendingActions())
}

func TestActor_ResetDropsActionsAndObservations(t *testing.T) {
	a := newTestAgent(t, "a1", Green, North)
	p, _ := a.PhysicalActuator()
	require.NoError(t, p.Sink(NewMoveAction("a1")))
	obs, _ := a.ObservationSensor()
	obs.Sink(Observation{})
	l, _ := a.ListeningSensor()
	l.Sink(Message{SenderID: "b", Content: "hi"})

	a.Reset()
	require.Empty(t, a.PendingActions())
	require.Equal(t, 0, obs.Pending())
	require.Len(t, l.SourceAll(), 1)
}

func TestActuators_RejectWrongFamily(t *testing.T) {
	require.ErrorIs(t, NewPhysicalActuator().Sink(NewBroadcastAction("a", "x")), ErrUnsupportedAction)
	require.ErrorIs(t, NewCommunicativeActuator().Sink(NewMoveAction("a")), ErrUnsupportedAction)
}

func newTestAgentWithMind(t *testing.T, m Mind) *Actor {
	t.Helper()
	a, err := NewActor("a1", Green, North, m, FullAppendices())
	require.NoError(t, err)
	return a
}
