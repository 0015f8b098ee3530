package world

import (
	"fmt"
	"strings"
)

type ActionKind string

const (
	ActionMove      ActionKind = "move"
	ActionTurn      ActionKind = "turn"
	ActionClean     ActionKind = "clean"
	ActionDropDirt  ActionKind = "drop_dirt"
	ActionIdle      ActionKind = "idle"
	ActionSpeak     ActionKind = "speak"
	ActionBroadcast ActionKind = "broadcast"
)

func SupportedActionKinds() []ActionKind {
	return []ActionKind{
		ActionMove,
		ActionTurn,
		ActionClean,
		ActionDropDirt,
		ActionIdle,
		ActionSpeak,
		ActionBroadcast,
	}
}

func (k ActionKind) IsPhysical() bool {
	switch k {
	case ActionMove, ActionTurn, ActionClean, ActionDropDirt, ActionIdle:
		return true
	default:
		return false
	}
}

func (k ActionKind) IsCommunicative() bool {
	return k == ActionSpeak || k == ActionBroadcast
}

// Action is an immutable request produced by a mind. Only the fields
// relevant to Kind are set.
type Action struct {
	ActorID    string     `json:"actor_id"`
	Kind       ActionKind `json:"kind"`
	Direction  Direction  `json:"direction,omitempty"`
	DirtColour Colour     `json:"dirt_colour,omitempty"`
	Message    string     `json:"message,omitempty"`
	Recipients []string   `json:"recipients,omitempty"`
}

func NewMoveAction(actorID string) Action {
	return Action{ActorID: actorID, Kind: ActionMove}
}

func NewTurnAction(actorID string, d Direction) Action {
	return Action{ActorID: actorID, Kind: ActionTurn, Direction: d}
}

func NewCleanAction(actorID string) Action {
	return Action{ActorID: actorID, Kind: ActionClean}
}

func NewDropDirtAction(actorID string, colour Colour) Action {
	return Action{ActorID: actorID, Kind: ActionDropDirt, DirtColour: colour}
}

func NewIdleAction(actorID string) Action {
	return Action{ActorID: actorID, Kind: ActionIdle}
}

func NewSpeakAction(actorID, message string, recipients ...string) Action {
	return Action{ActorID: actorID, Kind: ActionSpeak, Message: message, Recipients: append([]string(nil), recipients...)}
}

func NewBroadcastAction(actorID, message string) Action {
	return Action{ActorID: actorID, Kind: ActionBroadcast, Message: message}
}

func (a Action) String() string {
	var b strings.Builder
	b.WriteString(string(a.Kind))
	b.WriteString("(")
	b.WriteString(a.ActorID)
	switch a.Kind {
	case ActionTurn:
		b.WriteString(", " + string(a.Direction))
	case ActionDropDirt:
		b.WriteString(", " + string(a.DirtColour))
	case ActionSpeak:
		b.WriteString(", " + strings.Join(a.Recipients, "|"))
	}
	b.WriteString(")")
	return b.String()
}

// ValidateActions checks a mind's output before it is routed to actuators:
// every action has a known kind and there is at most one physical and one
// communicative action.
func ValidateActions(actions []Action) error {
	physical, communicative := 0, 0
	for _, a := range actions {
		switch {
		case a.Kind.IsPhysical():
			physical++
		case a.Kind.IsCommunicative():
			communicative++
		default:
			return fmt.Errorf("%w: %q", ErrUnsupportedAction, a.Kind)
		}
	}
	if physical > 1 || communicative > 1 {
		return fmt.Errorf("%w: got %d physical and %d communicative", ErrTooManyActions, physical, communicative)
	}
	return nil
}
