package world

import (
	"fmt"
	"strings"
)

type Colour string

const (
	Green  Colour = "green"
	Orange Colour = "orange"
	White  Colour = "white"
	// User marks actors driven by a user rather than a cleaning agent.
	User Colour = "user"
)

func ParseColour(raw string) (Colour, error) {
	c := Colour(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case Green, Orange, White, User:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown colour %q", ErrInvalidArgument, raw)
	}
}

func (c Colour) IsActorColour() bool {
	return c == Green || c == Orange || c == White || c == User
}

func (c Colour) IsDirtColour() bool {
	return c == Green || c == Orange
}

// CanClean reports whether an actor of colour c may clean dirt of colour dirt.
func (c Colour) CanClean(dirt Colour) bool {
	switch c {
	case White:
		return dirt.IsDirtColour()
	case Green, Orange:
		return c == dirt
	default:
		return false
	}
}
