package world

import (
	"fmt"
	"strings"
)

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Forward is the neighbouring coordinate an actor facing o would step into.
// North grows Y.
func (c Coord) Forward(o Orientation) Coord {
	dx, dy := o.delta()
	return c.Add(dx, dy)
}

func (c Coord) Left(o Orientation) Coord {
	return c.Forward(o.Left())
}

func (c Coord) Right(o Orientation) Coord {
	return c.Forward(o.Right())
}

func (c Coord) ForwardLeft(o Orientation) Coord {
	return c.Forward(o).Forward(o.Left())
}

func (c Coord) ForwardRight(o Orientation) Coord {
	return c.Forward(o).Forward(o.Right())
}

type Orientation string

const (
	North Orientation = "north"
	East  Orientation = "east"
	South Orientation = "south"
	West  Orientation = "west"
)

var orientationCycle = []Orientation{North, East, South, West}

func ParseOrientation(raw string) (Orientation, error) {
	o := Orientation(strings.ToLower(strings.TrimSpace(raw)))
	if !o.Valid() {
		return "", fmt.Errorf("%w: unknown orientation %q", ErrInvalidArgument, raw)
	}
	return o, nil
}

func (o Orientation) Valid() bool {
	return o.index() >= 0
}

func (o Orientation) index() int {
	for i, candidate := range orientationCycle {
		if candidate == o {
			return i
		}
	}
	return -1
}

func (o Orientation) Left() Orientation {
	i := o.index()
	if i < 0 {
		return o
	}
	return orientationCycle[(i+len(orientationCycle)-1)%len(orientationCycle)]
}

func (o Orientation) Right() Orientation {
	i := o.index()
	if i < 0 {
		return o
	}
	return orientationCycle[(i+1)%len(orientationCycle)]
}

func (o Orientation) delta() (int, int) {
	switch o {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

func ParseDirection(raw string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(raw)))
	if d != Left && d != Right {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, raw)
	}
	return d, nil
}

// Rotate applies a turn in direction d. Anything other than Left or Right fails.
func (o Orientation) Rotate(d Direction) (Orientation, error) {
	if !o.Valid() {
		return o, fmt.Errorf("%w: unknown orientation %q", ErrInvalidArgument, o)
	}
	switch d {
	case Left:
		return o.Left(), nil
	case Right:
		return o.Right(), nil
	default:
		return o, fmt.Errorf("%w: %q", ErrInvalidDirection, d)
	}
}
