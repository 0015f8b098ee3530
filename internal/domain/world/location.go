package world

import "fmt"

// Location is a single grid cell. It is mutated only through Ambient.
type Location struct {
	coord Coord
	actor *Actor
	dirt  *Dirt
}

func newLocation(coord Coord) *Location {
	return &Location{coord: coord}
}

func (l *Location) Coord() Coord {
	return l.coord
}

func (l *Location) Actor() (*Actor, bool) {
	return l.actor, l.actor != nil
}

func (l *Location) Dirt() (*Dirt, bool) {
	return l.dirt, l.dirt != nil
}

func (l *Location) HasActor() bool {
	return l.actor != nil
}

func (l *Location) HasDirt() bool {
	return l.dirt != nil
}

func (l *Location) addActor(a *Actor) error {
	if l.actor != nil {
		return fmt.Errorf("%w: there is already an actor at %s", ErrInvalidOperation, l.coord)
	}
	l.actor = a
	return nil
}

func (l *Location) popActor() (*Actor, bool) {
	a := l.actor
	l.actor = nil
	return a, a != nil
}

func (l *Location) addDirt(d *Dirt) error {
	if l.dirt != nil {
		return fmt.Errorf("%w: there is already a dirt at %s", ErrInvalidOperation, l.coord)
	}
	l.dirt = d
	return nil
}

func (l *Location) removeDirt() (*Dirt, bool) {
	d := l.dirt
	l.dirt = nil
	return d, d != nil
}

type LocationAppearance struct {
	Coord Coord            `json:"coord"`
	Actor *ActorAppearance `json:"actor,omitempty"`
	Dirt  *DirtAppearance  `json:"dirt,omitempty"`
}

func (l *Location) Appearance() LocationAppearance {
	out := LocationAppearance{Coord: l.coord}
	if l.actor != nil {
		a := l.actor.Appearance()
		out.Actor = &a
	}
	if l.dirt != nil {
		d := l.dirt.Appearance()
		out.Dirt = &d
	}
	return out
}
