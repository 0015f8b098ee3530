package world

import (
	"fmt"
	"sort"
)

// Ambient owns the grid and is the only authority over where actors and
// dirts are placed. ID lookups scan the grid; grids stay small.
type Ambient struct {
	size  int
	grid  map[Coord]*Location
	order []Coord
}

func NewAmbient(size int) (*Ambient, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: grid size must be positive, got %d", ErrInvalidArgument, size)
	}
	a := &Ambient{
		size:  size,
		grid:  make(map[Coord]*Location, size*size),
		order: make([]Coord, 0, size*size),
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			c := Coord{X: x, Y: y}
			a.grid[c] = newLocation(c)
			a.order = append(a.order, c)
		}
	}
	return a, nil
}

func (a *Ambient) Size() int {
	return a.size
}

// Coords returns every grid coordinate in iteration order (x-major).
func (a *Ambient) Coords() []Coord {
	out := make([]Coord, len(a.order))
	copy(out, a.order)
	return out
}

func (a *Ambient) Contains(c Coord) bool {
	_, ok := a.grid[c]
	return ok
}

func (a *Ambient) Location(c Coord) (*Location, bool) {
	l, ok := a.grid[c]
	return l, ok
}

func (a *Ambient) ActorIDs() []string {
	ids := []string{}
	for _, c := range a.order {
		if actor, ok := a.grid[c].Actor(); ok {
			ids = append(ids, actor.ID())
		}
	}
	return ids
}

func (a *Ambient) Actors() []*Actor {
	out := []*Actor{}
	for _, c := range a.order {
		if actor, ok := a.grid[c].Actor(); ok {
			out = append(out, actor)
		}
	}
	return out
}

func (a *Ambient) ActorByID(id string) (*Actor, bool) {
	c, ok := a.ActorCoordByID(id)
	if !ok {
		return nil, false
	}
	return a.grid[c].Actor()
}

func (a *Ambient) ActorByCoord(c Coord) (*Actor, bool) {
	l, ok := a.grid[c]
	if !ok {
		return nil, false
	}
	return l.Actor()
}

func (a *Ambient) ActorCoordByID(id string) (Coord, bool) {
	for _, c := range a.order {
		if actor, ok := a.grid[c].Actor(); ok && actor.ID() == id {
			return c, true
		}
	}
	return Coord{}, false
}

func (a *Ambient) AddActorToLocation(c Coord, actor *Actor) error {
	if actor == nil {
		return fmt.Errorf("%w: the actor cannot be nil", ErrInvalidArgument)
	}
	l, ok := a.grid[c]
	if !ok {
		return fmt.Errorf("%w: %s is outside the grid", ErrInvalidOperation, c)
	}
	if existing, placed := a.ActorCoordByID(actor.ID()); placed {
		return fmt.Errorf("%w: actor %s is already at %s", ErrInvalidOperation, actor.ID(), existing)
	}
	return l.addActor(actor)
}

func (a *Ambient) PopActorByCoord(c Coord) (*Actor, bool) {
	l, ok := a.grid[c]
	if !ok {
		return nil, false
	}
	return l.popActor()
}

func (a *Ambient) MoveActor(from, to Coord) error {
	if from == to {
		return fmt.Errorf("%w: the destination %s is the same as the origin", ErrInvalidOperation, to)
	}
	origin, ok := a.grid[from]
	if !ok || !origin.HasActor() {
		return fmt.Errorf("%w: there is no actor at the origin %s", ErrInvalidOperation, from)
	}
	dest, ok := a.grid[to]
	if !ok {
		return fmt.Errorf("%w: the destination %s is outside the grid", ErrInvalidOperation, to)
	}
	if dest.HasActor() {
		return fmt.Errorf("%w: there is already an actor at the destination %s", ErrInvalidOperation, to)
	}
	actor, _ := origin.popActor()
	return dest.addActor(actor)
}

func (a *Ambient) TurnActor(c Coord, d Direction) error {
	actor, ok := a.ActorByCoord(c)
	if !ok {
		return fmt.Errorf("%w: there is no actor at %s", ErrInvalidOperation, c)
	}
	return actor.Turn(d)
}

func (a *Ambient) DirtIDs() []string {
	ids := []string{}
	for _, c := range a.order {
		if d, ok := a.grid[c].Dirt(); ok {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

func (a *Ambient) DirtByID(id string) (*Dirt, bool) {
	c, ok := a.DirtCoordByID(id)
	if !ok {
		return nil, false
	}
	return a.grid[c].Dirt()
}

func (a *Ambient) DirtByCoord(c Coord) (*Dirt, bool) {
	l, ok := a.grid[c]
	if !ok {
		return nil, false
	}
	return l.Dirt()
}

func (a *Ambient) DirtCoordByID(id string) (Coord, bool) {
	for _, c := range a.order {
		if d, ok := a.grid[c].Dirt(); ok && d.ID == id {
			return c, true
		}
	}
	return Coord{}, false
}

func (a *Ambient) AddDirtToLocation(c Coord, d *Dirt) error {
	if d == nil {
		return fmt.Errorf("%w: the dirt cannot be nil", ErrInvalidArgument)
	}
	l, ok := a.grid[c]
	if !ok {
		return fmt.Errorf("%w: %s is outside the grid", ErrInvalidOperation, c)
	}
	if existing, placed := a.DirtCoordByID(d.ID); placed {
		return fmt.Errorf("%w: dirt %s is already at %s", ErrInvalidOperation, d.ID, existing)
	}
	return l.addDirt(d)
}

func (a *Ambient) CleanDirtByCoord(c Coord) error {
	l, ok := a.grid[c]
	if !ok || !l.HasDirt() {
		return fmt.Errorf("%w: there is no dirt at %s", ErrInvalidOperation, c)
	}
	l.removeDirt()
	return nil
}

// VisibleFrom returns what an actor at c facing o perceives: its own cell,
// the cells to its left and right and the three cells in front of them.
// Cells outside the grid are skipped.
func (a *Ambient) VisibleFrom(c Coord, o Orientation) []LocationAppearance {
	candidates := []Coord{
		c,
		c.Left(o),
		c.Right(o),
		c.Forward(o),
		c.ForwardLeft(o),
		c.ForwardRight(o),
	}
	out := make([]LocationAppearance, 0, len(candidates))
	for _, candidate := range candidates {
		if l, ok := a.grid[candidate]; ok {
			out = append(out, l.Appearance())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Coord.X != out[j].Coord.X {
			return out[i].Coord.X < out[j].Coord.X
		}
		return out[i].Coord.Y < out[j].Coord.Y
	})
	return out
}
