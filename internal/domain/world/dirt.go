package world

import (
	"fmt"

	"github.com/google/uuid"
)

type Dirt struct {
	ID     string `json:"id"`
	Colour Colour `json:"colour"`
}

func NewDirt(colour Colour) (*Dirt, error) {
	return NewDirtWithID(uuid.NewString(), colour)
}

func NewDirtWithID(id string, colour Colour) (*Dirt, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: dirt id is empty", ErrInvalidArgument)
	}
	if !colour.IsDirtColour() {
		return nil, fmt.Errorf("%w: %q is not a dirt colour", ErrInvalidArgument, colour)
	}
	return &Dirt{ID: id, Colour: colour}, nil
}

type DirtAppearance struct {
	ID     string `json:"id"`
	Colour Colour `json:"colour"`
}

func (d *Dirt) Appearance() DirtAppearance {
	return DirtAppearance{ID: d.ID, Colour: d.Colour}
}
