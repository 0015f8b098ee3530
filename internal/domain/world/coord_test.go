package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrientation_FourTurnsReturnToStart(t *testing.T) {
	for _, start := range []Orientation{North, East, South, West} {
		for _, d := range []Direction{Left, Right} {
			o := start
			for i := 0; i < 4; i++ {
				var err error
				o, err = o.Rotate(d)
				require.NoError(t, err)
			}
			require.Equal(t, start, o, "start=%s direction=%s", start, d)
		}
	}
}

func TestOrientation_RotationTable(t *testing.T) {
	require.Equal(t, East, North.Right())
	require.Equal(t, West, North.Left())
	require.Equal(t, South, East.Right())
	require.Equal(t, North, West.Right())
}

func TestOrientation_RotateRejectsInvalidDirection(t *testing.T) {
	_, err := North.Rotate(Direction("up"))
	require.ErrorIs(t, err, ErrInvalidDirection)
}

func TestCoord_ForwardFollowsOrientation(t *testing.T) {
	c := Coord{X: 1, Y: 1}
	require.Equal(t, Coord{X: 1, Y: 2}, c.Forward(North))
	require.Equal(t, Coord{X: 1, Y: 0}, c.Forward(South))
	require.Equal(t, Coord{X: 2, Y: 1}, c.Forward(East))
	require.Equal(t, Coord{X: 0, Y: 1}, c.Forward(West))
	require.Equal(t, Coord{X: 0, Y: 2}, c.ForwardLeft(North))
	require.Equal(t, Coord{X: 2, Y: 2}, c.ForwardRight(North))
}

func TestParse_RejectsUnknownValues(t *testing.T) {
	_, err := ParseOrientation("up")
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseColour("purple")
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseDirection("back")
	require.ErrorIs(t, err, ErrInvalidDirection)

	o, err := ParseOrientation(" North ")
	require.NoError(t, err)
	require.Equal(t, North, o)
}

func TestColour_CanClean(t *testing.T) {
	require.True(t, White.CanClean(Green))
	require.True(t, White.CanClean(Orange))
	require.True(t, Green.CanClean(Green))
	require.False(t, Green.CanClean(Orange))
	require.False(t, Orange.CanClean(Green))
	require.False(t, User.CanClean(Green))
}
