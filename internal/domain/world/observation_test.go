package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeObservations(t *testing.T) {
	first := Observation{
		Center:    Coord{X: 0, Y: 0},
		Locations: []LocationAppearance{{Coord: Coord{X: 0, Y: 0}}},
		Results:   []ActionResult{NewActionResult(Success, NewSpeakAction("a1", "hi", "a2"))},
	}
	second := Observation{
		Center:    Coord{X: 0, Y: 1},
		Locations: []LocationAppearance{{Coord: Coord{X: 0, Y: 1}}, {Coord: Coord{X: 1, Y: 1}}},
		Results:   []ActionResult{NewActionResult(Failure, NewMoveAction("a1"))},
	}

	t.Run("none", func(t *testing.T) {
		_, err := MergeObservations(nil)
		require.ErrorIs(t, err, ErrNoObservations)
	})

	t.Run("one passes through", func(t *testing.T) {
		got, err := MergeObservations([]Observation{first})
		require.NoError(t, err)
		require.Equal(t, first, got)
	})

	t.Run("two keep the second view and concatenate results", func(t *testing.T) {
		got, err := MergeObservations([]Observation{first, second})
		require.NoError(t, err)
		require.Equal(t, second.Locations, got.Locations)
		require.Equal(t, second.Center, got.Center)
		require.Equal(t, []ActionResult{first.Results[0], second.Results[0]}, got.Results)
	})

	t.Run("three or more", func(t *testing.T) {
		_, err := MergeObservations([]Observation{first, second, first})
		require.ErrorIs(t, err, ErrTooManyObservations)
		_, err = MergeObservations([]Observation{first, second, first, second})
		require.ErrorIs(t, err, ErrTooManyObservations)
	})
}

func TestObservation_Self(t *testing.T) {
	me := ActorAppearance{ID: "a1", Colour: Green, Orientation: East}
	o := Observation{
		Center:    Coord{X: 1, Y: 1},
		Locations: []LocationAppearance{{Coord: Coord{X: 1, Y: 1}, Actor: &me}},
	}
	got, ok := o.Self()
	require.True(t, ok)
	require.Equal(t, me, got)

	_, ok = Observation{Center: Coord{X: 2, Y: 2}}.Self()
	require.False(t, ok)
}

func TestValidateActions(t *testing.T) {
	require.NoError(t, ValidateActions(nil))
	require.NoError(t, ValidateActions([]Action{NewMoveAction(""), NewBroadcastAction("", "hello")}))
	require.ErrorIs(t, ValidateActions([]Action{{Kind: "teleport"}}), ErrUnsupportedAction)
	require.ErrorIs(t, ValidateActions([]Action{NewMoveAction(""), NewCleanAction("")}), ErrTooManyActions)
	require.ErrorIs(t, ValidateActions([]Action{NewSpeakAction("", "a", "b"), NewBroadcastAction("", "c")}), ErrTooManyActions)
}
