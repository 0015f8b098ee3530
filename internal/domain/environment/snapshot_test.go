package environment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"vacuumworld/internal/domain/mind"
	"vacuumworld/internal/domain/world"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	registry := mind.DefaultRegistry()
	env := newEnv(t, 4)

	agentMind, err := registry.New(mind.RefReactive)
	require.NoError(t, err)
	agent, err := world.NewCleaningAgent(world.White, world.East, agentMind)
	require.NoError(t, err)
	require.NoError(t, env.AddActor(world.Coord{X: 1, Y: 2}, agent))

	userMind, err := registry.New(mind.RefRandom)
	require.NoError(t, err)
	user, err := world.NewUser(world.South, userMind)
	require.NoError(t, err)
	require.NoError(t, env.AddActor(world.Coord{X: 3, Y: 0}, user))

	dirt, err := world.NewDirt(world.Orange)
	require.NoError(t, err)
	require.NoError(t, env.AddDirt(world.Coord{X: 1, Y: 2}, dirt))

	raw, err := env.ToJSON()
	require.NoError(t, err)
	parsed, err := ParseSnapshot(raw)
	require.NoError(t, err)

	restored, err := FromSnapshot(parsed, DefaultConfig(), registry)
	require.NoError(t, err)
	if diff := cmp.Diff(env.Snapshot(), restored.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	restoredUser, ok := restored.ActorByCoord(world.Coord{X: 3, Y: 0})
	require.True(t, ok)
	require.True(t, restoredUser.IsUser())
	_, canTalk := restoredUser.CommunicativeActuator()
	require.False(t, canTalk)
	require.NotEqual(t, user.ID(), restoredUser.ID())
}

func TestFromSnapshot_Rejects(t *testing.T) {
	registry := mind.DefaultRegistry()
	tests := []struct {
		name string
		snap Snapshot
		want error
	}{
		{name: "size out of bounds", snap: Snapshot{Size: 20}, want: ErrGridSizeOutOfBounds},
		{name: "coord outside grid", snap: Snapshot{Size: 3, Locations: []LocationSnapshot{{Coord: world.Coord{X: 3, Y: 0}}}}, want: ErrInvalidSnapshot},
		{name: "duplicate coord", snap: Snapshot{Size: 3, Locations: []LocationSnapshot{{}, {}}}, want: ErrInvalidSnapshot},
		{name: "unknown mind", snap: Snapshot{Size: 3, Locations: []LocationSnapshot{{
			Actor: &ActorSnapshot{Colour: world.Green, Orientation: world.North, Mind: "telepathic"},
		}}}, want: ErrInvalidSnapshot},
		{name: "white dirt", snap: Snapshot{Size: 3, Locations: []LocationSnapshot{{
			Dirt: &DirtSnapshot{Colour: world.White},
		}}}, want: ErrInvalidSnapshot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSnapshot(tt.snap, DefaultConfig(), registry)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := FromSnapshot(Snapshot{Size: 3}, DefaultConfig(), nil)
	require.ErrorIs(t, err, world.ErrInvalidArgument)
	_, err = ParseSnapshot([]byte("{"))
	require.ErrorIs(t, err, ErrInvalidSnapshot)
}

type anonymousMind struct{}

func (anonymousMind) Perceive(world.Observation, []world.Message) {}
func (anonymousMind) Revise()                                    {}
func (anonymousMind) Decide()                                    {}
func (anonymousMind) Execute() []world.Action                    { return nil }

func TestToJSON_RejectsUnnamedMind(t *testing.T) {
	env := newEnv(t, 3)
	agent, err := world.NewCleaningAgent(world.Green, world.North, anonymousMind{})
	require.NoError(t, err)
	require.NoError(t, env.AddActor(world.Coord{X: 1, Y: 1}, agent))

	_, err = env.ToJSON()
	require.ErrorIs(t, err, ErrInvalidSnapshot)
	require.Equal(t, "", env.Snapshot().Locations[4].Actor.Mind)
}
