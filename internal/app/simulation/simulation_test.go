package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"vacuumworld/internal/app/ports"
	"vacuumworld/internal/domain/environment"
	"vacuumworld/internal/domain/world"
)

const twoAgentSnapshot = `{
  "size": 3,
  "locations": [
    {"coord": {"x": 0, "y": 0}, "actor": {"colour": "green", "orientation": "north", "mind": "idle"}},
    {"coord": {"x": 2, "y": 2}, "actor": {"colour": "user", "orientation": "south", "mind": "idle"}, "dirt": {"colour": "orange"}}
  ]
}`

func newTestSimulation() (*Simulation, *stubCycleLog, *stubMetrics, *stubPublisher) {
	log := &stubCycleLog{}
	metrics := &stubMetrics{}
	pub := &stubPublisher{}
	sim := &Simulation{
		TxManager: &stubTxManager{},
		Snapshots: newStubSnapshotRepo(),
		CycleLog:  log,
		Metrics:   metrics,
		Publisher: pub,
		Now:       func() time.Time { return time.Unix(1700000000, 0).UTC() },
	}
	return sim, log, metrics, pub
}

func TestSimulation_NotReadyBeforeLoad(t *testing.T) {
	sim, _, _, _ := newTestSimulation()
	if _, err := sim.Cycle(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Fatalf("cycle err=%v want ErrNotReady", err)
	}
	if _, err := sim.Snapshot(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Fatalf("snapshot err=%v want ErrNotReady", err)
	}
	if _, err := sim.Save(context.Background(), "empty"); !errors.Is(err, ErrNotReady) {
		t.Fatalf("save err=%v want ErrNotReady", err)
	}
}

func TestSimulation_LoadCycleAndHistory(t *testing.T) {
	sim, log, metrics, pub := newTestSimulation()
	ctx := context.Background()

	loaded, err := sim.Load(ctx, []byte(twoAgentSnapshot))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Tick != 0 || loaded.Snapshot.Size != 3 {
		t.Fatalf("unexpected load response: %+v", loaded)
	}

	out, err := sim.Cycle(ctx)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if out.Tick != 1 || len(out.Results) != 2 {
		t.Fatalf("got tick=%d results=%d want tick=1 results=2", out.Tick, len(out.Results))
	}
	if len(log.records) != 2 {
		t.Fatalf("cycle log records got=%d want=2", len(log.records))
	}
	if metrics.outcomes[world.Success] != 2 {
		t.Fatalf("success outcomes got=%d want=2", metrics.outcomes[world.Success])
	}
	if got := pub.ticks; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("published ticks got=%v want=[0 1]", got)
	}

	actorID := log.records[0].ActorID
	hist, err := sim.History(ctx, HistoryRequest{ActorID: actorID})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist.Entries) != 1 || hist.Entries[0].Kind != string(world.ActionIdle) || hist.Entries[0].Outcome != string(world.Success) {
		t.Fatalf("unexpected history: %+v", hist)
	}
	if _, err := sim.History(ctx, HistoryRequest{ActorID: " "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("blank actor err=%v want ErrInvalidRequest", err)
	}
}

func TestSimulation_LoadRejectsInvalidSnapshots(t *testing.T) {
	sim, _, _, _ := newTestSimulation()
	ctx := context.Background()
	for _, raw := range []string{
		"",
		"{",
		`{"size": 2, "locations": []}`,
		`{"size": 3, "locations": [{"coord": {"x": 9, "y": 9}}]}`,
	} {
		if _, err := sim.Load(ctx, []byte(raw)); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("load %q err=%v want ErrInvalidRequest", raw, err)
		}
	}

	sim.Validator = stubValidator{err: ports.ErrInvalidPayload}
	_, err := sim.Load(ctx, []byte(twoAgentSnapshot))
	if !errors.Is(err, ErrInvalidRequest) || !errors.Is(err, ports.ErrInvalidPayload) {
		t.Fatalf("validator err=%v", err)
	}
}

func TestSimulation_SaveAndRestore(t *testing.T) {
	sim, _, _, _ := newTestSimulation()
	ctx := context.Background()
	if _, err := sim.Load(ctx, []byte(twoAgentSnapshot)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := sim.Cycle(ctx); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	saved, err := sim.Save(ctx, "after-one")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Tick != 1 {
		t.Fatalf("saved tick got=%d want=1", saved.Tick)
	}
	if _, err := sim.Save(ctx, "../etc/passwd"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("bad name err=%v want ErrInvalidRequest", err)
	}

	before, _ := sim.Snapshot(ctx)
	restored, err := sim.Restore(ctx, "after-one")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Tick != 0 {
		t.Fatalf("restored tick got=%d want=0", restored.Tick)
	}
	if len(restored.Snapshot.Locations) != len(before.Snapshot.Locations) {
		t.Fatalf("restored snapshot differs: got=%+v want=%+v", restored.Snapshot, before.Snapshot)
	}
	if _, err := sim.Restore(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("missing err=%v want ErrNotFound", err)
	}

	list, err := sim.List(ctx)
	if err != nil || len(list) != 1 || list[0].Name != "after-one" {
		t.Fatalf("list got=%+v err=%v", list, err)
	}
}

func TestSimulation_CycleFailureIsCounted(t *testing.T) {
	sim, _, metrics, _ := newTestSimulation()
	env, err := environment.New(3, environment.DefaultConfig())
	if err != nil {
		t.Fatalf("new env: %v", err)
	}
	blind, err := world.NewActor("blind", world.Green, world.North, idleMind{}, world.Appendices{})
	if err != nil {
		t.Fatalf("new actor: %v", err)
	}
	if err := env.AddActor(world.Coord{X: 1, Y: 1}, blind); err != nil {
		t.Fatalf("add actor: %v", err)
	}
	sim.Attach(env)

	if _, err := sim.Cycle(context.Background()); !errors.Is(err, world.ErrMissingCapability) {
		t.Fatalf("cycle err=%v want ErrMissingCapability", err)
	}
	if metrics.failures != 1 {
		t.Fatalf("cycle failures got=%d want=1", metrics.failures)
	}
}

func TestSimulation_PartialCycleIsRecorded(t *testing.T) {
	sim, log, metrics, pub := newTestSimulation()
	env, err := environment.New(3, environment.DefaultConfig())
	if err != nil {
		t.Fatalf("new env: %v", err)
	}
	mover, err := world.NewActor("mover", world.Green, world.North, fixedMind{world.NewMoveAction("")}, world.FullAppendices())
	if err != nil {
		t.Fatalf("new actor: %v", err)
	}
	user, err := world.NewUser(world.North, fixedMind{world.NewBroadcastAction("", "hey")})
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if err := env.AddActor(world.Coord{X: 0, Y: 0}, mover); err != nil {
		t.Fatalf("add mover: %v", err)
	}
	if err := env.AddActor(world.Coord{X: 2, Y: 2}, user); err != nil {
		t.Fatalf("add user: %v", err)
	}
	sim.Attach(env)
	pub.ticks = nil

	if _, err := sim.Cycle(context.Background()); !errors.Is(err, world.ErrMissingCapability) {
		t.Fatalf("cycle err=%v want ErrMissingCapability", err)
	}
	if metrics.failures != 1 {
		t.Fatalf("cycle failures got=%d want=1", metrics.failures)
	}
	if len(pub.ticks) != 1 || pub.ticks[0] != 1 {
		t.Fatalf("published ticks got=%v want=[1]", pub.ticks)
	}
	if len(log.records) != 1 || log.records[0].ActorID != "mover" || log.records[0].Tick != 1 {
		t.Fatalf("cycle log got=%+v", log.records)
	}
}

func TestSimulation_SaveRejectsUnnamedMind(t *testing.T) {
	sim, _, _, _ := newTestSimulation()
	env, err := environment.New(3, environment.DefaultConfig())
	if err != nil {
		t.Fatalf("new env: %v", err)
	}
	agent, err := world.NewCleaningAgent(world.Green, world.North, idleMind{})
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	if err := env.AddActor(world.Coord{X: 1, Y: 1}, agent); err != nil {
		t.Fatalf("add actor: %v", err)
	}
	sim.Attach(env)

	if _, err := sim.Save(context.Background(), "anon"); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("save err=%v want ErrConflict", err)
	}
	if _, err := sim.Snapshots.Load(context.Background(), "anon"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("load err=%v want ErrNotFound", err)
	}
}

func TestSimulation_CycleLogErrorIsReturned(t *testing.T) {
	sim, log, _, _ := newTestSimulation()
	log.err = errBoom
	if _, err := sim.Load(context.Background(), []byte(twoAgentSnapshot)); err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := sim.Cycle(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("cycle err=%v want errBoom", err)
	}
	if out.Tick != 1 {
		t.Fatalf("tick got=%d want=1", out.Tick)
	}
}

func TestSeed(t *testing.T) {
	env, err := Seed(SeedSpec{
		Size: 4,
		Actors: []SeedActor{
			{X: 0, Y: 0, Colour: "white", Orientation: "east", Mind: "reactive"},
			{X: 3, Y: 3, Colour: "user", Orientation: "west", Mind: "random"},
		},
		Dirts: []SeedDirt{{X: 0, Y: 0, Colour: "green"}},
	}, environment.DefaultConfig(), nil)
	if err == nil {
		t.Fatalf("expected nil mind factory to be rejected")
	}

	sim, _, _, _ := newTestSimulation()
	env, err = Seed(SeedSpec{
		Size: 4,
		Actors: []SeedActor{
			{X: 0, Y: 0, Colour: "white", Orientation: "east", Mind: "reactive"},
			{X: 3, Y: 3, Colour: "user", Orientation: "west", Mind: "random"},
		},
		Dirts: []SeedDirt{{X: 0, Y: 0, Colour: "green"}},
	}, environment.DefaultConfig(), sim.minds())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := len(env.Ambient().ActorIDs()); got != 2 {
		t.Fatalf("actors got=%d want=2", got)
	}
	if _, ok := env.DirtByCoord(world.Coord{X: 0, Y: 0}); !ok {
		t.Fatalf("expected dirt at (0,0)")
	}

	_, err = Seed(SeedSpec{Size: 3, Actors: []SeedActor{
		{X: 1, Y: 1, Colour: "green", Orientation: "north", Mind: "idle"},
		{X: 1, Y: 1, Colour: "orange", Orientation: "north", Mind: "idle"},
	}}, environment.DefaultConfig(), sim.minds())
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("duplicate seed err=%v want ErrInvalidRequest", err)
	}
}

func TestSimulation_Reseed(t *testing.T) {
	sim, _, _, pub := newTestSimulation()
	resp, err := sim.Reseed(context.Background(), SeedSpec{
		Size:   3,
		Actors: []SeedActor{{X: 1, Y: 1, Colour: "orange", Orientation: "north", Mind: "reactive"}},
	})
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if resp.Tick != 0 || resp.Snapshot.Size != 3 {
		t.Fatalf("unexpected reseed response: %+v", resp)
	}
	if len(pub.ticks) == 0 {
		t.Fatalf("expected reseed to publish a snapshot")
	}
	if _, err := sim.Reseed(context.Background(), SeedSpec{Size: 1}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("reseed small grid err=%v want ErrInvalidRequest", err)
	}
}

type fixedMind []world.Action

func (fixedMind) Perceive(world.Observation, []world.Message) {}
func (fixedMind) Revise()                                    {}
func (fixedMind) Decide()                                    {}
func (m fixedMind) Execute() []world.Action                  { return m }

type idleMind struct{}

func (idleMind) Perceive(world.Observation, []world.Message) {}
func (idleMind) Revise()                                    {}
func (idleMind) Decide()                                    {}
func (idleMind) Execute() []world.Action                    { return nil }
