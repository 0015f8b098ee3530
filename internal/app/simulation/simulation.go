package simulation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"vacuumworld/internal/app/ports"
	"vacuumworld/internal/domain/environment"
	"vacuumworld/internal/domain/mind"
)

var (
	ErrInvalidRequest = errors.New("invalid simulation request")
	ErrNotReady       = errors.New("simulation not ready")
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

var snapshotNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Simulation owns the running environment and serializes every operation
// on it. Optional ports left nil are skipped.
type Simulation struct {
	Config    environment.Config
	Minds     environment.MindFactory
	TxManager ports.TxManager
	Snapshots ports.SnapshotRepository
	CycleLog  ports.CycleLogRepository
	Metrics   ports.CycleMetrics
	Publisher ports.SnapshotPublisher
	Validator ports.SnapshotValidator
	Logger    *zap.Logger
	Now       func() time.Time

	mu  sync.Mutex
	env *environment.Environment
}

// Attach replaces the current environment.
func (s *Simulation) Attach(env *environment.Environment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = env
	if env != nil {
		s.publish(env)
	}
}

func (s *Simulation) Cycle(ctx context.Context) (CycleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.env == nil {
		return CycleResponse{}, ErrNotReady
	}

	report, err := s.env.Cycle()
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.RecordCycleFailure()
		}
		s.logger().Error("cycle failed", zap.Uint64("tick", report.Tick), zap.Error(err))
		if report.Tick == s.env.Tick() {
			_, _ = s.settle(ctx, report)
		}
		return CycleResponse{}, err
	}

	out, err := s.settle(ctx, report)
	if err != nil {
		return out, err
	}
	s.logger().Debug("cycle completed", zap.Uint64("tick", report.Tick), zap.Int("results", len(report.Results)))
	return out, nil
}

// settle records, publishes and logs the results of an advanced tick. It
// also runs for aborted cycles in which some actors already acted.
func (s *Simulation) settle(ctx context.Context, report environment.CycleReport) (CycleResponse, error) {
	if s.Metrics != nil {
		for _, r := range report.Results {
			s.Metrics.RecordOutcome(r.Action.Kind, r.Outcome)
		}
	}
	out := CycleResponse{Tick: report.Tick, Results: report.Results, Snapshot: s.env.Snapshot()}
	s.publishSnapshot(out.Tick, out.Snapshot)

	if err := s.appendCycleLog(ctx, report); err != nil {
		s.logger().Error("append cycle log", zap.Uint64("tick", report.Tick), zap.Error(err))
		return out, fmt.Errorf("append cycle log: %w", err)
	}
	return out, nil
}

func (s *Simulation) appendCycleLog(ctx context.Context, report environment.CycleReport) error {
	if s.CycleLog == nil || len(report.Results) == 0 {
		return nil
	}
	now := s.now()
	records := make([]ports.ActionResultRecord, 0, len(report.Results))
	for i, r := range report.Results {
		records = append(records, ports.ActionResultRecord{
			Tick:       report.Tick,
			Seq:        i,
			ActorID:    r.Action.ActorID,
			Kind:       string(r.Action.Kind),
			Outcome:    string(r.Outcome),
			Detail:     r.Action.String(),
			RecordedAt: now,
		})
	}
	return s.runInTx(ctx, func(txCtx context.Context) error {
		return s.CycleLog.Append(txCtx, records)
	})
}

func (s *Simulation) Snapshot(_ context.Context) (SnapshotResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.env == nil {
		return SnapshotResponse{}, ErrNotReady
	}
	return SnapshotResponse{Tick: s.env.Tick(), Snapshot: s.env.Snapshot()}, nil
}

// Load replaces the environment with the one described by raw. The tick
// restarts at zero and every actor gets a fresh identity.
func (s *Simulation) Load(_ context.Context, raw []byte) (SnapshotResponse, error) {
	env, err := s.build(raw)
	if err != nil {
		return SnapshotResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = env
	s.publish(env)
	s.logger().Info("environment loaded", zap.Int("size", env.Size()), zap.Int("actors", len(env.Ambient().ActorIDs())))
	return SnapshotResponse{Tick: env.Tick(), Snapshot: env.Snapshot()}, nil
}

func (s *Simulation) build(raw []byte) (*environment.Environment, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("%w: empty snapshot", ErrInvalidRequest)
	}
	if s.Validator != nil {
		if err := s.Validator.Validate(raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	snap, err := environment.ParseSnapshot(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	env, err := environment.FromSnapshot(snap, s.config(), s.minds())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return env, nil
}

func (s *Simulation) Save(ctx context.Context, name string) (SavedSnapshot, error) {
	name = strings.TrimSpace(name)
	if !snapshotNamePattern.MatchString(name) {
		return SavedSnapshot{}, fmt.Errorf("%w: bad snapshot name %q", ErrInvalidRequest, name)
	}
	if s.Snapshots == nil {
		return SavedSnapshot{}, ErrNotReady
	}

	s.mu.Lock()
	if s.env == nil {
		s.mu.Unlock()
		return SavedSnapshot{}, ErrNotReady
	}
	payload, err := s.env.ToJSON()
	tick := s.env.Tick()
	s.mu.Unlock()
	if err != nil {
		return SavedSnapshot{}, fmt.Errorf("%w: %w", ports.ErrConflict, err)
	}

	record := ports.SnapshotRecord{Name: name, Tick: tick, Payload: payload, SavedAt: s.now()}
	if err := s.runInTx(ctx, func(txCtx context.Context) error {
		return s.Snapshots.Save(txCtx, record)
	}); err != nil {
		return SavedSnapshot{}, err
	}
	s.logger().Info("snapshot saved", zap.String("name", name), zap.Uint64("tick", tick))
	return SavedSnapshot{Name: record.Name, Tick: record.Tick, SavedAt: record.SavedAt}, nil
}

func (s *Simulation) Restore(ctx context.Context, name string) (SnapshotResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SnapshotResponse{}, fmt.Errorf("%w: snapshot name is required", ErrInvalidRequest)
	}
	if s.Snapshots == nil {
		return SnapshotResponse{}, ErrNotReady
	}
	record, err := s.Snapshots.Load(ctx, name)
	if err != nil {
		return SnapshotResponse{}, err
	}
	return s.Load(ctx, record.Payload)
}

func (s *Simulation) List(ctx context.Context) ([]SavedSnapshot, error) {
	if s.Snapshots == nil {
		return []SavedSnapshot{}, nil
	}
	records, err := s.Snapshots.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SavedSnapshot, 0, len(records))
	for _, r := range records {
		out = append(out, SavedSnapshot{Name: r.Name, Tick: r.Tick, SavedAt: r.SavedAt})
	}
	return out, nil
}

func (s *Simulation) History(ctx context.Context, req HistoryRequest) (HistoryResponse, error) {
	req.ActorID = strings.TrimSpace(req.ActorID)
	if req.ActorID == "" || req.Limit < 0 {
		return HistoryResponse{}, ErrInvalidRequest
	}
	if req.Limit == 0 {
		req.Limit = defaultHistoryLimit
	}
	if req.Limit > maxHistoryLimit {
		req.Limit = maxHistoryLimit
	}
	out := HistoryResponse{ActorID: req.ActorID, Entries: []HistoryEntry{}}
	if s.CycleLog == nil {
		return out, nil
	}
	records, err := s.CycleLog.ListByActorID(ctx, req.ActorID, req.Limit)
	if err != nil {
		return HistoryResponse{}, err
	}
	for _, r := range records {
		out.Entries = append(out.Entries, HistoryEntry{
			Tick:       r.Tick,
			Seq:        r.Seq,
			Kind:       r.Kind,
			Outcome:    r.Outcome,
			Detail:     r.Detail,
			RecordedAt: r.RecordedAt,
		})
	}
	return out, nil
}

func (s *Simulation) publish(env *environment.Environment) {
	s.publishSnapshot(env.Tick(), env.Snapshot())
}

func (s *Simulation) publishSnapshot(tick uint64, snap environment.Snapshot) {
	if s.Publisher != nil {
		s.Publisher.Publish(tick, snap)
	}
}

func (s *Simulation) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.TxManager == nil {
		return fn(ctx)
	}
	return s.TxManager.RunInTx(ctx, fn)
}

func (s *Simulation) config() environment.Config {
	if s.Config == (environment.Config{}) {
		return environment.DefaultConfig()
	}
	return s.Config
}

func (s *Simulation) minds() environment.MindFactory {
	if s.Minds == nil {
		return mind.DefaultRegistry()
	}
	return s.Minds
}

func (s *Simulation) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Simulation) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}
