package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/workforce-system/internal/api/metrics"
	"github.com/staffhub/workforce-system/internal/core/domain"
	"github.com/staffhub/workforce-system/internal/core/ports"
)

// artifactIDFormat yields ids that sort lexically in creation order, with
// nanosecond precision so two runs can never collide on an id.
const artifactIDFormat = "20060102T150405.000000000Z"

// SnapshotService is the snapshot engine: it owns the recurring timer, runs
// one export at a time guarded by a busy flag, and applies retention after
// each successful run. It is constructed explicitly and started/stopped by
// the composition root; there is no process-global instance.
type SnapshotService struct {
	store     ports.ExportStore
	artifacts ports.ArtifactStore
	policy    domain.RetentionPolicy
	audit     ports.AuditRecorder
	log       zerolog.Logger

	mu      sync.Mutex
	state   domain.SchedulerState
	busy    bool
	cancel  context.CancelFunc
	loopWG  sync.WaitGroup
	runDone chan struct{} // non-nil while a run is in flight; closed when it ends

	lastRunAt   time.Time
	lastRun     domain.SnapshotStatus
	lastError   string
	lastID      string
	lastSize    int64
	runsTotal   int64
	runsFailed  int64
	runsSkipped int64

	// now is swappable in tests.
	now func() time.Time
}

func NewSnapshotService(store ports.ExportStore, artifacts ports.ArtifactStore, policy domain.RetentionPolicy, audit ports.AuditRecorder, log zerolog.Logger) *SnapshotService {
	if policy.Interval <= 0 {
		policy.Interval = time.Hour
	}
	return &SnapshotService{
		store:     store,
		artifacts: artifacts,
		policy:    policy,
		audit:     audit,
		log:       log,
		state:     domain.SchedulerStopped,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start launches the timer goroutine. Calling Start while already running is
// a no-op that returns the current status; a second timer is never created.
func (s *SnapshotService) Start() domain.SchedulerStatus {
	s.mu.Lock()
	if s.state == domain.SchedulerRunning {
		status := s.statusLocked()
		s.mu.Unlock()
		return status
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = domain.SchedulerRunning
	status := s.statusLocked()
	s.mu.Unlock()

	s.loopWG.Add(1)
	go s.loop(ctx)

	s.log.Info().Dur("interval", s.policy.Interval).Msg("snapshot scheduler started")
	return status
}

// Stop cancels future ticks and blocks until an in-flight snapshot, if any,
// has run to completion. Safe to call when already stopped.
func (s *SnapshotService) Stop() {
	s.mu.Lock()
	if s.state != domain.SchedulerRunning {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.cancel = nil
	s.state = domain.SchedulerStopped
	inFlight := s.runDone
	s.mu.Unlock()

	cancel()
	s.loopWG.Wait()
	if inFlight != nil {
		<-inFlight
	}
	s.log.Info().Msg("snapshot scheduler stopped")
}

// TriggerNow performs the identical snapshot routine outside the timer
// cadence. A trigger issued while any run is in progress is rejected, not
// queued.
func (s *SnapshotService) TriggerNow(ctx context.Context) (*domain.SnapshotArtifact, error) {
	if !s.beginRun() {
		return nil, domain.ErrSnapshotInProgress
	}
	defer s.endRun()

	artifact, err := s.run(ctx, domain.SnapshotOriginManual)
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

func (s *SnapshotService) Status() domain.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *SnapshotService) loop(ctx context.Context) {
	defer s.loopWG.Done()

	ticker := time.NewTicker(s.policy.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Cancellation only suppresses future ticks; a run that already
			// started must finish its write even if Stop arrives mid-flight.
			s.tick(context.WithoutCancel(ctx))
		}
	}
}

func (s *SnapshotService) tick(ctx context.Context) {
	if !s.beginRun() {
		s.mu.Lock()
		s.runsSkipped++
		s.mu.Unlock()
		s.log.Warn().Msg("snapshot tick skipped: previous run still in progress")
		return
	}
	defer s.endRun()

	if _, err := s.run(ctx, domain.SnapshotOriginScheduled); err != nil {
		// Already recorded in status and logs; the schedule continues.
		return
	}
}

// beginRun claims the busy flag. It is the sole overlap guard: only one run
// may be in flight at a time regardless of whether the timer or a manual
// trigger started it.
func (s *SnapshotService) beginRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	s.runDone = make(chan struct{})
	return true
}

func (s *SnapshotService) endRun() {
	s.mu.Lock()
	done := s.runDone
	s.busy = false
	s.runDone = nil
	s.mu.Unlock()
	close(done)
}

func (s *SnapshotService) run(ctx context.Context, origin domain.SnapshotOrigin) (*domain.SnapshotArtifact, error) {
	started := s.now()
	id := started.Format(artifactIDFormat)

	log := s.log.With().Str("snapshot_id", id).Str("origin", string(origin)).Logger()
	log.Info().Msg("snapshot run started")

	artifact, err := s.export(ctx, id, started, origin)
	duration := s.now().Sub(started)

	s.mu.Lock()
	s.runsTotal++
	s.lastRunAt = started
	s.lastID = id
	if err != nil {
		s.runsFailed++
		s.lastRun = domain.SnapshotStatusFailed
		s.lastError = err.Error()
		s.lastSize = 0
	} else {
		s.lastRun = domain.SnapshotStatusSuccess
		s.lastError = ""
		s.lastSize = artifact.SizeBytes
	}
	s.mu.Unlock()

	metrics.SnapshotDuration.WithLabelValues(string(origin)).Observe(duration.Seconds())
	if err != nil {
		metrics.SnapshotRunsTotal.WithLabelValues(string(origin), "failed").Inc()
		log.Error().Err(err).Dur("duration", duration).Msg("snapshot run failed")
		if s.audit != nil {
			s.audit.LogSystem(ctx, "snapshot", fmt.Sprintf("snapshot %s failed: %v", id, err))
		}
		return nil, err
	}

	metrics.SnapshotRunsTotal.WithLabelValues(string(origin), "success").Inc()
	metrics.SnapshotArtifactBytes.Set(float64(artifact.SizeBytes))
	log.Info().Int64("size_bytes", artifact.SizeBytes).Dur("duration", duration).Msg("snapshot run completed")
	if s.audit != nil {
		s.audit.LogSystem(ctx, "snapshot", fmt.Sprintf("snapshot %s written (%d bytes, %s)", id, artifact.SizeBytes, origin))
	}

	// Retention runs strictly after the replacement artifact is durable; a
	// retention failure does not fail the run.
	if err := s.applyRetention(ctx, log); err != nil {
		log.Warn().Err(err).Msg("retention sweep failed")
	}

	return artifact, nil
}

func (s *SnapshotService) export(ctx context.Context, id string, createdAt time.Time, origin domain.SnapshotOrigin) (*domain.SnapshotArtifact, error) {
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	collections := make(map[string][]map[string]any, len(names))
	var docTotal int64
	for _, name := range names {
		count, err := s.store.CountDocuments(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", name, err)
		}
		docs, err := s.store.ReadAll(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		collections[name] = docs
		docTotal += count
	}

	size, err := s.artifacts.Write(ctx, ports.ArtifactWrite{
		ID:          id,
		CreatedAt:   createdAt,
		Origin:      origin,
		Collections: collections,
	})
	if err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	s.log.Debug().
		Str("snapshot_id", id).
		Int("collections", len(names)).
		Int64("documents", docTotal).
		Msg("collections exported")

	return &domain.SnapshotArtifact{
		ID:        id,
		CreatedAt: createdAt,
		Origin:    origin,
		SizeBytes: size,
		Status:    domain.SnapshotStatusSuccess,
	}, nil
}

// applyRetention deletes artifacts beyond MaxCount or older than MaxAge,
// oldest first. The artifact just written is never a candidate until newer
// ones exist beyond the bounds.
func (s *SnapshotService) applyRetention(ctx context.Context, log zerolog.Logger) error {
	if s.policy.MaxCount <= 0 && s.policy.MaxAge <= 0 {
		return nil
	}

	artifacts, err := s.artifacts.List(ctx)
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}
	// List returns newest first; walk from the tail so deletion is oldest-first.
	for i := len(artifacts) - 1; i >= 0; i-- {
		a := artifacts[i]

		expired := s.policy.MaxAge > 0 && s.now().Sub(a.CreatedAt) > s.policy.MaxAge
		overCount := s.policy.MaxCount > 0 && i >= s.policy.MaxCount

		if !expired && !overCount {
			continue
		}
		if err := s.artifacts.Delete(ctx, a.ID); err != nil {
			return fmt.Errorf("delete artifact %s: %w", a.ID, err)
		}
		metrics.SnapshotRetentionDeletes.Inc()
		log.Info().Str("artifact_id", a.ID).Bool("expired", expired).Msg("retention removed artifact")
	}

	return nil
}

func (s *SnapshotService) statusLocked() domain.SchedulerStatus {
	return domain.SchedulerStatus{
		State:       s.state,
		Busy:        s.busy,
		Interval:    s.policy.Interval,
		LastRunAt:   s.lastRunAt,
		LastRun:     s.lastRun,
		LastError:   s.lastError,
		LastID:      s.lastID,
		LastSize:    s.lastSize,
		RunsTotal:   s.runsTotal,
		RunsFailed:  s.runsFailed,
		RunsSkipped: s.runsSkipped,
	}
}
