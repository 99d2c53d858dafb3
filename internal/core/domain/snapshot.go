package domain

import "time"

// SnapshotOrigin records whether an artifact came from the scheduler or from
// an explicit manual trigger. Origin is persisted in the artifact itself, not
// inferred from file naming.
type SnapshotOrigin string

const (
	SnapshotOriginManual    SnapshotOrigin = "manual"
	SnapshotOriginScheduled SnapshotOrigin = "scheduled"
)

// SnapshotStatus is the outcome of a snapshot run.
type SnapshotStatus string

const (
	SnapshotStatusSuccess SnapshotStatus = "success"
	SnapshotStatusFailed  SnapshotStatus = "failed"
)

// SnapshotArtifact describes one point-in-time export of all exportable
// collections. The ID is derived from the creation timestamp, so IDs sort
// lexically in creation order. An artifact is immutable once written until it
// is explicitly deleted through the catalog.
type SnapshotArtifact struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Origin    SnapshotOrigin `json:"origin"`
	SizeBytes int64          `json:"size_bytes"`
	Status    SnapshotStatus `json:"status"`
}

// RetentionPolicy bounds how many and how old artifacts are kept. Zero values
// disable the corresponding bound. Applied only after a successful run, and
// strictly after the new artifact is durably written.
type RetentionPolicy struct {
	Interval time.Duration // time between scheduled runs
	MaxAge   time.Duration // artifacts older than this are deleted; 0 = unbounded
	MaxCount int           // artifacts beyond this count are deleted oldest-first; 0 = unbounded
}

// SchedulerState is the lifecycle state of the snapshot engine.
type SchedulerState string

const (
	SchedulerStopped SchedulerState = "stopped"
	SchedulerRunning SchedulerState = "running"
)

// SchedulerStatus is the operator-visible view of the snapshot engine.
type SchedulerStatus struct {
	State       SchedulerState `json:"state"`
	Busy        bool           `json:"busy"` // a snapshot run is in flight right now
	Interval    time.Duration  `json:"interval"`
	LastRunAt   time.Time      `json:"last_run_at,omitempty"`
	LastRun     SnapshotStatus `json:"last_run,omitempty"`
	LastError   string         `json:"last_error,omitempty"`
	LastID      string         `json:"last_id,omitempty"`
	LastSize    int64          `json:"last_size_bytes,omitempty"`
	RunsTotal   int64          `json:"runs_total"`
	RunsFailed  int64          `json:"runs_failed"`
	RunsSkipped int64          `json:"runs_skipped"` // ticks skipped because a run was already in flight
}
