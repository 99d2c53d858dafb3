package ports

import (
	"context"
	"time"

	"github.com/staffhub/workforce-system/internal/core/domain"
)

// ExportStore is the read surface the snapshot engine consumes from the
// persistent store. Business queries and mutations are outside this contract.
type ExportStore interface {
	ListCollections(ctx context.Context) ([]string, error)
	CountDocuments(ctx context.Context, collection string) (int64, error)
	ReadAll(ctx context.Context, collection string) ([]map[string]any, error)
}

// ArtifactWrite is the payload handed to the artifact store: one serialized
// export of every collection, plus the provenance header persisted with it.
type ArtifactWrite struct {
	ID          string
	CreatedAt   time.Time
	Origin      domain.SnapshotOrigin
	Collections map[string][]map[string]any
}

// ArtifactStore persists snapshot artifacts as immutable files. Write must be
// durable before it returns (no partially visible artifacts); Delete of a
// missing id must report domain.ErrArtifactNotFound.
type ArtifactStore interface {
	Write(ctx context.Context, artifact ArtifactWrite) (sizeBytes int64, err error)
	List(ctx context.Context) ([]domain.SnapshotArtifact, error)
	Delete(ctx context.Context, id string) error
}

// SnapshotEngine owns the recurring snapshot schedule. Start is idempotent;
// Stop cancels future ticks and waits for an in-flight run to finish.
type SnapshotEngine interface {
	Start() domain.SchedulerStatus
	Stop()
	// TriggerNow runs a snapshot outside the timer cadence. It is rejected
	// with domain.ErrSnapshotInProgress while another run is in flight.
	TriggerNow(ctx context.Context) (*domain.SnapshotArtifact, error)
	Status() domain.SchedulerStatus
}

// SnapshotCatalog enumerates and deletes artifacts the engine produced.
type SnapshotCatalog interface {
	List(ctx context.Context) ([]domain.SnapshotArtifact, error)
	Delete(ctx context.Context, id string) error
}
