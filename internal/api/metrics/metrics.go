// Package metrics defines and registers all custom Prometheus metrics for the
// workforce API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workforce"

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditRecordsTotal counts audit records durably appended.
// Label:
//   - action: the audit action kind (e.g. "CREATE", "LOGIN")
var AuditRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_records_total",
		Help:      "Total number of audit records durably appended.",
	},
	[]string{"action"},
)

// AuditWriteFailuresTotal counts append attempts that failed. Failures are
// swallowed by the append path, so this counter is the primary visibility
// into audit storage trouble.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit record append failures (absorbed, never propagated).",
	},
)

// ── Snapshot engine metrics ───────────────────────────────────────────────────

// SnapshotRunsTotal counts snapshot runs by origin and outcome.
// Labels:
//   - origin: "scheduled" or "manual"
//   - result: "success" or "failed"
var SnapshotRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_runs_total",
		Help:      "Total number of snapshot runs, by origin and result.",
	},
	[]string{"origin", "result"},
)

// SnapshotDuration measures how long a full snapshot run takes.
// Label:
//   - origin: "scheduled" or "manual"
var SnapshotDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_duration_seconds",
		Help:      "Duration of a snapshot run from collection scan to durable write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"origin"},
)

// SnapshotArtifactBytes tracks the size of the most recently written artifact.
var SnapshotArtifactBytes = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_artifact_bytes",
		Help:      "Size in bytes of the most recently written snapshot artifact.",
	},
)

// SnapshotRetentionDeletes counts artifacts removed by the retention sweep.
var SnapshotRetentionDeletes = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_retention_deletes_total",
		Help:      "Total number of snapshot artifacts deleted by retention.",
	},
)

// ── Access gate metrics ───────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests rejected before reaching a handler.
// Label:
//   - reason: "unauthenticated", "invalid", "expired", "revoked", or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the access gate, by reason.",
	},
	[]string{"reason"},
)
