// Package metrics defines Prometheus collectors for the collaboration core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Lock manager metrics
	LockAcquisitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nom_lock_acquisitions_total",
		Help: "Total number of cell lock acquisition attempts",
	}, []string{"outcome"}) // granted | conflict

	LockReleases = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nom_lock_releases_total",
		Help: "Total number of cell lock release calls",
	}, []string{"outcome"}) // released | noop

	LocksSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nom_locks_swept_total",
		Help: "Total number of expired cell locks reclaimed by sweeps",
	})

	// Presence metrics
	PresenceHeartbeats = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nom_presence_heartbeats_total",
		Help: "Total number of presence heartbeat calls",
	})

	PresenceSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nom_presence_swept_total",
		Help: "Total number of stale presence records reclaimed by sweeps",
	})

	// Matrix assembly metrics
	MatrixAssemblies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nom_matrix_assemblies_total",
		Help: "Total number of matrix assembly calls",
	})

	MatrixAssemblyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nom_matrix_assembly_duration_seconds",
		Help:    "Duration of matrix assembly calls",
		Buckets: prometheus.DefBuckets,
	})

	MatrixCellCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nom_matrix_cells",
		Help: "Cell count (n*n) of the most recently assembled matrix",
	})
)
