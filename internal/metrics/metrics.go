// Package metrics records Parameter Store operation counts and latencies.
//
// A CLI invocation is short lived, so metrics are not scraped. Instead the
// registry can be written to a file in the node-exporter textfile collector
// format with WriteTextfile.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/systmms/eg2/pkg/secrets"
)

// Operation outcomes used as the "outcome" label.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Recorder owns a private registry with the store metrics.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eg2_store_operations_total",
				Help: "Total number of secret store operations",
			},
			[]string{"operation", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eg2_store_operation_duration_seconds",
				Help:    "Duration of secret store operations in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
	}
}

// Observe records one operation.
func (r *Recorder) Observe(operation string, started time.Time, err error) {
	r.operations.WithLabelValues(operation, outcome(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// OperationCount returns the counter for an operation and outcome.
func (r *Recorder) OperationCount(operation, outcome string) prometheus.Counter {
	return r.operations.WithLabelValues(operation, outcome)
}

// WriteTextfile writes every metric of the recorder to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, secrets.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// InstrumentStore wraps store so every primitive is recorded by r.
func InstrumentStore(store secrets.Store, r *Recorder) secrets.Store {
	return &instrumentedStore{next: store, rec: r}
}

type instrumentedStore struct {
	next secrets.Store
	rec  *Recorder
}

func (s *instrumentedStore) Put(ctx context.Context, key, value string, tier secrets.Tier) error {
	start := time.Now()
	err := s.next.Put(ctx, key, value, tier)
	s.rec.Observe("put", start, err)
	return err
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, key)
	s.rec.Observe("get", start, err)
	return value, err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.rec.Observe("delete", start, err)
	return err
}

func (s *instrumentedStore) List(ctx context.Context, path string, recursive bool) ([]secrets.Entry, error) {
	start := time.Now()
	entries, err := s.next.List(ctx, path, recursive)
	s.rec.Observe("list", start, err)
	return entries, err
}
