// Package metrics records sync activity as Prometheus metrics and serves them
// on a dedicated port.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gtasksync"

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics provides methods for recording sync metrics. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	refreshTotal    *prometheus.CounterVec
	refreshDuration *prometheus.HistogramVec
	snapshotTasks   *prometheus.GaugeVec
	mutationsTotal  *prometheus.CounterVec
	publishTotal    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_total",
			Help:      "Snapshot refreshes by list and result.",
		}, []string{"list", "result"}),
		refreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Time spent fetching a list snapshot.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"list"}),
		snapshotTasks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_tasks",
			Help:      "Number of tasks in the latest snapshot.",
		}, []string{"list"}),
		mutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Remote mutations by list, operation and result.",
		}, []string{"list", "operation", "result"}),
		publishTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_publish_total",
			Help:      "Summary writes to text sinks by sink and result.",
		}, []string{"sink", "result"}),
	}

	for _, c := range []prometheus.Collector{
		m.refreshTotal, m.refreshDuration, m.snapshotTasks, m.mutationsTotal, m.publishTotal,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordRefresh records one snapshot fetch. size is ignored on error.
func (m *Metrics) RecordRefresh(list string, d time.Duration, size int, err error) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(list, result(err)).Inc()
	m.refreshDuration.WithLabelValues(list).Observe(d.Seconds())
	if err == nil {
		m.snapshotTasks.WithLabelValues(list).Set(float64(size))
	}
}

// RecordMutation records one create, update, delete or move call.
func (m *Metrics) RecordMutation(list, operation string, err error) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(list, operation, result(err)).Inc()
}

// RecordPublish records one summary write to a sink.
func (m *Metrics) RecordPublish(sink string, err error) {
	if m == nil {
		return
	}
	m.publishTotal.WithLabelValues(sink, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
