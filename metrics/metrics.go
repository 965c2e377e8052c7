// Package metrics instruments the History Executor and Envelope Codec with
// Prometheus counters and histograms (SPEC_FULL.md §5, DOMAIN STACK).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rsms/vaultfmt"
)

// Collector bundles the metrics this package registers. Construct one with
// NewCollector, which registers it with a prometheus.Registerer.
type Collector struct {
	CommandsExecuted prometheus.Counter
	BatchesExecuted  prometheus.Counter
	MergeStripped    *prometheus.CounterVec // labeled by short key
	FlattensRun      prometheus.Counter
	EnvelopeEncode   prometheus.Histogram
	EnvelopeDecode   prometheus.Histogram
}

// NewCollector creates and registers a Collector's metrics against reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		CommandsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vault_commands_executed_total",
			Help: "Number of command lines applied by the history executor.",
		}),
		BatchesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vault_batches_executed_total",
			Help: "Number of Execute() calls, each emitting one change signal.",
		}),
		MergeStripped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vault_merge_stripped_commands_total",
			Help: "Destructive commands removed by the merge preprocessor, by short key.",
		}, []string{"short"}),
		FlattensRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vault_flattens_total",
			Help: "Number of times a history has been flattened.",
		}),
		EnvelopeEncode: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "vault_envelope_encode_seconds",
			Help: "Time spent compressing+encrypting a history into an envelope.",
		}),
		EnvelopeDecode: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "vault_envelope_decode_seconds",
			Help: "Time spent decrypting+decompressing an envelope into a history.",
		}),
	}
	reg.MustRegister(
		c.CommandsExecuted, c.BatchesExecuted, c.MergeStripped,
		c.FlattensRun, c.EnvelopeEncode, c.EnvelopeDecode,
	)
	return c
}

// Observe subscribes to x's change signal and counts commands/batches as
// they're executed.
func (c *Collector) Observe(x *vault.Executor) (unsubscribe func()) {
	return x.Subscribe(func(evt vault.Event) {
		c.BatchesExecuted.Inc()
		c.CommandsExecuted.Add(float64(len(evt.Lines)))
	})
}

// RecordMerge records a MergeReport against MergeStripped.
func (c *Collector) RecordMerge(report vault.MergeReport) {
	for short, n := range report.StrippedByShort {
		c.MergeStripped.WithLabelValues(short).Add(float64(n))
	}
}

// RecordFlatten increments FlattensRun. Call it after Executor.Flatten.
func (c *Collector) RecordFlatten() {
	c.FlattensRun.Inc()
}

// TimeEncode returns a func to be deferred around an envelope.Encode call,
// recording its duration in EnvelopeEncode.
func (c *Collector) TimeEncode() func() {
	start := time.Now()
	return func() { c.EnvelopeEncode.Observe(time.Since(start).Seconds()) }
}

// TimeDecode is TimeEncode's counterpart for envelope.Decode.
func (c *Collector) TimeDecode() func() {
	start := time.Now()
	return func() { c.EnvelopeDecode.Observe(time.Since(start).Seconds()) }
}
