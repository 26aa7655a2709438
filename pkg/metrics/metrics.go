package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chat"

// Turn outcomes.
const (
	OutcomeCommitted  = "committed"
	OutcomeTokenLimit = "token_limit"
	OutcomeModelError = "model_error"
	OutcomeCanceled   = "canceled"
)

// Metrics groups the service's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	turns              *prometheus.CounterVec
	attachments        *prometheus.CounterVec
	attachmentFailures *prometheus.CounterVec
	streamDuration     prometheus.Histogram
	outputTokens       prometheus.Histogram
	activeSessions     prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		turns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Conversation turns by kind (send, continue) and outcome.",
		}, []string{"kind", "outcome"}),
		attachments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachments_total",
			Help:      "Attachments normalized successfully, by kind.",
		}, []string{"kind"}),
		attachmentFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachment_failures_total",
			Help:      "Attachments rejected during normalization, by reason.",
		}, []string{"reason"}),
		streamDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stream_duration_seconds",
			Help:      "Wall time of one model stream.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160, 300},
		}),
		outputTokens: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stream_output_tokens",
			Help:      "Estimated tokens of generated text per stream.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 10),
		}),
		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}),
	}
}

func (m *Metrics) ObserveTurn(kind, outcome string) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveAttachment(kind string) {
	if m == nil {
		return
	}
	m.attachments.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveAttachmentFailure(reason string) {
	if m == nil {
		return
	}
	m.attachmentFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveStream(d time.Duration, tokens int) {
	if m == nil {
		return
	}
	m.streamDuration.Observe(d.Seconds())
	m.outputTokens.Observe(float64(tokens))
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
