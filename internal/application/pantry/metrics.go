package pantry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the pantry ledger operations.
type Metrics struct {
	cooks        *prometheus.CounterVec
	undos        *prometheus.CounterVec
	confirms     *prometheus.CounterVec
	batchSeconds prometheus.Histogram
}

// NewMetrics registers the pantry instruments on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		cooks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "cook_total",
			Help:      "Interactive cook actions by outcome.",
		}, []string{"outcome"}),
		undos: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "undo_total",
			Help:      "Undo actions by outcome.",
		}, []string{"outcome"}),
		confirms: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "confirm_total",
			Help:      "Serializable confirm-use actions by outcome.",
		}, []string{"outcome"}),
		batchSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pantry",
			Name:      "deduction_batch_seconds",
			Help:      "Duration of atomic deduction batch writes.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) recordCook(outcome string) {
	if m != nil {
		m.cooks.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) recordUndo(outcome string) {
	if m != nil {
		m.undos.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) recordConfirm(outcome string) {
	if m != nil {
		m.confirms.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) observeBatch(seconds float64) {
	if m != nil {
		m.batchSeconds.Observe(seconds)
	}
}
