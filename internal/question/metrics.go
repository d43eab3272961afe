package question

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quiz draw outcomes.
const (
	outcomeServed    = "served"
	outcomeExhausted = "exhausted"
	outcomeEmpty     = "empty"
)

// Metrics counts domain events for the trivia service.
type Metrics struct {
	quizDraws        *prometheus.CounterVec
	questionsCreated prometheus.Counter
	questionsDeleted prometheus.Counter
}

// NewMetrics registers the trivia collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		quizDraws: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "quiz_draws_total",
			Help:      "Quiz draws by outcome (served, exhausted, empty).",
		}, []string{"outcome"}),
		questionsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "questions_created_total",
			Help:      "Questions created through the API.",
		}),
		questionsDeleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "questions_deleted_total",
			Help:      "Questions deleted through the API.",
		}),
	}
}

func (m *Metrics) quizDraw(outcome string) {
	if m == nil {
		return
	}
	m.quizDraws.WithLabelValues(outcome).Inc()
}

func (m *Metrics) created() {
	if m == nil {
		return
	}
	m.questionsCreated.Inc()
}

func (m *Metrics) deleted() {
	if m == nil {
		return
	}
	m.questionsDeleted.Inc()
}
