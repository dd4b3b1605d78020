package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for form field validation.
type Metrics struct {
	// Verdicts by field and outcome (a rut.Reason, or valid/invalid/pending for phones)
	Verdicts *prometheus.CounterVec

	// Keystrokes seen by the filter, by field and whether they were accepted
	Keystrokes *prometheus.CounterVec

	// Submissions checked, by overall result
	Submissions *prometheus.CounterVec
}

// New creates the form metrics and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rutcheck_field_verdicts_total",
			Help: "Field verdicts by field role and outcome",
		}, []string{"field", "outcome"}),

		Keystrokes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rutcheck_keystrokes_total",
			Help: "Keystrokes checked by the input filter",
		}, []string{"field", "accepted"}),

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rutcheck_submissions_total",
			Help: "Form submissions checked, by result",
		}, []string{"result"}),
	}
}

// IncrementVerdict records a field verdict.
func (m *Metrics) IncrementVerdict(field, outcome string) {
	if m != nil {
		m.Verdicts.WithLabelValues(field, outcome).Inc()
	}
}

// IncrementKeystroke records a filtered key press.
func (m *Metrics) IncrementKeystroke(field string, accepted bool) {
	if m == nil {
		return
	}
	label := "false"
	if accepted {
		label = "true"
	}
	m.Keystrokes.WithLabelValues(field, label).Inc()
}

// IncrementSubmission records a checked submission.
func (m *Metrics) IncrementSubmission(valid bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if valid {
		result = "accepted"
	}
	m.Submissions.WithLabelValues(result).Inc()
}
