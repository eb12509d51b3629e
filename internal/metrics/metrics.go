// Package metrics exports a run's outcome tally in the Prometheus text
// exposition format, for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/tally"
)

const namespace = "codesync"

// Outcome label values, one per tally counter.
const (
	OutcomeAlreadyExists  = "already_exists"
	OutcomeWrongDisplay   = "wrong_display"
	OutcomeNotInThesaurus = "not_in_thesaurus"
	OutcomeNewCode        = "new_code"
)

// Recorder holds the gauges for one run on a private registry.
type Recorder struct {
	registry *prometheus.Registry
	outcomes *prometheus.GaugeVec
	concepts prometheus.Gauge
	codes    prometheus.Gauge
	success  prometheus.Gauge
}

// NewRecorder creates a recorder whose gauges are all zero.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "proposed_concepts",
			Help:      "Proposed concepts in the last run, by outcome.",
		}, []string{"outcome"}),
		concepts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_concepts",
			Help:      "Top-level concepts in the merged code system.",
		}),
		codes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "thesaurus_codes",
			Help:      "Distinct codes in the thesaurus lookup.",
		}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run wrote its output, 0 otherwise.",
		}),
	}
	r.registry.MustRegister(r.outcomes, r.concepts, r.codes, r.success)
	return r
}

// Registry returns the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records the tally and collection sizes of a reconciled run.
func (r *Recorder) Observe(t tally.Tally, concepts, thesaurusCodes int) {
	r.outcomes.WithLabelValues(OutcomeAlreadyExists).Set(float64(t.AlreadyExists))
	r.outcomes.WithLabelValues(OutcomeWrongDisplay).Set(float64(t.WrongDisplay))
	r.outcomes.WithLabelValues(OutcomeNotInThesaurus).Set(float64(t.NotInThesaurus))
	r.outcomes.WithLabelValues(OutcomeNewCode).Set(float64(t.NewCode))
	r.concepts.Set(float64(concepts))
	r.codes.Set(float64(thesaurusCodes))
}

// SetSuccess records whether the run wrote its merged code system.
func (r *Recorder) SetSuccess(ok bool) {
	if ok {
		r.success.Set(1)
		return
	}
	r.success.Set(0)
}

// WriteTextfile atomically writes the gathered metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
