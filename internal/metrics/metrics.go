// Package metrics holds the Prometheus collectors of the extraction pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"pollbuilder/internal/model"
)

// Pipeline counts processed documents and extracted questions.
// A nil *Pipeline records nothing.
type Pipeline struct {
	documents *prometheus.CounterVec
	questions *prometheus.CounterVec
}

// NewPipeline creates the collectors and registers them on reg.
func NewPipeline(reg prometheus.Registerer) (*Pipeline, error) {
	p := &Pipeline{
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pollbuilder",
				Name:      "documents_processed_total",
				Help:      "Documents run through extraction, by final status.",
			},
			[]string{"status"},
		),
		questions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pollbuilder",
				Name:      "questions_extracted_total",
				Help:      "Questions extracted from documents, by category.",
			},
			[]string{"category"},
		),
	}
	for _, c := range []prometheus.Collector{p.documents, p.questions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DocumentProcessed records the terminal status of one processing run.
func (p *Pipeline) DocumentProcessed(status model.DocumentStatus) {
	if p == nil {
		return
	}
	p.documents.WithLabelValues(string(status)).Inc()
}

// QuestionsExtracted records a batch of freshly extracted questions.
func (p *Pipeline) QuestionsExtracted(qs []model.Question) {
	if p == nil {
		return
	}
	for _, q := range qs {
		p.questions.WithLabelValues(string(q.Category)).Inc()
	}
}
