// Package sink delivers detection records to best-effort destinations.
// Sinks never gate a detection result: enqueue failures are logged and
// counted, not propagated back to the detector.
package sink

import (
	"context"
	"log"

	"github.com/seoagent/hostprobe/internal/detect"
	"github.com/seoagent/hostprobe/internal/metrics"
)

type Sink interface {
	Start(ctx context.Context) error
	Enqueue(rec detect.Record) error
	Close() error
	Name() string // Returns the sink name for metrics and logging
}

// FanOut builds the emit function handed to the detector: every record is
// offered to all sinks, failures are absorbed here.
func FanOut(m *metrics.Metrics, sinks ...Sink) func(detect.Record) {
	return func(rec detect.Record) {
		for _, s := range sinks {
			if err := s.Enqueue(rec); err != nil {
				log.Printf("sink: %s enqueue run %s: %v", s.Name(), rec.RunID, err)
				if m != nil {
					m.IncrementSinkErrors(s.Name(), "enqueue")
				}
				continue
			}
			if m != nil {
				m.IncrementRecordsEmitted(s.Name())
			}
		}
	}
}
