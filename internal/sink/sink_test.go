package sink

import (
	"context"
	"fmt"
	"testing"

	"github.com/seoagent/hostprobe/internal/detect"
)

type stubSink struct {
	name     string
	failWith error
	got      []detect.Record
}

func (s *stubSink) Start(ctx context.Context) error { return nil }

func (s *stubSink) Enqueue(rec detect.Record) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.got = append(s.got, rec)
	return nil
}

func (s *stubSink) Close() error { return nil }

func (s *stubSink) Name() string { return s.name }

func TestFanOut(t *testing.T) {
	t.Run("delivers record to every sink", func(t *testing.T) {
		a := &stubSink{name: "a"}
		b := &stubSink{name: "b"}
		emit := FanOut(nil, a, b)

		emit(detect.Record{RunID: "run-1", Domain: "example.com"})

		for _, s := range []*stubSink{a, b} {
			if len(s.got) != 1 {
				t.Fatalf("sink %s got %d records, want 1", s.name, len(s.got))
			}
			if s.got[0].RunID != "run-1" {
				t.Errorf("sink %s record run_id = %q, want run-1", s.name, s.got[0].RunID)
			}
		}
	})

	t.Run("one failing sink does not block the others", func(t *testing.T) {
		bad := &stubSink{name: "bad", failWith: fmt.Errorf("broken pipe")}
		good := &stubSink{name: "good"}
		emit := FanOut(nil, bad, good)

		emit(detect.Record{RunID: "run-2"})

		if len(good.got) != 1 {
			t.Errorf("good sink got %d records, want 1", len(good.got))
		}
	})

	t.Run("no sinks is a no-op", func(t *testing.T) {
		emit := FanOut(nil)
		emit(detect.Record{RunID: "run-3"})
	})
}
