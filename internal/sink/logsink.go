package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/seoagent/hostprobe/internal/detect"
)

// LogSink appends detection records as NDJSON to a file, or to stdout when
// LOG_PATH is "stdout".
type LogSink struct {
	dst string
	mu  sync.Mutex
	f   *os.File
}

func NewLogSink() *LogSink {
	dst := os.Getenv("LOG_PATH")
	if dst == "" {
		dst = "detections.ndjson"
	}
	return &LogSink{dst: dst}
}

func (s *LogSink) Start(ctx context.Context) error {
	if s.dst == "stdout" {
		return nil
	}
	f, err := os.OpenFile(s.dst, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("log sink: open %s: %w", s.dst, err)
	}
	s.f = f
	return nil
}

func (s *LogSink) Enqueue(rec detect.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("log sink: marshal record: %w", err)
	}
	b = append(b, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f != nil {
		_, err = s.f.Write(b)
	} else {
		_, err = os.Stdout.Write(b)
	}
	return err
}

func (s *LogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

func (s *LogSink) Name() string { return "log" }
