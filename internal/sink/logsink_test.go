package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/seoagent/hostprobe/internal/detect"
)

// TestNewLogSink tests LogSink creation
func TestNewLogSink(t *testing.T) {
	t.Run("uses default path when env not set", func(t *testing.T) {
		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Unsetenv("LOG_PATH")

		sink := NewLogSink()
		if sink.dst != "detections.ndjson" {
			t.Errorf("dst = %q, want detections.ndjson", sink.dst)
		}
	})

	t.Run("uses env variable when set", func(t *testing.T) {
		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)

		os.Setenv("LOG_PATH", "/tmp/custom.ndjson")
		sink := NewLogSink()
		if sink.dst != "/tmp/custom.ndjson" {
			t.Errorf("dst = %q, want /tmp/custom.ndjson", sink.dst)
		}
	})
}

// TestLogSinkStart tests starting the log sink
func TestLogSinkStart(t *testing.T) {
	t.Run("creates file at destination path", func(t *testing.T) {
		tmpDir := t.TempDir()
		logPath := filepath.Join(tmpDir, "test.ndjson")

		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Setenv("LOG_PATH", logPath)

		sink := NewLogSink()
		ctx := context.Background()

		err := sink.Start(ctx)
		if err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		defer sink.Close()

		if _, err := os.Stat(logPath); os.IsNotExist(err) {
			t.Errorf("log file was not created at %s", logPath)
		}
	})

	t.Run("handles stdout mode", func(t *testing.T) {
		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Setenv("LOG_PATH", "stdout")

		sink := NewLogSink()
		ctx := context.Background()

		err := sink.Start(ctx)
		if err != nil {
			t.Fatalf("Start() failed for stdout: %v", err)
		}

		// stdout mode should not set file pointer
		if sink.f != nil {
			t.Error("file pointer should be nil for stdout mode")
		}

		sink.Close()
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)

		os.Setenv("LOG_PATH", "/nonexistent/directory/test.ndjson")

		sink := NewLogSink()
		ctx := context.Background()

		err := sink.Start(ctx)
		if err == nil {
			t.Error("Start() should fail for invalid path")
			sink.Close()
		}
	})
}

// TestLogSinkEnqueue tests enqueueing detection records
func TestLogSinkEnqueue(t *testing.T) {
	t.Run("writes record to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		logPath := filepath.Join(tmpDir, "detections.ndjson")

		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Setenv("LOG_PATH", logPath)

		sink := NewLogSink()
		ctx := context.Background()

		if err := sink.Start(ctx); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		defer sink.Close()

		rec := detect.Record{
			RunID:             "run-123",
			Identity:          "site-7",
			Domain:            "example.com",
			Primary:           "cloudflare",
			OverallConfidence: 100,
			DetectedAt:        time.Now().UTC(),
		}

		err := sink.Enqueue(rec)
		if err != nil {
			t.Fatalf("Enqueue() failed: %v", err)
		}

		sink.Close()

		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}

		var decoded detect.Record
		if err := json.Unmarshal(content[:len(content)-1], &decoded); err != nil {
			t.Fatalf("log content is not valid JSON: %v", err)
		}

		if decoded.RunID != "run-123" {
			t.Errorf("run_id = %q, want run-123", decoded.RunID)
		}
		if decoded.Primary != "cloudflare" {
			t.Errorf("primary = %q, want cloudflare", decoded.Primary)
		}
	})

	t.Run("appends multiple records with newlines", func(t *testing.T) {
		tmpDir := t.TempDir()
		logPath := filepath.Join(tmpDir, "detections.ndjson")

		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Setenv("LOG_PATH", logPath)

		sink := NewLogSink()
		ctx := context.Background()

		if err := sink.Start(ctx); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		defer sink.Close()

		for i := 1; i <= 3; i++ {
			rec := detect.Record{
				RunID:  "run-" + string(rune('0'+i)),
				Domain: "example.com",
			}
			if err := sink.Enqueue(rec); err != nil {
				t.Fatalf("Enqueue() failed: %v", err)
			}
		}

		sink.Close()

		content, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}

		if len(content) == 0 {
			t.Error("log file should not be empty")
		}

		newlineCount := 0
		for _, b := range content {
			if b == '\n' {
				newlineCount++
			}
		}

		if newlineCount != 3 {
			t.Errorf("expected 3 newlines, got %d", newlineCount)
		}
	})

	t.Run("handles stdout mode without error", func(t *testing.T) {
		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Setenv("LOG_PATH", "stdout")

		sink := NewLogSink()
		ctx := context.Background()

		if err := sink.Start(ctx); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		defer sink.Close()

		rec := detect.Record{RunID: "stdout-test"}

		err := sink.Enqueue(rec)
		if err != nil {
			t.Errorf("Enqueue() to stdout failed: %v", err)
		}
	})

	t.Run("handles concurrent writes safely", func(t *testing.T) {
		tmpDir := t.TempDir()
		logPath := filepath.Join(tmpDir, "concurrent.ndjson")

		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Setenv("LOG_PATH", logPath)

		sink := NewLogSink()
		ctx := context.Background()

		if err := sink.Start(ctx); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		defer sink.Close()

		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func(id int) {
				rec := detect.Record{
					RunID:  "concurrent-" + string(rune('0'+id)),
					Domain: "example.com",
				}
				_ = sink.Enqueue(rec)
				done <- true
			}(i)
		}

		for i := 0; i < 10; i++ {
			<-done
		}
	})
}

// TestLogSinkClose tests closing the log sink
func TestLogSinkClose(t *testing.T) {
	t.Run("closes file handle", func(t *testing.T) {
		tmpDir := t.TempDir()
		logPath := filepath.Join(tmpDir, "closeable.ndjson")

		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Setenv("LOG_PATH", logPath)

		sink := NewLogSink()
		ctx := context.Background()

		if err := sink.Start(ctx); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}

		err := sink.Close()
		if err != nil {
			t.Errorf("Close() failed: %v", err)
		}

		// Writing after close must not panic.
		rec := detect.Record{RunID: "after-close"}
		_ = sink.Enqueue(rec)
	})

	t.Run("handles close without start", func(t *testing.T) {
		sink := NewLogSink()
		err := sink.Close()
		if err != nil {
			t.Errorf("Close() on unstarted sink should not error: %v", err)
		}
	})

	t.Run("handles stdout mode close", func(t *testing.T) {
		oldPath := os.Getenv("LOG_PATH")
		defer os.Setenv("LOG_PATH", oldPath)
		os.Setenv("LOG_PATH", "stdout")

		sink := NewLogSink()
		ctx := context.Background()
		sink.Start(ctx)

		err := sink.Close()
		if err != nil {
			t.Errorf("Close() for stdout mode failed: %v", err)
		}
	})
}

// TestLogSinkName tests the Name method
func TestLogSinkName(t *testing.T) {
	sink := NewLogSink()
	if sink.Name() != "log" {
		t.Errorf("Name() = %q, want log", sink.Name())
	}
}

// TestLogSinkAppendMode tests that log sink appends to existing files
func TestLogSinkAppendMode(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "append.ndjson")

	oldPath := os.Getenv("LOG_PATH")
	defer os.Setenv("LOG_PATH", oldPath)
	os.Setenv("LOG_PATH", logPath)

	sink1 := NewLogSink()
	ctx := context.Background()
	if err := sink1.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	sink1.Enqueue(detect.Record{RunID: "first"})
	sink1.Close()

	// Second sink should append, not truncate.
	sink2 := NewLogSink()
	if err := sink2.Start(ctx); err != nil {
		t.Fatalf("Second Start() failed: %v", err)
	}

	sink2.Enqueue(detect.Record{RunID: "second"})
	sink2.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, "first") {
		t.Error("first record not found in log")
	}
	if !strings.Contains(contentStr, "second") {
		t.Error("second record not found in log")
	}
}
