package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		log        func(cl *ConsoleLogger)
		want       bool
	}{
		{"info passes at info", "info", func(cl *ConsoleLogger) { cl.LogInfo("m") }, true},
		{"debug filtered at info", "info", func(cl *ConsoleLogger) { cl.LogDebug("m") }, false},
		{"trace filtered at info", "info", func(cl *ConsoleLogger) { cl.LogTrace("m") }, false},
		{"error passes at info", "info", func(cl *ConsoleLogger) { cl.LogError("m") }, true},
		{"debug passes at debug", "debug", func(cl *ConsoleLogger) { cl.LogDebug("m") }, true},
		{"trace passes at trace", "trace", func(cl *ConsoleLogger) { cl.LogTrace("m") }, true},
		{"warn filtered at error", "error", func(cl *ConsoleLogger) { cl.LogWarn("m") }, false},
		{"info passes with invalid level", "bogus", func(cl *ConsoleLogger) { cl.LogInfo("m") }, true},
		{"info passes with empty level", "", func(cl *ConsoleLogger) { cl.LogInfo("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.configured)
			tt.log(cl)
			got := buf.Len() > 0
			if got != tt.want {
				t.Errorf("output written = %v, want %v (buffer: %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.LogInfo("reading files")

	out := buf.String()
	if !strings.Contains(out, "[INFO] reading files") {
		t.Errorf("unexpected format: %q", out)
	}
	if !strings.HasPrefix(out, "[") {
		t.Errorf("missing timestamp prefix: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("missing trailing newline: %q", out)
	}
}

func TestNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")
	// Must not panic.
	cl.LogInfo("dropped")
	cl.LogError("dropped")
	cl.LogScanSummary("dir", 1, 0)
	cl.LogExportSummary("store.db", 1, time.Second)
}

func TestLogScanSummary(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.LogScanSummary("/data/session1", 12, 1)

	out := buf.String()
	if !strings.Contains(out, "Scanned /data/session1: 12 files (1 errors)") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestLogExportSummary(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")
	cl.LogExportSummary("out.db", 7, 1500*time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "Exported 7 objects to out.db") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "1.5s") {
		t.Errorf("duration not formatted: %q", out)
	}
}

func TestSummaryFilteredBelowInfo(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "error")
	cl.LogScanSummary("dir", 3, 0)
	if buf.Len() != 0 {
		t.Errorf("summary should be filtered at error level: %q", buf.String())
	}
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cl.LogInfo("concurrent message")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Errorf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "concurrent message") {
			t.Errorf("interleaved write: %q", line)
		}
	}
}
