package debug

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartStatsLogger_LogsSources(t *testing.T) {
	out := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(out, nil))
	stop := StartStatsLogger(10*time.Millisecond, logger, func() []slog.Attr {
		return []slog.Attr{slog.Uint64("clicks", 42)}
	}, nil)

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), `"msg":"stats"`) {
		if time.Now().After(deadline) {
			t.Fatalf("no stats line logged: %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
	stop()
	stop()

	line := out.String()
	for _, key := range []string{`"goroutines":`, `"heap_alloc":`, `"clicks":42`} {
		if !strings.Contains(line, key) {
			t.Fatalf("missing %s in %q", key, line)
		}
	}

	// Nothing is logged after stop returns.
	n := len(out.String())
	time.Sleep(40 * time.Millisecond)
	if len(out.String()) != n {
		t.Fatalf("logger kept running after stop")
	}
}

func TestStartStatsLogger_NilLogger(t *testing.T) {
	StartStatsLogger(time.Millisecond, nil)()
}
