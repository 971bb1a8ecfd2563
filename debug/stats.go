package debug

// Periodic runtime stats logger, started only when debug is on. Each line
// carries goroutine count, heap and stack figures, process RSS where the
// platform reports it, and whatever the registered sources add.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"sync"
	"time"
)

// Source contributes attributes to each stats line.
type Source func() []slog.Attr

// StartStatsLogger logs a "stats" line every interval until the returned
// stop function is called. stop waits for the logger goroutine to exit and
// may be called more than once.
func StartStatsLogger(interval time.Duration, logger *slog.Logger, sources ...Source) (stop func()) {
	if logger == nil {
		return func() {}
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		var rssErrLogged bool
		for {
			select {
			case <-quit:
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			attrs := []slog.Attr{
				slog.Uint64("goroutines", samples[0].Value.Uint64()),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("heap_inuse", ms.HeapInuse),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("num_gc", uint64(ms.NumGC)),
			}
			if rss, err := residentSetSize(); err == nil {
				attrs = append(attrs, slog.Uint64("rss", rss))
			} else if !rssErrLogged {
				logger.Warn("stats: rss unavailable", "error", err)
				rssErrLogged = true
			}
			for _, src := range sources {
				if src != nil {
					attrs = append(attrs, src()...)
				}
			}
			logger.LogAttrs(context.Background(), slog.LevelInfo, "stats", attrs...)
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(quit)
			<-done
		})
	}
}
