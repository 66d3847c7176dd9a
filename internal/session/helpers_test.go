package session_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/san-kum/ksdash/internal/client"
	"github.com/san-kum/ksdash/internal/logging"
)

type fakeFetcher struct {
	calls  atomic.Int32
	result *client.Result
	err    error
	gate   chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context) (*client.Result, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Debug(context.Context, string, ...logging.Field) {}
func (l *recordingLogger) Info(context.Context, string, ...logging.Field)  {}
func (l *recordingLogger) Warn(context.Context, string, ...logging.Field)  {}

func (l *recordingLogger) Error(_ context.Context, msg string, _ ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) With(...logging.Field) logging.Logger { return l }

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}
