package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// WithSignals returns a context cancelled on SIGINT or SIGTERM.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			slog.Info("signal received", slog.String("signal", sig.String()))
			cancel()
		}
	}()

	return ctx, cancel
}

// Graceful runs stop and falls back to force once timeout elapses.
func Graceful(timeout time.Duration, stop, force func()) (forced bool) {
	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-stopped:
		return false
	case <-timer.C:
		force()
		<-stopped
		return true
	}
}
