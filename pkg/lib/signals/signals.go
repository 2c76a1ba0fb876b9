package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// exit is replaced in tests.
var exit = os.Exit

// Context returns a child of parent that is cancelled on SIGINT or
// SIGTERM, so a running minimizer process is killed. If a second
// signal is caught, the program is terminated with exit code 1.
// Calling stop releases the handler.
func Context(parent context.Context, logger logrus.FieldLogger) (ctx context.Context, stop context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 2)
	signal.Notify(c, shutdownSignals...)

	done := make(chan struct{})
	go func() {
		select {
		case s := <-c:
			logger.WithField("signal", s.String()).Info("interrupted, stopping")
			cancel()
		case <-done:
			return
		}
		select {
		case <-c:
			exit(1) // second signal. Exit directly.
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(c)
		close(done)
		cancel()
	}
}
