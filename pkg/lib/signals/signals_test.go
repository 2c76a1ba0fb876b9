//go:build !windows

package signals

import (
	"context"
	"syscall"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextCancelledOnSignal(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	ctx, stop := Context(context.Background(), logger)
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled")
	}
	assert.Eventually(t, func() bool { return hook.LastEntry() != nil }, time.Second, 10*time.Millisecond)
}

func TestSecondSignalExits(t *testing.T) {
	codes := make(chan int, 1)
	saved := exit
	exit = func(code int) { codes <- code }
	defer func() { exit = saved }()

	logger, _ := logtest.NewNullLogger()
	ctx, stop := Context(context.Background(), logger)
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))
	<-ctx.Done()
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case code := <-codes:
		assert.Equal(t, 1, code)
	case <-time.After(5 * time.Second):
		t.Fatal("no exit after second signal")
	}
}

func TestStopCancels(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	ctx, stop := Context(context.Background(), logger)
	stop()
	assert.Error(t, ctx.Err())
}
