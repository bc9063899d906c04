package shutdown_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/muhammadheryan/community-market/utils/shutdown"
)

func TestWithSignals_CancelledBySignal(t *testing.T) {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send signal: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled by SIGTERM")
	}
}

func TestWithSignals_ParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := shutdown.WithSignals(parent)
	defer cancel()

	cancelParent()

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled with its parent")
	}
}
