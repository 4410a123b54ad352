package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/drover/pkg/utils/async"
)

func TestDispatch_RunsHandler(t *testing.T) {
	done := make(chan struct{})

	async.Dispatch(context.Background(), func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

func TestDispatch_SurvivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan bool, 1)
	async.Dispatch(ctx, func(ctx context.Context) error {
		done <- ctx.Err() == nil
		return nil
	})

	select {
	case alive := <-done:
		if !alive {
			t.Error("handler context should not inherit caller cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

func TestDispatch_RecoversFromPanic(t *testing.T) {
	done := make(chan struct{})

	async.Dispatch(context.Background(), func(ctx context.Context) error {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
	// Reaching here without the test process dying is the assertion
}

func TestDispatch_LogsHandlerError(t *testing.T) {
	done := make(chan struct{})

	async.Dispatch(context.Background(), func(ctx context.Context) error {
		defer close(done)
		return errors.New("handler failed")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}
