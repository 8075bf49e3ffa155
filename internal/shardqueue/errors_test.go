package shardqueue

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestQueueFullError_ErrorAndIs(t *testing.T) {
	e := &QueueFullError{Key: "~abc", Shard: 3, Length: 10, Capacity: 16}
	if !strings.Contains(e.Error(), `"~abc"`) {
		t.Fatalf("key missing from %q", e.Error())
	}
	if !errors.Is(e, ErrQueueFull) {
		t.Fatal("expected errors.Is(e, ErrQueueFull) to be true")
	}
	if errors.Is(e, ErrExecutorClosed) {
		t.Fatal("unexpected match with ErrExecutorClosed")
	}
}

func TestPanicError(t *testing.T) {
	e := &PanicError{Value: "kaboom"}
	if !strings.Contains(e.Error(), "kaboom") {
		t.Fatalf("unexpected message %q", e.Error())
	}
}

func TestJobFunc_AdaptsFunction(t *testing.T) {
	called := false
	j := JobFunc(func(ctx context.Context) error { called = true; return nil })
	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !called {
		t.Fatal("expected function to be called")
	}
}
