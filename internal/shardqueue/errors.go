package shardqueue

import (
	"errors"
	"fmt"
)

// ErrQueueFull reports transient back-pressure: the shard queue stayed full
// for the whole EnqueueTimeout.
var ErrQueueFull = errors.New("shard queue full")

// ErrExecutorClosed reports that the executor has been stopped and accepts no
// further work.
var ErrExecutorClosed = errors.New("shard executor closed")

// QueueFullError satisfies errors.Is(_, ErrQueueFull) and records which key
// was rejected.
type QueueFullError struct {
	Key      string
	Shard    int // 0 <= Shard < cfg.Shards
	Length   int // queue length at timeout
	Capacity int // cap(queue)
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("shard queue %d full for key %q (len=%d cap=%d)", e.Shard, e.Key, e.Length, e.Capacity)
}

func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }

// PanicError is the final error of a job whose Run panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("job panicked: %v", e.Value) }
