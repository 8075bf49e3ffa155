package shardqueue

import "context"

// Job is a unit of work executed by a ShardExecutor. A Job may be run more
// than once when it fails with a recoverable error.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a plain function to Job.
type JobFunc func(ctx context.Context) error

// Run implements Job for JobFunc.
func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }
