package client

import (
	"context"

	"github.com/fanfou-go/client/internal/shardqueue"
)

// executor abstracts the sharded job runner used by LookupUsers.
type executor interface {
	Do(context.Context, string, shardqueue.Job) error
	Stop()
}
