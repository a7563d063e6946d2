package client

import (
	"context"

	"github.com/capydiary/capydiary/client/internal/shardqueue"
)

// Executor runs background warm-up jobs. Jobs sharing a key run in order.
type Executor interface {
	Submit(ctx context.Context, key string, job shardqueue.Job) error
	Barrier(ctx context.Context, key string) error
	Stop()
}
