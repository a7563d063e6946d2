package shardqueue

import (
	"errors"
	"fmt"
)

// ErrQueueFull reports back-pressure: the shard stayed full for the whole
// enqueue timeout.
var ErrQueueFull = errors.New("shard queue full")

// ErrExecutorClosed reports that Stop was called; no further work is accepted.
var ErrExecutorClosed = errors.New("shard executor closed")

// QueueFullError carries diagnostics and matches ErrQueueFull.
type QueueFullError struct {
	Key      string
	Shard    int
	Capacity int
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("shard %d full for key %q (cap=%d)", e.Shard, e.Key, e.Capacity)
}

func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }
