package shardqueue

import "context"

// Job is a unit of work executed by an Executor. A Job may be run more than
// once when it fails with a recoverable error.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function to a Job.
type JobFunc func(ctx context.Context) error

// Run implements Job.
func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// named is implemented by jobs that want to appear in logs by name.
type named interface {
	Name() string
}

func jobName(j Job) string {
	if n, ok := j.(named); ok {
		return n.Name()
	}
	return ""
}
