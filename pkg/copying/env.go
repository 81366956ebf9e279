package copying

import (
	"github.com/daviszhen/tabular/pkg/sched"
	"github.com/daviszhen/tabular/pkg/util"
)

// Env names the collaborators of one call: the allocator every output
// buffer comes from and the execution queue the bulk work is submitted
// to. A nil Env (or nil field) selects util.GAlloc and the shared
// default queue.
type Env struct {
	Alloc util.BytesAllocator
	Queue *sched.Queue
}

func (env *Env) alloc() util.BytesAllocator {
	if env == nil || env.Alloc == nil {
		return util.GAlloc
	}
	return env.Alloc
}

func (env *Env) queue() *sched.Queue {
	if env == nil || env.Queue == nil {
		return sched.Default()
	}
	return env.Queue
}

// run submits fn to the call's queue and blocks until it completes.
// Validation always happens before run, so contract violations are
// raised synchronously and never reach the queue.
func (env *Env) run(fn func() error) error {
	return env.queue().Submit(fn).Wait()
}
