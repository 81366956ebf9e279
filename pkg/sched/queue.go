package sched

import (
	"sync"

	"go.uber.org/zap"

	"github.com/daviszhen/tabular/pkg/util"
)

// Queue is an ordered execution queue: tasks submitted to the same
// queue run in submission order on one worker goroutine; tasks on
// different queues have no ordering between them. Submitted work cannot
// be cancelled; callers synchronize by waiting on task handles or by
// draining the queue.
type Queue struct {
	name   string
	submit *util.ReentryLock
	tasks  chan *Task
	wg     sync.WaitGroup
	closed bool
}

// Task is the handle of in-flight work.
type Task struct {
	fn   func() error
	err  error
	done chan struct{}
}

// Wait blocks until the task ran and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

const queueDepth = 1024

func NewQueue(name string) *Queue {
	q := &Queue{
		name:   name,
		submit: util.NewReentryLock(),
		tasks:  make(chan *Task, queueDepth),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

func (q *Queue) run() {
	defer q.wg.Done()
	for t := range q.tasks {
		t.err = t.fn()
		t.fn = nil
		close(t.done)
	}
}

// Submit enqueues fn and returns its handle. Safe for concurrent use;
// a task running on this queue may submit follow-up work to it.
func (q *Queue) Submit(fn func() error) *Task {
	t := &Task{fn: fn, done: make(chan struct{})}
	q.submit.Lock()
	defer q.submit.Unlock()
	if q.closed {
		panic("submit on closed queue " + q.name)
	}
	q.tasks <- t
	return t
}

// Sync blocks until every task submitted before it has completed.
func (q *Queue) Sync() error {
	return q.Submit(func() error { return nil }).Wait()
}

// Close drains the queue and stops the worker. Submitting afterwards
// panics.
func (q *Queue) Close() {
	q.submit.Lock()
	if q.closed {
		q.submit.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.submit.Unlock()
	q.wg.Wait()
	util.Debug("queue closed", zap.String("name", q.name))
}

var (
	defQueue     *Queue
	defQueueOnce sync.Once
)

// Default returns the shared process-wide queue used when a call does
// not name one.
func Default() *Queue {
	defQueueOnce.Do(func() {
		defQueue = NewQueue("default")
	})
	return defQueue
}
