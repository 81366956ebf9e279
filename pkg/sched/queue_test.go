package sched

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue("fifo")
	defer q.Close()

	var order []int
	var tasks []*Task
	for i := 0; i < 100; i++ {
		i := i
		tasks = append(tasks, q.Submit(func() error {
			order = append(order, i)
			return nil
		}))
	}
	for _, task := range tasks {
		assert.NoError(t, task.Wait())
	}
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestQueueError(t *testing.T) {
	q := NewQueue("err")
	defer q.Close()

	want := errors.New("boom")
	err := q.Submit(func() error { return want }).Wait()
	assert.ErrorIs(t, err, want)
	// a failed task does not stall the worker
	assert.NoError(t, q.Sync())
}

func TestQueueConcurrentSubmit(t *testing.T) {
	q := NewQueue("conc")
	defer q.Close()

	var mu sync.Mutex
	total := 0
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q.Submit(func() error {
					mu.Lock()
					total++
					mu.Unlock()
					return nil
				})
			}
		}()
	}
	wg.Wait()
	assert.NoError(t, q.Sync())
	assert.Equal(t, 400, total)
}

func TestQueueResubmitFromTask(t *testing.T) {
	q := NewQueue("resub")
	defer q.Close()

	ran := false
	err := q.Submit(func() error {
		// follow-up submission from inside a running task must not
		// deadlock on the submit lock
		q.Submit(func() error {
			ran = true
			return nil
		})
		return nil
	}).Wait()
	assert.NoError(t, err)
	assert.NoError(t, q.Sync())
	assert.True(t, ran)
}

func TestDefaultQueueShared(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.NoError(t, Default().Sync())
}
