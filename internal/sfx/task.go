package sfx

import (
	"context"
	"time"
)

type taskState int

const (
	taskRunning taskState = iota
	taskCompleted
	taskAborted
)

// Task is a cooperative operation stepped by Pool.Tick, such as a fade.
type Task struct {
	ctx       context.Context
	cancel    context.CancelFunc
	run       func(dt time.Duration) taskState
	done      chan struct{}
	finished  bool
	completed bool
}

func newTask(ctx context.Context, cancel context.CancelFunc, run func(time.Duration) taskState) *Task {
	return &Task{
		ctx:    ctx,
		cancel: cancel,
		run:    run,
		done:   make(chan struct{}),
	}
}

// Done is closed when the task completes or is cancelled.
func (t *Task) Done() <-chan struct{} { return t.done }

// Completed reports whether the task ran to the end. False while running and
// after cancellation.
func (t *Task) Completed() bool { return t.completed }

// Cancel stops the task at its next step. Values already applied stay.
func (t *Task) Cancel() { t.cancel() }

// step runs one tick of the task and reports whether it is still running.
func (t *Task) step(dt time.Duration) bool {
	if t.finished {
		return false
	}
	if t.ctx.Err() != nil {
		t.finish(false)
		return false
	}
	switch t.run(dt) {
	case taskCompleted:
		t.finish(true)
		return false
	case taskAborted:
		t.finish(false)
		return false
	default:
		return true
	}
}

func (t *Task) abort() {
	t.finish(false)
}

func (t *Task) finish(completed bool) {
	if t.finished {
		return
	}
	t.finished = true
	t.completed = completed
	t.cancel()
	close(t.done)
}
