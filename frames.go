package mapview

import "time"

// FrameTask is work advanced once per display frame.
type FrameTask struct {
	// Update advances the task by dt and reports whether it has finished.
	Update func(dt time.Duration) (finished bool)
	// Done runs once after Update reports completion. It does not run when
	// the task is canceled.
	Done func()
}

// TaskHandle controls a scheduled FrameTask.
type TaskHandle interface {
	// Cancel stops the task synchronously. Canceling a finished or already
	// canceled task is a no-op.
	Cancel()
	// Active reports whether the task is still scheduled.
	Active() bool
}

// Scheduler runs tasks on every display frame until they finish or are
// canceled. The host drives it from its frame callback.
type Scheduler interface {
	Schedule(task FrameTask) TaskHandle
}

// FrameLoop is a Scheduler ticked manually by the host, typically from its
// per-frame update. There is no global animation manager.
type FrameLoop struct {
	tasks []*frameTask
}

type frameTask struct {
	FrameTask
	canceled bool
	finished bool
}

func (t *frameTask) Cancel() {
	if !t.finished {
		t.canceled = true
	}
}

func (t *frameTask) Active() bool {
	return !t.canceled && !t.finished
}

// NewFrameLoop creates an empty FrameLoop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// Schedule adds task to the loop. It first runs on the next Tick.
func (l *FrameLoop) Schedule(task FrameTask) TaskHandle {
	t := &frameTask{FrameTask: task}
	l.tasks = append(l.tasks, t)
	return t
}

// Tick advances every active task by dt. Tasks scheduled from inside a
// task's callbacks start on the following Tick.
func (l *FrameLoop) Tick(dt time.Duration) {
	n := len(l.tasks)
	for i := 0; i < n; i++ {
		t := l.tasks[i]
		if !t.Active() {
			continue
		}
		if t.Update(dt) {
			t.finished = true
			if t.Done != nil {
				t.Done()
			}
		}
	}

	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if t.Active() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(l.tasks); i++ {
		l.tasks[i] = nil
	}
	l.tasks = kept
}

// Len returns the number of active tasks.
func (l *FrameLoop) Len() int {
	n := 0
	for _, t := range l.tasks {
		if t.Active() {
			n++
		}
	}
	return n
}
