package game

// TaskStatus tells the task set whether to keep running a task.
type TaskStatus int

const (
	TaskCont TaskStatus = iota
	TaskDone
)

// TaskFunc runs once per frame. elapsed is the time since the task was added.
type TaskFunc func(elapsed float64) TaskStatus

type task struct {
	name    string
	fn      TaskFunc
	added   float64
	removed bool
}

// TaskSet is the per-frame task list. Tasks run in the order they were added
// and are dropped when they return TaskDone or are removed by name.
type TaskSet struct {
	tasks []*task
	now   float64
}

// NewTaskSet creates an empty task set.
func NewTaskSet() *TaskSet {
	return &TaskSet{}
}

// SetTime sets the clock used to stamp newly added tasks.
func (ts *TaskSet) SetTime(now float64) {
	ts.now = now
}

// Add registers fn under name, replacing any task with the same name.
func (ts *TaskSet) Add(name string, fn TaskFunc) {
	ts.Remove(name)
	ts.tasks = append(ts.tasks, &task{name: name, fn: fn, added: ts.now})
}

// Remove drops the named task. It reports whether a task was removed.
func (ts *TaskSet) Remove(name string) bool {
	for i, t := range ts.tasks {
		if t.name == name && !t.removed {
			t.removed = true
			ts.tasks = append(ts.tasks[:i:i], ts.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether the named task is scheduled.
func (ts *TaskSet) Has(name string) bool {
	for _, t := range ts.tasks {
		if t.name == name && !t.removed {
			return true
		}
	}
	return false
}

// Len returns the number of scheduled tasks.
func (ts *TaskSet) Len() int { return len(ts.tasks) }

// Run calls every task once at time now. A task removed by an earlier task in
// the same run is skipped.
func (ts *TaskSet) Run(now float64) {
	ts.now = now
	snapshot := append([]*task(nil), ts.tasks...)
	for _, t := range snapshot {
		if t.removed {
			continue
		}
		if t.fn(now-t.added) == TaskDone {
			ts.Remove(t.name)
		}
	}
}
