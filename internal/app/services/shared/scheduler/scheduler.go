package scheduler

import (
	"carerouter-service/internal/app/contracts"
	"sort"
	"sync"
	"time"
)

type timerScheduler struct{}

// NewTimerScheduler runs callbacks on their own goroutine via time.AfterFunc.
func NewTimerScheduler() contracts.Scheduler {
	return timerScheduler{}
}

func (timerScheduler) After(d time.Duration, fn func()) func() {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

type manualTask struct {
	due      time.Duration
	seq      int
	fn       func()
	canceled bool
}

// Manual is a scheduler driven by the caller. Nothing runs until Advance or
// RunAll is called, and callbacks run on the caller's goroutine in due order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	task := &manualTask{due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, task)
	return func() {
		m.mu.Lock()
		task.canceled = true
		m.mu.Unlock()
	}
}

// Advance moves the clock forward by d and runs every task that falls due,
// including tasks scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		task := m.next(target)
		if task == nil {
			break
		}
		task.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// RunAll runs tasks until none are pending, whatever their delay.
func (m *Manual) RunAll() {
	for {
		task := m.next(-1)
		if task == nil {
			return
		}
		task.fn()
	}
}

// Pending counts tasks that are neither run nor canceled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, task := range m.tasks {
		if !task.canceled {
			count++
		}
	}
	return count
}

// next pops the earliest live task due at or before limit. A negative limit
// means no limit.
func (m *Manual) next(limit time.Duration) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.tasks[:0]
	for _, task := range m.tasks {
		if !task.canceled {
			live = append(live, task)
		}
	}
	m.tasks = live
	if len(m.tasks) == 0 {
		return nil
	}

	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due == m.tasks[j].due {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due < m.tasks[j].due
	})
	task := m.tasks[0]
	if limit >= 0 && task.due > limit {
		return nil
	}
	m.tasks = m.tasks[1:]
	if task.due > m.now {
		m.now = task.due
	}
	return task
}
