package irq

import "sync"

// MutexGuard serializes critical sections with a mutex. It stands in for
// interrupt masking on hosts, where goroutines preempt each other freely
// regardless of priority.
type MutexGuard struct {
	mu sync.Mutex
}

func (g *MutexGuard) Raise(Priority, []Task) State {
	g.mu.Lock()
	return 0
}

func (g *MutexGuard) Lower(State) {
	g.mu.Unlock()
}
