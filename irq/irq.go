// Package irq shares resources between interrupt handlers with a
// priority-ceiling discipline.
//
// Every handler is a Task with a fixed priority. A resource is wrapped in a
// Shared value together with the tasks allowed to touch it; the highest of
// their priorities is the resource's ceiling. Locking from a task raises it
// to the ceiling for the length of the critical section, so no other
// claimant can run in the meantime. On the target the raise is an interrupt
// mask and never waits.
package irq

// Priority of a task. Higher values preempt lower ones; 0 is thread mode.
type Priority uint8

// NoIRQ marks a task that does not run from an interrupt vector.
const NoIRQ = -1

// Task is an execution context that may claim shared resources.
type Task struct {
	Name     string
	Priority Priority
	// IRQ is the interrupt line the task is bound to, or NoIRQ.
	IRQ int
}

// State is what a Guard needs to undo a Raise.
type State uintptr

// Guard keeps conflicting tasks from running during a critical section.
type Guard interface {
	// Raise keeps every task in users with a priority above from from
	// running until Lower is called with the returned State.
	Raise(from Priority, users []Task) State
	Lower(State)
}

// Shared is a resource plus its ownership table.
type Shared[T any] struct {
	name    string
	value   T
	users   []Task
	ceiling Priority
	guard   Guard
}

// Share wraps value so that only users can reach it, through guard.
func Share[T any](name string, value T, guard Guard, users ...Task) *Shared[T] {
	s := &Shared[T]{
		name:  name,
		value: value,
		users: users,
		guard: guard,
	}
	for _, u := range users {
		if u.Priority > s.ceiling {
			s.ceiling = u.Priority
		}
	}
	return s
}

// Name of the resource.
func (s *Shared[T]) Name() string { return s.name }

// Ceiling is the highest priority among the claiming tasks.
func (s *Shared[T]) Ceiling() Priority { return s.ceiling }

// Claims reports whether t is in the ownership table.
func (s *Shared[T]) Claims(t Task) bool {
	for _, u := range s.users {
		if u.Name == t.Name && u.Priority == t.Priority {
			return true
		}
	}
	return false
}

// Lock runs fn with the resource while from is raised to the ceiling and
// returns fn's error. It panics if from does not claim the resource.
// Locks of the same resource must not nest.
func (s *Shared[T]) Lock(from Task, fn func(T) error) error {
	if !s.Claims(from) {
		panic("irq: task " + from.Name + " does not claim " + s.name)
	}
	st := s.guard.Raise(from.Priority, s.users)
	defer s.guard.Lower(st)
	return fn(s.value)
}
