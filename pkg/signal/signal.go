// Package signal provides synchronous reactive cells.
//
// A Signal holds a value that can be set from outside. A Memo derives a value
// from one or more sources and recomputes it eagerly, inside the Set call that
// changed a source, so a reader never observes a derived value computed from
// superseded inputs.
//
// Cells are not safe for concurrent use. They are meant to be driven from a
// single goroutine, such as a UI update loop.
package signal

// Source is anything a Memo can depend on.
type Source interface {
	// Version increases every time the value changes.
	Version() uint64

	// Watch registers fn to run after every change. The returned function
	// removes the registration.
	Watch(fn func()) (cancel func())
}

// observers is an ordered subscriber list. Notification order is registration order.
type observers struct {
	nextID  int
	entries []observer
}

type observer struct {
	id int
	fn func()
}

func (o *observers) add(fn func()) func() {
	id := o.nextID
	o.nextID++
	o.entries = append(o.entries, observer{id: id, fn: fn})
	return func() { o.remove(id) }
}

func (o *observers) remove(id int) {
	for i, e := range o.entries {
		if e.id == id {
			o.entries = append(o.entries[:i:i], o.entries[i+1:]...)
			return
		}
	}
}

func (o *observers) notify() {
	// Copy so callbacks may cancel themselves
	snapshot := append([]observer(nil), o.entries...)
	for _, e := range snapshot {
		e.fn()
	}
}

// Signal is a settable cell.
type Signal[T comparable] struct {
	value   T
	version uint64
	obs     observers
}

// New returns a Signal holding v.
func New[T comparable](v T) *Signal[T] {
	return &Signal[T]{value: v}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	return s.value
}

// Set stores v and reports whether it differed from the current value.
// Watchers run, synchronously, only when the value changed.
func (s *Signal[T]) Set(v T) bool {
	if s.value == v {
		return false
	}
	s.value = v
	s.version++
	s.obs.notify()
	return true
}

// Version increases on every change.
func (s *Signal[T]) Version() uint64 {
	return s.version
}

// Watch registers fn to run after each change.
func (s *Signal[T]) Watch(fn func()) func() {
	return s.obs.add(fn)
}

// Subscribe registers fn to receive each new value.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	return s.obs.add(func() { fn(s.value) })
}
