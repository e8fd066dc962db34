package signal

// Memo is a derived cell. It computes once on construction and again,
// synchronously, whenever a dependency changes.
type Memo[T any] struct {
	compute      func() T
	equal        func(a, b T) bool
	value        T
	version      uint64
	computations int
	obs          observers
	cancels      []func()
}

// NewMemo derives a value from deps using compute. equal decides whether a
// recomputed value is a change worth notifying subscribers about; nil means
// every recomputation counts as a change.
func NewMemo[T any](compute func() T, equal func(a, b T) bool, deps ...Source) *Memo[T] {
	m := &Memo[T]{
		compute: compute,
		equal:   equal,
	}
	m.value = compute()
	m.computations = 1
	for _, dep := range deps {
		m.cancels = append(m.cancels, dep.Watch(m.recompute))
	}
	return m
}

func (m *Memo[T]) recompute() {
	next := m.compute()
	m.computations++
	if m.equal != nil && m.equal(m.value, next) {
		// Keep the old value so readers holding it see no churn
		return
	}
	m.value = next
	m.version++
	m.obs.notify()
}

// Get returns the memoized value.
func (m *Memo[T]) Get() T {
	return m.value
}

// Version increases every time the value changes.
func (m *Memo[T]) Version() uint64 {
	return m.version
}

// Computations returns how many times compute has run.
func (m *Memo[T]) Computations() int {
	return m.computations
}

// Watch registers fn to run after each change.
func (m *Memo[T]) Watch(fn func()) func() {
	return m.obs.add(fn)
}

// Subscribe registers fn to receive each new value.
func (m *Memo[T]) Subscribe(fn func(T)) func() {
	return m.obs.add(func() { fn(m.value) })
}

// Dispose detaches the memo from its dependencies.
func (m *Memo[T]) Dispose() {
	for _, cancel := range m.cancels {
		cancel()
	}
	m.cancels = nil
}
