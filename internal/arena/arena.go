// Package arena owns the native image buffers allocated during one
// pipeline invocation and releases each of them exactly once.
//
// OpenCV Mats are manually managed memory; the usual Go idiom of a defer
// per buffer breaks down when a dozen buffers are created across several
// stages with multiple failure exits between them. An Arena centralizes
// ownership: every stage registers the Mats it creates, and the invocation
// releases the whole set in one deferred call, on every control-flow path.
//
// Resources are tracked by identity (the registered pointer), never by
// probing the buffer itself — an "is this empty" check on an already freed
// Mat would touch freed native memory.
package arena

// Closer releases one native resource. *gocv.Mat satisfies it.
type Closer interface {
	Close() error
}

// Arena tracks native resources for a single invocation. It is not safe
// for concurrent use; each invocation owns its own Arena.
type Arena struct {
	order  []Closer
	closed map[Closer]bool
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{closed: make(map[Closer]bool)}
}

// Register adds c to the arena. Registering the same resource more than
// once is harmless: identity tracking closes it a single time. A nil
// resource is ignored.
func (a *Arena) Register(c Closer) {
	if a == nil || c == nil {
		return
	}
	a.order = append(a.order, c)
}

// Len reports how many registrations the arena holds, duplicates included.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// ReleaseAll closes every registered resource exactly once, in reverse
// registration order so that derived buffers go before their sources.
// Calling it again is a no-op, which makes it safe both to defer and to
// call early on a failure branch.
func (a *Arena) ReleaseAll() {
	if a == nil {
		return
	}
	for i := len(a.order) - 1; i >= 0; i-- {
		c := a.order[i]
		if a.closed[c] {
			continue
		}
		a.closed[c] = true
		// Release errors are unrecoverable at this point; the buffer is
		// gone either way.
		_ = c.Close()
	}
}
