package listing

import "sync"

// Holder stages one record for create or edit. It always holds a value:
// Unstage resets to blank instead of clearing the holder.
type Holder[T any] struct {
	mu         sync.RWMutex
	record     T
	blank      func() T
	generation uint64
}

// NewHolder starts blank. blank builds the reset value; nil means the zero T.
func NewHolder[T any](blank func() T) *Holder[T] {
	if blank == nil {
		blank = func() T {
			var zero T
			return zero
		}
	}
	return &Holder[T]{record: blank(), blank: blank}
}

// Stage copies r into the holder.
func (h *Holder[T]) Stage(r T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record = r
	h.generation++
}

// Unstage resets every field to its blank value.
func (h *Holder[T]) Unstage() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record = h.blank()
	h.generation++
}

func (h *Holder[T]) Staged() T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.record
}

// Generation changes on every Stage and Unstage.
func (h *Holder[T]) Generation() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.generation
}

// Edit applies fn to the staged record only if nothing was staged or
// unstaged since generation was read. It reports whether fn ran.
func (h *Holder[T]) Edit(generation uint64, fn func(*T)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if generation != h.generation {
		return false
	}
	fn(&h.record)
	return true
}
