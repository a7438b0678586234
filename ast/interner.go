package ast

import "sync"

// Interner is a set-backed string store. Inserting an equal string twice
// returns the same backing string; because Go strings are immutable value
// headers over a byte array, once a string is stored in the interner's map
// it never moves, so views handed out by Intern remain valid for the
// interner's lifetime even as the map grows (no small-string optimization
// exists in Go's string representation to violate that guarantee).
//
// A rule's build-time Interner is meant to be read-heavy after Build
// returns; evaluation may still grow it (coercions and cat() produce new
// strings). Evaluations that run concurrently and might allocate strings
// must not share an Interner unless they synchronize access to it; see
// Interner.Scratch.
type Interner struct {
	mu   sync.Mutex
	strs map[string]string
}

// NewInterner returns an empty interner.
func NewInterner() *Interner {
	return &Interner{strs: make(map[string]string)}
}

// Intern returns the canonical stored instance of s, inserting it if this
// is the first occurrence.
func (in *Interner) Intern(s string) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	if canon, ok := in.strs[s]; ok {
		return canon
	}
	in.strs[s] = s
	return s
}

// Len reports the number of distinct strings currently interned.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.strs)
}

// Scratch returns a fresh, empty Interner, independent of in. Callers
// evaluating a rule concurrently on multiple goroutines should give each
// evaluation its own scratch interner rather than sharing one across
// goroutines. It starts empty rather than copying in: strings already
// canonicalized by in stay valid regardless, since Go's garbage collector
// keeps a string's backing array alive as long as any view of it is
// reachable, independent of whether the map that first stored it does.
func (in *Interner) Scratch() *Interner {
	return NewInterner()
}
