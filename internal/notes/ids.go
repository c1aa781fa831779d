package notes

// Kind selects one of the independent id counters.
type Kind int

const (
	KindNote Kind = iota
	KindFolder
	KindTag
	kindCount
)

// Allocator hands out strictly increasing ids per entity kind, starting
// at 1. An id is never reused within a process lifetime, including after
// the entity holding it has been permanently deleted.
type Allocator struct {
	next [kindCount]int
}

// NewAllocator creates an allocator with all counters at 1.
func NewAllocator() *Allocator {
	a := &Allocator{}
	for i := range a.next {
		a.next[i] = 1
	}
	return a
}

// Next returns the next id for the given kind.
func (a *Allocator) Next(k Kind) int {
	id := a.next[k]
	a.next[k]++
	return id
}
