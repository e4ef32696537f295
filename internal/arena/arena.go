// Package arena implements a chunked bump/free-list allocator for tree
// nodes, matching spec.md §4.E. It is intentionally narrow: it exists to
// keep node allocation fast under rebuild storms, not as a general-purpose
// object pool. Callers must not allocate polygons, IP blocks, or other
// divergent-lifetime objects from it.
package arena

import "sync"

// DefaultChunkSize is the number of T-sized cells allocated per chunk when
// none is specified.
const DefaultChunkSize = 1024

// Arena is a generic bump allocator with a free list of released cells.
// The free list is a slice of cell pointers; it is not threaded through
// the cells themselves. It is protected by a mutex so a worker pool may
// allocate/release concurrently; queries never touch the arena.
type Arena[T any] struct {
	mu        sync.Mutex
	chunkSize int
	chunks    [][]T // owned in allocation order; destroyed LIFO
	free      []*T  // free-list of released cells
	nextIdx   int   // next unused index in the most recent chunk
}

// New constructs an Arena with the given chunk size. A non-positive
// chunkSize falls back to DefaultChunkSize.
func New[T any](chunkSize int) *Arena[T] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena[T]{chunkSize: chunkSize}
	a.growLocked()
	return a
}

func (a *Arena[T]) growLocked() {
	chunk := make([]T, a.chunkSize)
	a.chunks = append(a.chunks, chunk)
	a.nextIdx = 0
}

// Allocate returns a pointer to a zeroed T-sized cell. It pops the free
// list first; if the free list is empty it grows by one chunk.
func (a *Arena[T]) Allocate() *T {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.free); n > 0 {
		p := a.free[n-1]
		a.free = a.free[:n-1]
		var zero T
		*p = zero
		return p
	}

	current := a.chunks[len(a.chunks)-1]
	if a.nextIdx >= len(current) {
		a.growLocked()
		current = a.chunks[len(a.chunks)-1]
	}
	p := &current[a.nextIdx]
	a.nextIdx++
	return p
}

// Deallocate pushes p back onto the free list. The arena never runs
// destructors; callers must finalize p themselves before releasing it.
func (a *Arena[T]) Deallocate(p *T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.free = append(a.free, p)
}

// Stats reports the arena's current chunk and free-list sizes, useful for
// diagnosing rebuild-induced churn.
type Stats struct {
	Chunks     int
	ChunkSize  int
	FreeCells  int
	TotalCells int
}

// Stats returns a snapshot of the arena's allocation state.
func (a *Arena[T]) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Stats{
		Chunks:     len(a.chunks),
		ChunkSize:  a.chunkSize,
		FreeCells:  len(a.free),
		TotalCells: len(a.chunks) * a.chunkSize,
	}
}

// Release drops every chunk the arena owns. Chunks are described as
// destroyed in LIFO order (most-recently-allocated chunk first) even
// though Go's GC reclaims them independently of this call's ordering —
// Release simply severs the arena's own references so the runtime can
// collect them.
func (a *Arena[T]) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.chunks) - 1; i >= 0; i-- {
		a.chunks[i] = nil
	}
	a.chunks = nil
	a.free = nil
	a.nextIdx = 0
}
