package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	value int
}

func TestArena_AllocateZeroed(t *testing.T) {
	a := New[node](4)
	p := a.Allocate()
	assert.Equal(t, 0, p.value)
	p.value = 42
	assert.Equal(t, 42, p.value)
}

func TestArena_GrowsAcrossChunks(t *testing.T) {
	a := New[node](2)
	ptrs := make([]*node, 0, 10)
	for i := 0; i < 10; i++ {
		p := a.Allocate()
		p.value = i
		ptrs = append(ptrs, p)
	}
	for i, p := range ptrs {
		assert.Equal(t, i, p.value)
	}
	stats := a.Stats()
	require.GreaterOrEqual(t, stats.Chunks, 5)
}

func TestArena_DeallocateReusesCell(t *testing.T) {
	a := New[node](4)
	p1 := a.Allocate()
	p1.value = 7
	a.Deallocate(p1)

	statsBefore := a.Stats()
	assert.Equal(t, 1, statsBefore.FreeCells)

	p2 := a.Allocate()
	assert.Same(t, p1, p2)
	assert.Equal(t, 0, p2.value, "deallocated cells are zeroed on reuse")
}

func TestArena_ConcurrentAllocate(t *testing.T) {
	a := New[node](64)
	var wg sync.WaitGroup
	const workers = 8
	const perWorker = 200

	results := make(chan *node, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results <- a.Allocate()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[*node]bool)
	for p := range results {
		assert.False(t, seen[p], "arena must never hand out the same cell twice concurrently")
		seen[p] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestArena_Release(t *testing.T) {
	a := New[node](4)
	a.Allocate()
	a.Release()
	stats := a.Stats()
	assert.Equal(t, 0, stats.Chunks)
}
