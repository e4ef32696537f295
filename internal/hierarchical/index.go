// Package hierarchical implements the IP-block spatial index described in
// spec.md §4.G: a user-declared tree of named blocks, each owning its own
// quadtree and R-tree, with Morton pre-sorting for locality-preserving
// bulk loads and worker-pool-backed parallel operations.
package hierarchical

import (
	"fmt"
	"sort"
	"sync"
	"time"
	"unsafe"

	"github.com/arx-os/zlayout"
	"github.com/arx-os/zlayout/internal/coreerr"
	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/morton"
	"github.com/arx-os/zlayout/internal/objectid"
	"github.com/arx-os/zlayout/internal/quadtree"
	"github.com/arx-os/zlayout/internal/telemetry/metrics"
	"github.com/arx-os/zlayout/internal/workerpool"
)

// RootBlockName is the name of the block created at construction.
const RootBlockName = "root"

// Index is a hierarchical spatial index over objects of type T.
type Index[T comparable] struct {
	worldBounds        geometry.Rectangle
	maxObjectsPerBlock int
	maxHierarchyLevels int
	bboxOf             quadtree.BBoxFunc[T]

	pool            *workerpool.Pool
	parallelEnabled bool
	metrics         *metrics.IndexMetrics
	cache           *queryCache

	mu     sync.RWMutex // guards block topology (names, parent/child links)
	root   *block[T]
	blocks map[string]*block[T]

	mortonMu      sync.Mutex
	mortonBuckets map[uint64][]T
}

// Option configures optional Index features at construction.
type Option[T comparable] func(*Index[T])

// WithWorkerPool supplies a worker pool to back parallel_* operations. If
// omitted, a pool sized to runtime.NumCPU() is created.
func WithWorkerPool[T comparable](pool *workerpool.Pool) Option[T] {
	return func(idx *Index[T]) { idx.pool = pool }
}

// WithMetrics attaches a metrics.IndexMetrics instance for observability.
func WithMetrics[T comparable](m *metrics.IndexMetrics) Option[T] {
	return func(idx *Index[T]) { idx.metrics = m }
}

// WithQueryCache enables a ristretto-backed range-query cache with the
// given cost budget and entry TTL.
func WithQueryCache[T comparable](maxCost int64, ttl time.Duration) Option[T] {
	return func(idx *Index[T]) {
		cache, err := newQueryCache(maxCost, ttl, idx.metrics)
		if err == nil {
			idx.cache = cache
		}
	}
}

// WithParallelEnabled overrides whether parallel_* operations dispatch
// through the worker pool. If omitted, this is recorded from
// zlayout.ParallelEnabled() at construction time.
func WithParallelEnabled[T comparable](enabled bool) Option[T] {
	return func(idx *Index[T]) { idx.parallelEnabled = enabled }
}

// New constructs a HierarchicalIndex rooted at worldBounds.
func New[T comparable](worldBounds geometry.Rectangle, maxObjectsPerBlock, maxHierarchyLevels int, bboxOf quadtree.BBoxFunc[T], opts ...Option[T]) *Index[T] {
	idx := &Index[T]{
		worldBounds:        worldBounds,
		maxObjectsPerBlock: maxObjectsPerBlock,
		maxHierarchyLevels: maxHierarchyLevels,
		bboxOf:             bboxOf,
		blocks:             make(map[string]*block[T]),
		mortonBuckets:      make(map[uint64][]T),
		parallelEnabled:    zlayout.ParallelEnabled(),
	}
	idx.root = newBlock[T](RootBlockName, worldBounds, 0, nil, bboxOf)
	idx.blocks[RootBlockName] = idx.root

	for _, opt := range opts {
		opt(idx)
	}
	if idx.pool == nil {
		idx.pool = workerpool.New(0)
	}
	return idx
}

// Shutdown releases the index's worker pool.
func (idx *Index[T]) Shutdown() {
	idx.pool.Shutdown()
}

// CreateIPBlock attaches a new block under parentName.
func (idx *Index[T]) CreateIPBlock(name string, boundary geometry.Rectangle, parentName string) error {
	if parentName == "" {
		parentName = RootBlockName
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.blocks[name]; exists {
		return coreerr.New(coreerr.DuplicateBlock, "Index.CreateIPBlock", fmt.Sprintf("block %q already exists", name))
	}
	parent, ok := idx.blocks[parentName]
	if !ok {
		return coreerr.New(coreerr.UnknownBlock, "Index.CreateIPBlock", fmt.Sprintf("parent block %q not found", parentName))
	}
	if !parent.boundary.ContainsRectangle(boundary) {
		return coreerr.New(coreerr.BoundaryEscape, "Index.CreateIPBlock", fmt.Sprintf("block %q boundary escapes parent %q", name, parentName))
	}

	child := newBlock[T](name, boundary, parent.level+1, parent, idx.bboxOf)
	parent.children = append(parent.children, child)
	idx.blocks[name] = child
	return nil
}

// locateBlock descends from root, greedily entering the first child whose
// boundary contains bbox; if no child contains it, the object stays at the
// current block.
func (idx *Index[T]) locateBlock(bbox geometry.Rectangle) *block[T] {
	current := idx.root
	for {
		next := (*block[T])(nil)
		for _, c := range current.children {
			if c.boundary.ContainsRectangle(bbox) {
				next = c
				break
			}
		}
		if next == nil {
			return current
		}
		current = next
	}
}

func sortByMorton[T any](objects []T, bboxOf quadtree.BBoxFunc[T], worldBounds geometry.Rectangle) []T {
	type keyed struct {
		code uint64
		obj  T
	}
	keyedObjs := make([]keyed, len(objects))
	for i, obj := range objects {
		center := bboxOf(obj).Center()
		keyedObjs[i] = keyed{code: morton.EncodePoint(center, worldBounds), obj: obj}
	}
	sort.Slice(keyedObjs, func(i, j int) bool { return keyedObjs[i].code < keyedObjs[j].code })

	sorted := make([]T, len(objects))
	for i, k := range keyedObjs {
		sorted[i] = k.obj
	}
	return sorted
}

// insertSorted routes each object (assumed already Morton-ordered) to its
// deepest containing block and records its Morton bucket membership.
func (idx *Index[T]) insertSorted(objects []T) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	for _, obj := range objects {
		bbox := idx.bboxOf(obj)
		b := idx.locateBlock(bbox)
		b.insert(obj)

		code := morton.EncodePoint(bbox.Center(), idx.worldBounds)
		idx.mortonMu.Lock()
		idx.mortonBuckets[code] = append(idx.mortonBuckets[code], obj)
		idx.mortonMu.Unlock()
	}

	if idx.cache != nil {
		idx.cache.invalidate()
	}
}

// BulkInsert sorts objects by Morton code of their bounding-rectangle
// center, then inserts them in that order on the calling goroutine.
func (idx *Index[T]) BulkInsert(objects []T) {
	sorted := sortByMorton(objects, idx.bboxOf, idx.worldBounds)
	idx.insertSorted(sorted)
}

// ParallelBulkInsert Morton-sorts objects once, partitions them into
// worker-pool-size contiguous chunks, and inserts each chunk concurrently,
// blocking until every chunk has been applied.
func (idx *Index[T]) ParallelBulkInsert(objects []T) error {
	if len(objects) == 0 {
		return nil
	}

	if !idx.parallelEnabled {
		idx.BulkInsert(objects)
		return nil
	}

	sorted := sortByMorton(objects, idx.bboxOf, idx.worldBounds)

	n := idx.pool.Size()
	if n <= 0 {
		n = 1
	}
	if n > len(sorted) {
		n = len(sorted)
	}

	chunkSize := (len(sorted) + n - 1) / n
	futures := make([]*workerpool.Future[any], 0, n)
	for start := 0; start < len(sorted); start += chunkSize {
		end := start + chunkSize
		if end > len(sorted) {
			end = len(sorted)
		}
		chunk := sorted[start:end]
		futures = append(futures, idx.pool.Enqueue(func() (any, error) {
			idx.insertSorted(chunk)
			return nil, nil
		}))
	}

	for _, f := range futures {
		if _, err := f.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// blocksIntersecting returns every block (searched from root) whose
// boundary intersects r.
func (idx *Index[T]) blocksIntersecting(r geometry.Rectangle) []*block[T] {
	var result []*block[T]
	var walk func(b *block[T])
	walk = func(b *block[T]) {
		if !b.boundary.Intersects(r) {
			return
		}
		result = append(result, b)
		for _, c := range b.children {
			walk(c)
		}
	}
	walk(idx.root)
	return result
}

// ParallelQueryRange dispatches one task per intersecting block, joins the
// futures, and returns the de-duplicated union of their results.
func (idx *Index[T]) ParallelQueryRange(r geometry.Rectangle) []T {
	if idx.cache != nil {
		if cached, ok := idx.cache.get(r); ok {
			if results, ok := cached.([]T); ok {
				return results
			}
		}
	}

	idx.mu.RLock()
	targets := idx.blocksIntersecting(r)
	idx.mu.RUnlock()

	seen := make(map[T]struct{})
	var results []T
	addBatch := func(batch []T) {
		for _, obj := range batch {
			if _, dup := seen[obj]; dup {
				continue
			}
			seen[obj] = struct{}{}
			results = append(results, obj)
		}
	}

	if !idx.parallelEnabled {
		for _, b := range targets {
			addBatch(b.quad.QueryRange(r))
		}
	} else {
		futures := make([]*workerpool.Future[any], len(targets))
		for i, b := range targets {
			b := b
			futures[i] = idx.pool.Enqueue(func() (any, error) {
				return b.quad.QueryRange(r), nil
			})
		}

		for _, f := range futures {
			value, err := f.Wait()
			if err != nil {
				continue
			}
			batch, _ := value.([]T)
			addBatch(batch)
		}
	}

	if idx.cache != nil {
		idx.cache.set(r, results, int64(len(results)))
	}
	return results
}

// ParallelFindIntersections dispatches one task per block running its
// quadtree's FindPotentialIntersections, then concatenates results.
// Cross-block candidate pairs are not emitted: the IP-block partition is
// assumed to respect design hierarchy, so a true inter-block intersection
// is itself a design-rule violation reported separately by the caller.
func (idx *Index[T]) ParallelFindIntersections() []quadtree.Pair[T] {
	idx.mu.RLock()
	blocks := make([]*block[T], 0, len(idx.blocks))
	for _, b := range idx.blocks {
		blocks = append(blocks, b)
	}
	idx.mu.RUnlock()

	var all []quadtree.Pair[T]

	if !idx.parallelEnabled {
		for _, b := range blocks {
			all = append(all, b.quad.FindPotentialIntersections()...)
		}
		return all
	}

	futures := make([]*workerpool.Future[any], len(blocks))
	for i, b := range blocks {
		b := b
		futures[i] = idx.pool.Enqueue(func() (any, error) {
			return b.quad.FindPotentialIntersections(), nil
		})
	}

	for _, f := range futures {
		value, err := f.Wait()
		if err != nil {
			continue
		}
		pairs, _ := value.([]quadtree.Pair[T])
		all = append(all, pairs...)
	}
	return all
}

// OptimizeHierarchy walks the block tree and splits any block whose
// component count exceeds maxObjectsPerBlock, recursing into newly
// created children.
func (idx *Index[T]) OptimizeHierarchy() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.optimizeBlock(idx.root)

	if idx.cache != nil {
		idx.cache.invalidate()
	}
	if idx.metrics != nil {
		idx.metrics.RecordOptimizeRun()
	}
}

func (idx *Index[T]) optimizeBlock(b *block[T]) {
	if b.level >= idx.maxHierarchyLevels {
		return
	}
	if b.size() <= idx.maxObjectsPerBlock {
		for _, c := range b.children {
			idx.optimizeBlock(c)
		}
		return
	}

	all := b.quad.QueryRange(b.boundary)

	quadrants := [4]*block[T]{}
	names := [4]string{"_q0", "_q1", "_q2", "_q3"}
	for i := range quadrants {
		childName := b.name + names[i]
		child := newBlock[T](childName, quadrantBoundary(b.boundary, i), b.level+1, b, idx.bboxOf)
		quadrants[i] = child
		idx.blocks[childName] = child
	}
	b.children = append(b.children, quadrants[0], quadrants[1], quadrants[2], quadrants[3])

	b.clear()
	for _, obj := range all {
		bbox := idx.bboxOf(obj)
		routed := false
		for _, q := range quadrants {
			if q.boundary.ContainsRectangle(bbox) {
				q.insert(obj)
				routed = true
				break
			}
		}
		if !routed {
			// Straddles a quadrant boundary: stays with the parent.
			b.insert(obj)
		}
	}

	for _, q := range quadrants {
		idx.optimizeBlock(q)
	}
}

// Statistics aggregates index-wide counters.
type Statistics struct {
	TotalObjects      int
	TotalBlocks       int
	MaxDepth          int
	AvgObjectsPerBlock float64
	EstimatedMemoryBytes uint64
}

// Statistics reports the index's current aggregate shape.
func (idx *Index[T]) Statistics() Statistics {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var stats Statistics
	var zeroObj T
	var zeroBlock block[T]
	objSize := uint64(unsafe.Sizeof(zeroObj))
	blockSize := uint64(unsafe.Sizeof(zeroBlock))

	for _, b := range idx.blocks {
		n := b.size()
		stats.TotalObjects += n
		stats.TotalBlocks++
		if b.level > stats.MaxDepth {
			stats.MaxDepth = b.level
		}
	}
	if stats.TotalBlocks > 0 {
		stats.AvgObjectsPerBlock = float64(stats.TotalObjects) / float64(stats.TotalBlocks)
	}
	stats.EstimatedMemoryBytes = uint64(stats.TotalObjects)*objSize + uint64(stats.TotalBlocks)*blockSize

	if idx.metrics != nil {
		idx.metrics.SetBlockCount(stats.TotalBlocks)
		for name, b := range idx.blocks {
			idx.metrics.SetBlockStats(name, b.size(), b.quad.Statistics().TotalNodes, b.rtr.Statistics().TotalNodes)
		}
	}
	return stats
}

// BlockNames returns every block name currently registered, for tests and
// diagnostics.
func (idx *Index[T]) BlockNames() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	names := make([]string, 0, len(idx.blocks))
	for name := range idx.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BlockID returns the stable identifier assigned to the named block at its
// creation, for callers that need an identity independent of the (mutable,
// user-chosen) block name.
func (idx *Index[T]) BlockID(name string) (objectid.ID, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	b, ok := idx.blocks[name]
	if !ok {
		return "", false
	}
	return b.id, true
}
