// Package reduce merges many mesh fragments into one through a boolean
// kernel. Pairing fragments and halving the working set each round
// keeps total kernel work at O(N log N) instead of the O(N^2)-ish cost
// of sequentially unioning into one ever-growing mesh. Rounds with
// enough pairs fan out to a bounded worker pool.
package reduce

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
)

const (
	// parallelThreshold is the pair count above which a reduction round
	// dispatches to the worker pool. Below it, goroutine dispatch costs
	// more than it saves.
	parallelThreshold = 4

	// DefaultBatchSize caps how many fragments a single batch holds in
	// BatchUnion, bounding peak intermediate mesh complexity.
	DefaultBatchSize = 50
)

// TreeUnion merges fragments pairwise, halving the set each round.
// Zero fragments yield nil; a single fragment is returned as-is with
// no kernel call.
func TreeUnion(meshes []*kernel.Mesh, k kernel.Kernel) (*kernel.Mesh, error) {
	return treeUnion(meshes, k, 1)
}

// TreeUnionParallel is TreeUnion with rounds of more than a few pairs
// fanned out to workers goroutines. workers <= 0 means one worker per
// available CPU. The pool lives for a single round; no goroutines
// outlive the call on any path.
//
// Union is associative and commutative under a correct kernel, so the
// merged geometry does not depend on reduction order; only triangle
// numbering does, and callers must not rely on that.
func TreeUnionParallel(meshes []*kernel.Mesh, k kernel.Kernel, workers int) (*kernel.Mesh, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return treeUnion(meshes, k, workers)
}

func treeUnion(meshes []*kernel.Mesh, k kernel.Kernel, workers int) (*kernel.Mesh, error) {
	switch len(meshes) {
	case 0:
		return nil, nil
	case 1:
		return meshes[0], nil
	}

	level := meshes
	for len(level) > 1 {
		next, err := unionRound(level, k, workers)
		if err != nil {
			return nil, err
		}
		level = next
	}
	return level[0], nil
}

// unionRound merges one level of pairs. An odd leftover fragment is
// carried to the next round untouched.
func unionRound(level []*kernel.Mesh, k kernel.Kernel, workers int) ([]*kernel.Mesh, error) {
	pairs := len(level) / 2
	next := make([]*kernel.Mesh, pairs, pairs+1)

	if workers <= 1 || pairs <= parallelThreshold {
		for i := 0; i < pairs; i++ {
			merged, err := k.Union(level[2*i], level[2*i+1])
			if err != nil {
				return nil, fmt.Errorf("union of fragment pair %d: %w", i, err)
			}
			next[i] = merged
		}
	} else {
		if workers > pairs {
			workers = pairs
		}
		errs := make([]error, pairs)
		var wg sync.WaitGroup
		wg.Add(workers)
		for proc := 0; proc < workers; proc++ {
			go func(proc int) {
				defer wg.Done()
				for i := proc; i < pairs; i += workers {
					next[i], errs[i] = k.Union(level[2*i], level[2*i+1])
				}
			}(proc)
		}
		wg.Wait()
		for i, err := range errs {
			if err != nil {
				return nil, fmt.Errorf("union of fragment pair %d: %w", i, err)
			}
		}
	}

	if len(level)%2 == 1 {
		next = append(next, level[len(level)-1])
	}
	return next, nil
}

// BatchUnion merges very large fragment sets: the input is split into
// fixed-size batches, each batch is collapsed independently (through
// the kernel's BatchUnion fast path when it has one), and the per-batch
// results are then tree-reduced in parallel. batchSize <= 0 means
// DefaultBatchSize.
func BatchUnion(meshes []*kernel.Mesh, k kernel.Kernel, batchSize int) (*kernel.Mesh, error) {
	switch len(meshes) {
	case 0:
		return nil, nil
	case 1:
		return meshes[0], nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if len(meshes) <= batchSize {
		return collapseBatch(meshes, k)
	}

	var results []*kernel.Mesh
	for start := 0; start < len(meshes); start += batchSize {
		end := start + batchSize
		if end > len(meshes) {
			end = len(meshes)
		}
		merged, err := collapseBatch(meshes[start:end], k)
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", start, end, err)
		}
		results = append(results, merged)
	}
	return TreeUnionParallel(results, k, 0)
}

// collapseBatch merges one batch, preferring the kernel's many-at-once
// union when available.
func collapseBatch(meshes []*kernel.Mesh, k kernel.Kernel) (*kernel.Mesh, error) {
	if bu, ok := k.(kernel.BatchUnioner); ok {
		return bu.BatchUnion(meshes)
	}
	return TreeUnionParallel(meshes, k, 0)
}
