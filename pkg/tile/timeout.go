package tile

import (
	"fmt"
	"time"

	"github.com/rsiegemit/MorphoStruct-sub001/pkg/kernel"
)

// tileResult passes pipeline results through the timeout channel.
type tileResult struct {
	mesh  *kernel.Mesh
	stats Stats
	err   error
}

// TileWithTimeout runs Tile under a hard wall-clock limit. The pipeline
// has no internal suspension points, so cancellation is coarse: on
// timeout the worker goroutine keeps running to completion, but its
// result is discarded and the caller gets a timeout error.
func (p *Pipeline) TileWithTimeout(unit *kernel.Mesh, params Params, limit time.Duration) (*kernel.Mesh, Stats, error) {
	ch := make(chan tileResult, 1)
	go func() {
		mesh, stats, err := p.Tile(unit, params)
		ch <- tileResult{mesh: mesh, stats: stats, err: err}
	}()

	timer := time.NewTimer(limit)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.mesh, res.stats, res.err
	case <-timer.C:
		return nil, Stats{}, fmt.Errorf("tiling timed out after %s", limit)
	}
}
