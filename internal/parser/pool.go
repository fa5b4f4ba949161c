package parser

import (
	"context"
	"log/slog"
	"sync"
)

// Pool fans message blocks out to a fixed number of parser goroutines.
// Parsing is pure and independent per block, so no coordination beyond the
// work channel is needed.
type Pool struct {
	concurrency int
	parser      *Parser
	logger      *slog.Logger
}

// NewPool creates a parse pool. Concurrency values below 1 fall back to 1.
func NewPool(concurrency int, logger *slog.Logger) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		concurrency: concurrency,
		parser:      New(),
		logger:      logger,
	}
}

type indexedBlock struct {
	idx   int
	block string
}

// ParseBlocks parses every block concurrently and returns results in input
// order. A canceled context stops the workers early; blocks not reached
// report the context error.
func (p *Pool) ParseBlocks(ctx context.Context, blocks []string) []BlockResult {
	results := make([]BlockResult, len(blocks))
	done := make([]bool, len(blocks))
	for i, b := range blocks {
		results[i] = BlockResult{Block: b}
	}

	work := make(chan indexedBlock)
	var wg sync.WaitGroup

	for w := 0; w < p.concurrency; w++ {
		wg.Add(1)
		go func(workerNum int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-work:
					if !ok {
						return
					}
					job, err := p.parser.Parse(item.block)
					results[item.idx] = BlockResult{Block: item.block, Job: job, Err: err}
					done[item.idx] = true
					if err != nil {
						p.logger.Warn("block parse failed",
							slog.Int("worker", workerNum),
							slog.Int("block", item.idx),
							slog.String("error", err.Error()),
						)
					}
				}
			}
		}(w)
	}

sendLoop:
	for i, b := range blocks {
		select {
		case <-ctx.Done():
			break sendLoop
		case work <- indexedBlock{idx: i, block: b}:
		}
	}
	close(work)
	wg.Wait()

	// Blocks the workers never reached carry the context error.
	if err := ctx.Err(); err != nil {
		for i := range results {
			if !done[i] {
				results[i].Err = err
			}
		}
	}
	return results
}
