// Package world aggregates block searches across the region files composing a
// save.
//
// Region files are independent (1024 chunk slots each), so the aggregator
// fans one worker out per file and merges the per-file partial results
// sequentially in enumeration order once every worker has finished. The merge
// order, not the scan concurrency, is what preserves the documented
// occurrence order: region file order, then chunk slot order, then section
// bottom-to-top, then position order.
//
// Corrupt input never aborts a scan: an unreadable file or undecodable chunk
// is recorded as a Failure (and logged through the context logger, see
// internal/logctx) while every healthy sibling still contributes results.
package world

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arloliu/anvil/blocks"
	"github.com/arloliu/anvil/chunk"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/logctx"
	"github.com/arloliu/anvil/internal/options"
	"github.com/arloliu/anvil/region"
)

// Failure records one skipped source: a region file that failed header
// validation or could not be opened, or a single chunk that failed decoding.
type Failure struct {
	// Source identifies what was skipped, e.g. "r.0.0.mca" or
	// "r.0.0.mca: chunk (3, 7)".
	Source string
	// Err is the underlying error; classify with errors.Is against the
	// region, compress, nbt, and chunk sentinel errors.
	Err error
}

// Result is the outcome of one world search. Blocks maps every requested
// identifier (including ones never found) to its occurrences in scan order.
type Result struct {
	Blocks   map[string][]blocks.Occurrence
	Failures []Failure
}

// Count returns the number of occurrences found for the identifier.
func (r *Result) Count(name string) int {
	return len(r.Blocks[name])
}

type config struct {
	workers         int
	maxDecompressed int64
	rule            format.PackingRule
	hasRule         bool
	logger          *zerolog.Logger
}

// Option configures a world search.
type Option = options.Option[*config]

// WithWorkers bounds the number of region files decoded concurrently.
// Defaults to min(NumCPU, 8); a search is usually I/O-light and CPU-bound on
// decompression, so more workers than cores buys nothing.
func WithWorkers(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("workers must be positive, got %d", n)
		}
		c.workers = n

		return nil
	})
}

// WithMaxDecompressedSize caps one chunk's decompressed payload; see
// region.WithMaxDecompressedSize.
func WithMaxDecompressedSize(n int64) Option {
	return options.NoError(func(c *config) {
		c.maxDecompressed = n
	})
}

// WithPackingRule forces the block-state packing rule for every chunk instead
// of deriving it per chunk from DataVersion; see chunk.WithPackingRule.
func WithPackingRule(rule format.PackingRule) Option {
	return options.NoError(func(c *config) {
		c.rule = rule
		c.hasRule = true
	})
}

// WithLogger routes skip warnings to the given logger. Without it the search
// uses the logger attached to the context, if any, and is otherwise silent.
func WithLogger(logger zerolog.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = &logger
	})
}

// searchLogger resolves the effective logger for one search.
func (cfg *config) searchLogger(ctx context.Context) zerolog.Logger {
	if cfg.logger != nil {
		return *cfg.logger
	}

	return logctx.FromContext(ctx)
}

func defaultConfig() config {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}

	return config{
		workers:         workers,
		maxDecompressed: region.DefaultMaxDecompressedSize,
	}
}

// Source is one named region byte source, already opened.
type Source struct {
	// Name identifies the source in Failures and logs.
	Name string
	// Reader is the parsed region file.
	Reader *region.Reader
}

// Search scans the given region files for the requested identifiers. Paths
// are expected to already be resolved to individual region files; resolving a
// save directory is the caller's concern.
//
// Files that cannot be opened or fail header validation are recorded as
// Failures and skipped. The only error returned is context cancellation; a
// world full of corrupt files still yields an (empty) Result.
func Search(ctx context.Context, paths []string, names []string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	result := newResult(names)
	logger := cfg.searchLogger(ctx)

	sources := make([]Source, 0, len(paths))
	closers := make([]*region.Reader, 0, len(paths))
	for _, path := range paths {
		r, err := region.Open(path, region.WithMaxDecompressedSize(cfg.maxDecompressed))
		if err != nil {
			logger.Warn().Str("region", path).Err(err).Msg("skipping unreadable region file")
			result.Failures = append(result.Failures, Failure{Source: path, Err: err})

			continue
		}
		sources = append(sources, Source{Name: path, Reader: r})
		closers = append(closers, r)
	}
	defer func() {
		for _, r := range closers {
			r.Close()
		}
	}()

	partial, err := searchSources(ctx, sources, names, cfg)
	if err != nil {
		return nil, err
	}

	mergeInto(result, partial)

	return result, nil
}

// SearchRegions is Search over already-open sources, for callers that manage
// their own region readers or read from non-file sources.
func SearchRegions(ctx context.Context, sources []Source, names []string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	result := newResult(names)

	partial, err := searchSources(ctx, sources, names, cfg)
	if err != nil {
		return nil, err
	}

	mergeInto(result, partial)

	return result, nil
}

// partial is one source's contribution, kept separate during the parallel
// phase so no lock guards the shared result.
type partial struct {
	occurrences []blocks.Occurrence
	failures    []Failure
}

func searchSources(ctx context.Context, sources []Source, names []string, cfg config) ([]partial, error) {
	matcher := blocks.NewMatcher(names)

	var chunkOpts []chunk.Option
	if cfg.hasRule {
		chunkOpts = append(chunkOpts, chunk.WithPackingRule(cfg.rule))
	}

	partials := make([]partial, len(sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.workers)
	for i := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			partials[i] = scanSource(ctx, sources[i], matcher, chunkOpts, cfg.searchLogger(ctx))
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return partials, nil
}

// scanSource decodes every present chunk of one region file and collects
// matches in slot order. Chunk-level failures are recorded and skipped.
func scanSource(ctx context.Context, src Source, matcher *blocks.Matcher, chunkOpts []chunk.Option, base zerolog.Logger) partial {
	logger := base.With().Str("region", src.Name).Logger()

	var p partial
	for entry := range src.Reader.Chunks() {
		if ctx.Err() != nil {
			return p
		}

		if entry.Err != nil {
			logger.Warn().Int("x", entry.X).Int("z", entry.Z).Err(entry.Err).Msg("skipping undecodable chunk")
			p.failures = append(p.failures, Failure{
				Source: fmt.Sprintf("%s: chunk (%d, %d)", src.Name, entry.X, entry.Z),
				Err:    entry.Err,
			})

			continue
		}

		c, err := chunk.FromRoot(entry.Root, chunkOpts...)
		if err != nil {
			logger.Warn().Int("x", entry.X).Int("z", entry.Z).Err(err).Msg("skipping malformed chunk")
			p.failures = append(p.failures, Failure{
				Source: fmt.Sprintf("%s: chunk (%d, %d)", src.Name, entry.X, entry.Z),
				Err:    err,
			})

			continue
		}

		p.occurrences = append(p.occurrences, blocks.ScanChunk(c, matcher)...)
	}

	return p
}

func newResult(names []string) *Result {
	r := &Result{Blocks: make(map[string][]blocks.Occurrence, len(names))}
	for _, name := range names {
		if _, ok := r.Blocks[name]; !ok {
			r.Blocks[name] = []blocks.Occurrence{}
		}
	}

	return r
}

// mergeInto folds per-source partials into the result in source order,
// preserving the scan-order contract.
func mergeInto(result *Result, partials []partial) {
	for i := range partials {
		for _, occ := range partials[i].occurrences {
			result.Blocks[occ.Name] = append(result.Blocks[occ.Name], occ)
		}
		result.Failures = append(result.Failures, partials[i].failures...)
	}
}
