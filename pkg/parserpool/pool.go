// Package parserpool provides a pool of gnparser instances used to
// canonicalize the species field of imported sample rows.
// This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Pool provides a pool of gnparser instances for concurrent species
// canonicalization.
type Pool interface {
	// Canonical returns the simple canonical form of a species string,
	// for example "Homo sapiens Linnaeus, 1758" -> "Homo sapiens".
	// The second return value is false when the input is empty or does
	// not parse as a scientific name; callers persist NULL in that
	// case. Safe for concurrent use.
	Canonical(species string) (string, bool)

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	// Facility species fields follow zoological usage; the code only
	// affects author/year interpretation, not the canonical form.
	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Zoological),
	)
	ch := gnparser.NewPool(cfg, poolSize)

	return &PoolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

// Canonical parses a species string and returns its simple canonical
// form. It retrieves a parser from the pool, parses the name, and
// returns the parser to the pool.
func (p *PoolImpl) Canonical(species string) (string, bool) {
	species = strings.TrimSpace(species)
	if species == "" {
		return "", false
	}

	// Get a parser from the pool (blocks if all parsers are busy)
	parser := <-p.ch
	result := parser.ParseName(species)
	p.ch <- parser

	if !result.Parsed || result.Canonical == nil {
		return "", false
	}
	return result.Canonical.Simple, true
}

// Close shuts down the parser pool and releases resources.
// It closes the channel and drains any remaining parsers.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		// Drain the channel
		for range p.ch {
		}
	}
}
