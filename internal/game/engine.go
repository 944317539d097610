// Package game holds the outcome engine: one weighted coin flip plus a prize draw.
package game

import (
	"math/rand/v2"
	"sync"

	dom "Lucky/internal/domain"
)

// Prizes are drawn uniformly by list position, not weighted by value.
var Prizes = []int64{10, 20, 50, 100, 200, 500, 1000}

// Source supplies the randomness for a draw.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [0,n).
	IntN(n int) int
}

// Engine decides plays. It is safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	src Source
}

// NewEngine returns an engine drawing from src. A nil src uses the process-wide generator.
func NewEngine(src Source) *Engine {
	if src == nil {
		src = globalSource{}
	}
	return &Engine{src: src}
}

// NewSeededEngine returns an engine whose draw sequence is fully determined by seed.
func NewSeededEngine(seed uint64) *Engine {
	return NewEngine(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Play draws r in [0,1) and wins iff r > lossProbability. lossProbability is the
// chance to LOSE: 1.0 never wins, 0.0 always wins.
func (e *Engine) Play(lossProbability float64) dom.Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if r := e.src.Float64(); lossProbability > 0 && r <= lossProbability {
		return dom.Outcome{}
	}
	return dom.Outcome{Win: true, Prize: Prizes[e.src.IntN(len(Prizes))]}
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }
