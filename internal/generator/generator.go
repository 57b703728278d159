// Package generator synthesizes sensor readings as a bounded random walk.
package generator

import (
	"math/rand/v2"
	"sync"

	"github.com/couchcryptid/coastal-monitor/internal/domain"
)

// Per-step maximum fluctuation for each metric.
const (
	seaLevelDelta  = 8.0
	windSpeedDelta = 3.0
)

// Starting point of the walk, roughly mid-range for both instruments.
const (
	initialSeaLevel  = 130.0
	initialWindSpeed = 10.0
)

// Generator produces successive sensor readings as a bounded random walk:
// each value fluctuates around the previous one, so consecutive samples are
// correlated the way real tide and wind measurements are. The walk state is
// mutex-guarded; concurrent callers each observe a consistent previous value.
type Generator struct {
	mu        sync.Mutex
	rng       *rand.Rand
	seaLevel  float64
	windSpeed float64
}

// New creates a Generator seeded from the system entropy source.
func New() *Generator {
	return NewWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand creates a Generator with an explicit random source, so tests can
// drive a deterministic walk.
func NewWithRand(rng *rand.Rand) *Generator {
	return &Generator{
		rng:       rng,
		seaLevel:  initialSeaLevel,
		windSpeed: initialWindSpeed,
	}
}

// Generate advances the walk one step and returns the new readings, rounded to
// two decimals and clamped to the instrument bounds. The read-modify-write of
// the walk state is atomic per call.
func (g *Generator) Generate() (seaLevel, windSpeed float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seaLevel = domain.Clamp(g.seaLevel+g.uniform(seaLevelDelta), domain.SeaLevelMin, domain.SeaLevelMax)
	g.windSpeed = domain.Clamp(g.windSpeed+g.uniform(windSpeedDelta), domain.WindSpeedMin, domain.WindSpeedMax)

	return domain.Round2(g.seaLevel), domain.Round2(g.windSpeed)
}

// uniform draws from [-delta, +delta). Callers must hold g.mu.
func (g *Generator) uniform(delta float64) float64 {
	return g.rng.Float64()*2*delta - delta
}
