package skiplist

import (
	"math"
	"math/bits"
	"math/rand"
)

// MaxLevel is the default ceiling on a node's level (lane count - 1).
const MaxLevel = 32

// LevelGenerator produces the random level assigned to each newly inserted
// node. Implementations must approximate P(level >= k) = 2^-k for
// k <= MaxLevel, capping at MaxLevel.
type LevelGenerator interface {
	// NewLevel returns a level in [0, MaxLevel].
	NewLevel() int
	// MaxLevel reports the ceiling this generator was constructed with.
	MaxLevel() int
}

// LogGenerator realizes the logarithmic level-generation policy: draw
// u in (0,1], return min(floor(log2(1/u)), maxLevel), the closed-form
// equivalent of the usual coin-flip randomLevel loop.
type LogGenerator struct {
	rng      *rand.Rand
	maxLevel int
}

// NewLogGenerator returns a LogGenerator seeded with seed, capped at
// maxLevel. Two generators constructed with different seeds produce
// independent, reproducible sequences, as required for deterministic tests.
func NewLogGenerator(seed int64, maxLevel int) *LogGenerator {
	return &LogGenerator{rng: rand.New(rand.NewSource(seed)), maxLevel: maxLevel}
}

func (g *LogGenerator) MaxLevel() int { return g.maxLevel }

func (g *LogGenerator) NewLevel() int {
	u := g.rng.Float64()
	for u == 0 { // (0,1], never let log2(1/u) diverge.
		u = g.rng.Float64()
	}
	level := int(math.Floor(math.Log2(1 / u)))
	if level > g.maxLevel {
		level = g.maxLevel
	}
	if level < 0 {
		level = 0
	}
	return level
}

// BitScanGenerator realizes the bit-scan level-generation policy: draw a
// uniform 32-bit word and return the count of trailing 1-bits, capped at
// maxLevel. Counting trailing ones of w is counting trailing zeros of ^w.
type BitScanGenerator struct {
	rng      *rand.Rand
	maxLevel int
}

// NewBitScanGenerator returns a BitScanGenerator seeded with seed, capped at
// maxLevel.
func NewBitScanGenerator(seed int64, maxLevel int) *BitScanGenerator {
	return &BitScanGenerator{rng: rand.New(rand.NewSource(seed)), maxLevel: maxLevel}
}

func (g *BitScanGenerator) MaxLevel() int { return g.maxLevel }

func (g *BitScanGenerator) NewLevel() int {
	word := g.rng.Uint32()
	level := bits.TrailingZeros32(^word)
	if level > g.maxLevel {
		level = g.maxLevel
	}
	return level
}
