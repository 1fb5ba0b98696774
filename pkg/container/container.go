// Package container exposes ordered Set, Multiset, and Map adapters over
// pkg/skiplist.Engine. The engine knows nothing about any of these three
// shapes; every adapter here just plugs in a projector and a duplicate
// policy and adds the mechanical conveniences (Contains, Range, Front,
// Back, Clear, Swap, range insertion) a caller actually reaches for.
package container

import (
	"errors"
	"flag"
	"time"

	"github.com/ordskip/ordskip/pkg/skiplist"
)

// ErrKeyNotFound is returned by Map.Lookup when the key is absent.
var ErrKeyNotFound = errors.New("key was not found")

var (
	defaultMaxLevel = flag.Int("container_max_level", skiplist.MaxLevel,
		"The maximum lane level new ordered containers are constructed with.")
	defaultGenerator = flag.String("container_level_generator", "log",
		`The level-generation policy new ordered containers use by default: "log" or "bitscan".`)
	bloomRebuildThreshold = flag.Int("container_bloom_rebuild_threshold", 256,
		"The number of removals a membership filter tolerates before it is rebuilt from scratch. 0 disables rebuilding.")
)

// newDefaultGenerator builds the level generator named by
// -container_level_generator, seeded from the wall clock.
func newDefaultGenerator() skiplist.LevelGenerator {
	seed := time.Now().UnixNano()
	if *defaultGenerator == "bitscan" {
		return skiplist.NewBitScanGenerator(seed, *defaultMaxLevel)
	}
	return skiplist.NewLogGenerator(seed, *defaultMaxLevel)
}
