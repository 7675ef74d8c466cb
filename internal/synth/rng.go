package synth

import (
	"hash/fnv"
	"math/rand/v2"
)

// Each generation stage owns an independently seeded deterministic
// stream. The constants match the reference dataset so that a fixed
// date range and catalog always reproduce the same artifact.
const (
	priceSeed    uint64 = 42
	weatherSeed  uint64 = 123
	downtimeSeed uint64 = 456
	missingSeed  uint64 = 789
	outlierSeed  uint64 = 101112
)

// newSource constructs the PCG stream for a stage seed. The second
// word is a fixed odd constant so distinct seeds never collapse onto
// the same stream state.
func newSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// siteSeed derives a stable per-site production seed from the site id
// bytes. A language built-in hash would not be stable across processes
// or implementations, so this uses FNV-1a with its fixed parameters.
func siteSeed(siteID string) uint64 {
	h := fnv.New32a()
	h.Write([]byte(siteID))
	return uint64(h.Sum32())
}
