package agent

import "math/rand"

// LaneRand reconstructs a per-lane deterministic RNG from (agentID, epoch,
// randomSeed) via a small integer hash, per spec §9: "RNG state is
// reconstructed per-lane ... there is no global RNG."
func LaneRand(agentID uint64, epoch int64, randomSeed int64) *rand.Rand {
	h := splitmix64(agentID ^ splitmix64(uint64(epoch)) ^ splitmix64(uint64(randomSeed)))
	return rand.New(rand.NewSource(int64(h)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
