package utils

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// RNG 是钓鱼逻辑所需的最小随机源
//
// *rand.Rand (math/rand/v2) 直接满足该接口；测试中可以注入固定序列。
type RNG interface {
	Float64() float64
	IntN(n int) int
}

// NewSeededRNG 创建确定性随机源（同一种子产生相同序列）
func NewSeededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

// NewRNG 创建以运行时熵为种子的随机源
func NewRNG() *rand.Rand {
	// #nosec G404
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// RandRange 返回 [min, max) 区间内的均匀随机数
func RandRange(rng RNG, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
