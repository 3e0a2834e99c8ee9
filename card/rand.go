package card

import "math/rand"

// SeededSource 基于 math/rand 的熵源, 显式注入种子保证可复现。
type SeededSource struct {
	rng *rand.Rand
}

func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *SeededSource) NextInt(bound int) int {
	return s.rng.Intn(bound)
}
