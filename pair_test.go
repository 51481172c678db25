package collide_test

import (
	"testing"

	"github.com/setanarut/collide"
	"github.com/stretchr/testify/assert"
)

func TestPairKeySymmetric(t *testing.T) {
	for a := uint64(0); a < 50; a++ {
		for b := uint64(0); b < 50; b++ {
			assert.Equal(t, collide.PairKey(a, b), collide.PairKey(b, a))
		}
	}
}

func TestPairKeyUnique(t *testing.T) {
	seen := make(map[uint64][2]uint64)
	for b := uint64(1); b <= 300; b++ {
		for a := uint64(1); a < b; a++ {
			key := collide.PairKey(a, b)
			if prev, ok := seen[key]; ok {
				t.Fatalf("pairs %v and %v share key %d", prev, [2]uint64{a, b}, key)
			}
			seen[key] = [2]uint64{a, b}
		}
	}
}

func TestPairKeyLargeIDs(t *testing.T) {
	const big = uint64(1) << 31
	assert.NotEqual(t, collide.PairKey(big, big+1), collide.PairKey(big-1, big+1))
	assert.Equal(t, collide.PairKey(big+1, big), collide.PairKey(big, big+1))
}
