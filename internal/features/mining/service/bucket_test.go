package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playermodels "fishing-game-backend/internal/features/player/models"
)

func rollSeq(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestGenerateBucketZeroCap(t *testing.T) {
	assert.Empty(t, GenerateBucket(0, rand.Float64))
	assert.Empty(t, GenerateBucket(-5, rand.Float64))
}

func TestGenerateBucketAllCommons(t *testing.T) {
	// 0.5 lands in the COMMON band of the cumulative table.
	bucket := GenerateBucket(100, rollSeq(0.5))

	require.Len(t, bucket, 100)
	for _, r := range bucket {
		assert.Equal(t, playermodels.RarityCommon, r)
	}
	assert.InDelta(t, 100.0, BucketValue(bucket), 1e-9)
}

func TestGenerateBucketCommonFallbackFill(t *testing.T) {
	// 0.01 always draws LEGENDARY (value 10). Cap 25 fits two, the third
	// draw is unaffordable and the remaining 5 points fill with commons.
	bucket := GenerateBucket(25, rollSeq(0.01))

	counts := map[playermodels.Rarity]int{}
	for _, r := range bucket {
		counts[r]++
	}
	assert.Equal(t, 2, counts[playermodels.RarityLegendary])
	assert.Equal(t, 5, counts[playermodels.RarityCommon])
	assert.InDelta(t, 25.0, BucketValue(bucket), 1e-9)
}

func TestGenerateBucketValueNeverExceedsCap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, cap := range []int{1, 50, 100, 150, 250} {
		bucket := GenerateBucket(cap, rng.Float64)
		assert.LessOrEqual(t, BucketValue(bucket), float64(cap)+1e-9, "cap %d", cap)
		assert.NotEmpty(t, bucket, "cap %d", cap)
	}
}

func TestDrawRarityBands(t *testing.T) {
	assert.Equal(t, playermodels.RarityLegendary, drawRarity(0.0))
	assert.Equal(t, playermodels.RarityEpic, drawRarity(0.10))
	assert.Equal(t, playermodels.RarityUncommon, drawRarity(0.30))
	assert.Equal(t, playermodels.RarityCommon, drawRarity(0.60))
	assert.Equal(t, playermodels.RarityJunk, drawRarity(0.97))
}
