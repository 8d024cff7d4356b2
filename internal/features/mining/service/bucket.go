package service

import (
	playermodels "fishing-game-backend/internal/features/player/models"
	"fishing-game-backend/internal/utils/random"
)

// rarityWeights is the draw distribution for bucket generation. Weights sum
// to 1.0; order matters for the cumulative lookup.
var rarityWeights = []struct {
	rarity playermodels.Rarity
	weight float64
}{
	{playermodels.RarityLegendary, 0.04},
	{playermodels.RarityEpic, 0.13},
	{playermodels.RarityUncommon, 0.28},
	{playermodels.RarityCommon, 0.50},
	{playermodels.RarityJunk, 0.05},
}

func drawRarity(u float64) playermodels.Rarity {
	cumulative := 0.0
	for _, rw := range rarityWeights {
		cumulative += rw.weight
		if u < cumulative {
			return rw.rarity
		}
	}
	return playermodels.RarityJunk
}

// GenerateBucket builds the shuffled reward sequence for one hour window.
// Rarities are drawn from the weighted table while the remaining capacity can
// afford the drawn value; the first unaffordable draw switches to filling the
// remainder with commons, so the total value never exceeds hourlyCap.
// A cap of zero or less yields an empty bucket, which callers must treat as
// "no mining available" rather than "bucket exhausted".
func GenerateBucket(hourlyCap int, roll func() float64) []playermodels.Rarity {
	if hourlyCap <= 0 {
		return []playermodels.Rarity{}
	}

	capacity := float64(hourlyCap)
	used := 0.0
	var bucket []playermodels.Rarity

	for {
		rarity := drawRarity(roll())
		value := rarity.Value()
		if used+value <= capacity {
			bucket = append(bucket, rarity)
			used += value
			continue
		}

		// Drawn token no longer fits; top the bucket up with the cheapest
		// whole-value token and stop.
		for used+playermodels.RarityCommon.Value() <= capacity {
			bucket = append(bucket, playermodels.RarityCommon)
			used += playermodels.RarityCommon.Value()
		}
		break
	}

	// Shuffle so the reward order within the hour is unpredictable.
	if err := random.Shuffle(bucket); err != nil {
		// crypto/rand failing is a platform-level problem; the unshuffled
		// bucket still honors the value bound.
		return bucket
	}
	return bucket
}

// BucketValue sums the point value of the remaining or full sequence.
func BucketValue(bucket []playermodels.Rarity) float64 {
	total := 0.0
	for _, r := range bucket {
		total += r.Value()
	}
	return total
}
