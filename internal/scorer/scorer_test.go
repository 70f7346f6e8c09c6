package scorer

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purabshah12/beacon/internal/candidate"
	"github.com/purabshah12/beacon/internal/common/logger"
)

func TestKeywordScorer_RanksMatchingCandidateHigher(t *testing.T) {
	s := NewKeywordScorer()

	candidates := []candidate.Candidate{
		{Identifier: "blue_wallet__NoGPS__Library_Desk.jpg", PickupLocation: "Library Desk"},
		{Identifier: "red_umbrella__NoGPS__Gym_Lobby.jpg", PickupLocation: "Gym Lobby"},
	}

	scores, err := s.Score(context.Background(), "blue wallet left at the library", candidates)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Greater(t, scores["blue_wallet__NoGPS__Library_Desk.jpg"], scores["red_umbrella__NoGPS__Gym_Lobby.jpg"])
}

func TestKeywordScorer_ScoresWithinUnitInterval(t *testing.T) {
	s := NewKeywordScorer()

	candidates := []candidate.Candidate{
		{Identifier: "wallet__NoGPS__Desk.jpg", PickupLocation: "Desk"},
	}

	scores, err := s.Score(context.Background(), "wallet wallet wallet", candidates)
	require.NoError(t, err)

	for _, confidence := range scores {
		assert.GreaterOrEqual(t, confidence, 0.0)
		assert.LessOrEqual(t, confidence, 1.0)
	}
}

func TestKeywordScorer_NoOverlapScoresZero(t *testing.T) {
	s := NewKeywordScorer()

	candidates := []candidate.Candidate{
		{Identifier: "keys__NoGPS__Front_Office.png", PickupLocation: "Front Office"},
	}

	scores, err := s.Score(context.Background(), "purple bicycle", candidates)
	require.NoError(t, err)
	assert.Equal(t, 0.0, scores["keys__NoGPS__Front_Office.png"])
}

// countingScorer records how many candidates each call was asked to score.
type countingScorer struct {
	calls  [][]string
	result map[string]float64
}

func (c *countingScorer) Score(_ context.Context, _ string, candidates []candidate.Candidate) (map[string]float64, error) {
	ids := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		ids = append(ids, cand.Identifier)
	}
	c.calls = append(c.calls, ids)

	out := make(map[string]float64, len(candidates))
	for _, cand := range candidates {
		out[cand.Identifier] = c.result[cand.Identifier]
	}
	return out, nil
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCachedScorer_SecondCallHitsCache(t *testing.T) {
	inner := &countingScorer{result: map[string]float64{
		"a.jpg": 0.9,
		"b.jpg": 0.4,
	}}
	cached := NewCachedScorer(inner, newTestRedis(t), time.Minute, logger.NewTestLogger(t))

	candidates := []candidate.Candidate{
		{Identifier: "a.jpg"},
		{Identifier: "b.jpg"},
	}

	first, err := cached.Score(context.Background(), "black wallet", candidates)
	require.NoError(t, err)
	assert.Equal(t, 0.9, first["a.jpg"])
	assert.Equal(t, 0.4, first["b.jpg"])
	require.Len(t, inner.calls, 1)

	second, err := cached.Score(context.Background(), "black wallet", candidates)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, inner.calls, 1, "cache hit must not reach the inner scorer")
}

func TestCachedScorer_DifferentDescriptionMisses(t *testing.T) {
	inner := &countingScorer{result: map[string]float64{"a.jpg": 0.5}}
	cached := NewCachedScorer(inner, newTestRedis(t), time.Minute, logger.NewTestLogger(t))

	candidates := []candidate.Candidate{{Identifier: "a.jpg"}}

	_, err := cached.Score(context.Background(), "black wallet", candidates)
	require.NoError(t, err)
	_, err = cached.Score(context.Background(), "red umbrella", candidates)
	require.NoError(t, err)

	assert.Len(t, inner.calls, 2)
}

func TestCachedScorer_PartialCacheOnlyScoresMisses(t *testing.T) {
	inner := &countingScorer{result: map[string]float64{
		"a.jpg": 0.9,
		"b.jpg": 0.4,
	}}
	cached := NewCachedScorer(inner, newTestRedis(t), time.Minute, logger.NewTestLogger(t))

	_, err := cached.Score(context.Background(), "black wallet",
		[]candidate.Candidate{{Identifier: "a.jpg"}})
	require.NoError(t, err)

	scores, err := cached.Score(context.Background(), "black wallet",
		[]candidate.Candidate{{Identifier: "a.jpg"}, {Identifier: "b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, 0.9, scores["a.jpg"])
	assert.Equal(t, 0.4, scores["b.jpg"])

	require.Len(t, inner.calls, 2)
	assert.Equal(t, []string{"b.jpg"}, inner.calls[1])
}

func TestCachedScorer_RedisDownFallsThrough(t *testing.T) {
	inner := &countingScorer{result: map[string]float64{"a.jpg": 0.7}}
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	cached := NewCachedScorer(inner, rdb, time.Minute, logger.NewTestLogger(t))
	scores, err := cached.Score(context.Background(), "black wallet",
		[]candidate.Candidate{{Identifier: "a.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, 0.7, scores["a.jpg"])
}
