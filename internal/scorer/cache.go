package scorer

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/purabshah12/beacon/internal/candidate"
	"github.com/purabshah12/beacon/internal/common/logger"
	"github.com/purabshah12/beacon/internal/common/metrics"
)

// CachedScorer is a read-through Redis cache around another Scorer. A cache
// failure is never a scoring failure: on any Redis error the inner scorer is
// used directly.
type CachedScorer struct {
	inner  Scorer
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedScorer(inner Scorer, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedScorer {
	return &CachedScorer{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "cached-scorer"}),
	}
}

func (s *CachedScorer) Score(ctx context.Context, description string, candidates []candidate.Candidate) (map[string]float64, error) {
	queryHash := hashDescription(description)

	scores := make(map[string]float64, len(candidates))
	var misses []candidate.Candidate

	for _, c := range candidates {
		val, err := s.redis.Get(ctx, cacheKey(queryHash, c.Identifier)).Result()
		if err != nil {
			metrics.ScorerCacheHits.WithLabelValues("miss").Inc()
			misses = append(misses, c)
			continue
		}
		confidence, parseErr := strconv.ParseFloat(val, 64)
		if parseErr != nil {
			metrics.ScorerCacheHits.WithLabelValues("miss").Inc()
			misses = append(misses, c)
			continue
		}
		metrics.ScorerCacheHits.WithLabelValues("hit").Inc()
		scores[c.Identifier] = confidence
	}

	if len(misses) == 0 {
		return scores, nil
	}

	fresh, err := s.inner.Score(ctx, description, misses)
	if err != nil {
		return nil, err
	}

	for id, confidence := range fresh {
		scores[id] = confidence
		setErr := s.redis.Set(ctx, cacheKey(queryHash, id),
			strconv.FormatFloat(confidence, 'f', -1, 64), s.ttl).Err()
		if setErr != nil {
			s.logger.Debug("score cache write failed", map[string]interface{}{
				"identifier": id,
				"error":      setErr.Error(),
			})
		}
	}

	return scores, nil
}

func hashDescription(description string) string {
	sum := sha1.Sum([]byte(description))
	return hex.EncodeToString(sum[:])
}

func cacheKey(queryHash, identifier string) string {
	return "score:" + queryHash + ":" + identifier
}
