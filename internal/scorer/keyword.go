package scorer

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/purabshah12/beacon/internal/candidate"
)

// KeywordScorer is the degraded-mode scorer used when no inference service
// is configured. It scores by token overlap between the description and the
// text recoverable from the candidate (base file name and pickup location).
type KeywordScorer struct{}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{}
}

func (s *KeywordScorer) Score(_ context.Context, description string, candidates []candidate.Candidate) (map[string]float64, error) {
	queryTokens := tokenize(description)
	scores := make(map[string]float64, len(candidates))

	for _, c := range candidates {
		scores[c.Identifier] = overlap(queryTokens, candidateTokens(c))
	}

	return scores, nil
}

func candidateTokens(c candidate.Candidate) map[string]struct{} {
	base := c.Identifier
	if i := strings.Index(base, "__"); i >= 0 {
		base = base[:i]
	}

	tokens := tokenize(base + " " + c.PickupLocation)
	out := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		out[t] = struct{}{}
	}
	return out
}

// overlap is the fraction of query tokens present in the candidate tokens,
// so results stay within [0,1] like semantic confidences.
func overlap(query []string, cand map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}

	hits := 0
	for _, t := range query {
		if _, ok := cand[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

func tokenize(s string) []string {
	s = strings.ToLower(norm.NFKC.String(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
