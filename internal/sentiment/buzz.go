package sentiment

import (
	"fmt"

	"coinboard/internal/domain"
)

// Buzz score weights, fixed design constants. Followers, stars, and forks
// are scaled down so raw community size does not drown out daily activity.
const (
	weightComments  = 2.0
	weightPosts     = 1.5
	weightActive    = 1.2
	weightFollowers = 0.5
	weightStars     = 0.3
	weightForks     = 0.2

	followerScale = 1_000_000
	starScale     = 10_000
	forkScale     = 5_000
)

// BuzzScore computes the weighted social-engagement score from the last
// element of a social-metrics time series, rounded to 2 decimals. Returns
// nil when the series is empty; missing sub-fields contribute 0.
func BuzzScore(series []domain.SocialStats) *float64 {
	if len(series) == 0 {
		return nil
	}
	latest := series[len(series)-1]

	var stars, forks float64
	for _, repo := range latest.CodeRepository.List {
		stars += repo.Stars
		forks += repo.Forks
	}

	score := weightComments*latest.Reddit.CommentsPerDay +
		weightPosts*latest.Reddit.PostsPerDay +
		weightActive*latest.Reddit.ActiveUsers +
		weightFollowers*latest.Twitter.Followers/followerScale +
		weightStars*stars/starScale +
		weightForks*forks/forkScale

	rounded := domain.Round2(score)
	return &rounded
}

// Interpret maps a buzz score to its qualitative band. Band bounds are
// inclusive: 500.00 is still low, 3000.00 is still medium. A nil score
// still produces a message.
func Interpret(symbol string, score *float64) string {
	if score == nil {
		return fmt.Sprintf("%s: No data to calculate buzz score.", symbol)
	}
	switch {
	case *score <= 500:
		return fmt.Sprintf("%s: Low buzz (Score: %.2f). Low online activity.", symbol, *score)
	case *score <= 3000:
		return fmt.Sprintf("%s: Medium buzz (Score: %.2f). Moderate interest.", symbol, *score)
	default:
		return fmt.Sprintf("%s: High buzz (Score: %.2f). Strong attention and dev activity.", symbol, *score)
	}
}
