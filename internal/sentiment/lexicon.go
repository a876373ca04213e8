package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Analyzer scores free text with a VADER lexicon. Construction parses the
// lexicon, so build one per process and reuse it.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the compound polarity in [-1, 1]. Empty text scores 0.
func (a *Analyzer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return a.vader.PolarityScores(text).Compound
}
