package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"coinboard/internal/domain"
	"coinboard/internal/provider"
	"coinboard/internal/sentiment"

	"go.opentelemetry.io/otel/trace"
)

type SocialFetcher interface {
	FetchSocialLatest(ctx context.Context, coinID int) (*domain.SocialStats, error)
}

// BuzzService scores social engagement per coin. Failures are isolated:
// one coin's failed fetch degrades only that coin's record.
type BuzzService struct {
	tracer   trace.Tracer
	provider SocialFetcher
}

func NewBuzzService(tracer trace.Tracer, provider SocialFetcher) *BuzzService {
	return &BuzzService{tracer: tracer, provider: provider}
}

// GetSentiment returns one record per configured sentiment coin, fetched
// sequentially. The result always has exactly len(domain.SentimentCoins)
// entries regardless of per-coin failures.
func (s *BuzzService) GetSentiment(ctx context.Context) ([]domain.SentimentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "buzz-service.get-sentiment")
	defer span.End()

	records := make([]domain.SentimentRecord, 0, len(domain.SentimentCoins))
	for _, coin := range domain.SentimentCoins {
		records = append(records, s.scoreCoin(ctx, coin))
	}
	return records, nil
}

// BuzzFor scores a single coin by symbol.
func (s *BuzzService) BuzzFor(ctx context.Context, symbol string) (domain.SentimentRecord, error) {
	ctx, span := s.tracer.Start(ctx, "buzz-service.buzz-for")
	defer span.End()

	coin, ok := domain.SentimentCoinBySymbol(symbol)
	if !ok {
		return domain.SentimentRecord{}, fmt.Errorf("unsupported symbol: %s", symbol)
	}
	return s.scoreCoin(ctx, coin), nil
}

func (s *BuzzService) scoreCoin(ctx context.Context, coin domain.SentimentCoin) domain.SentimentRecord {
	stats, err := s.provider.FetchSocialLatest(ctx, coin.ID)
	switch {
	case errors.Is(err, provider.ErrNoSocialData):
		log.Printf("no social data for %s (id %d)", coin.Symbol, coin.ID)
		return domain.SentimentRecord{
			Symbol:         coin.Symbol,
			Interpretation: sentiment.Interpret(coin.Symbol, nil),
		}
	case err != nil:
		log.Printf("sentiment fetch failed for %s (id %d): %v", coin.Symbol, coin.ID, err)
		return domain.SentimentRecord{
			Symbol:         coin.Symbol,
			Interpretation: fmt.Sprintf("%s: Failed to fetch sentiment data: %v", coin.Symbol, err),
		}
	}

	score := sentiment.BuzzScore([]domain.SocialStats{*stats})
	return domain.SentimentRecord{
		Symbol:         coin.Symbol,
		Score:          score,
		Interpretation: sentiment.Interpret(coin.Symbol, score),
	}
}
