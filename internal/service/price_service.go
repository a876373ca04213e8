package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"coinboard/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	priceCacheKey = "coinboard:prices"
	priceCacheTTL = 30 * time.Second
)

type PriceFetcher interface {
	FetchPriceMulti(ctx context.Context) (map[string]*float64, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// PriceService turns raw upstream quotes into display-ready price records.
type PriceService struct {
	tracer   trace.Tracer
	provider PriceFetcher
	redis    RedisClient
}

// NewPriceService creates a price service. redisClient may be nil, in which
// case every request goes straight to the upstream.
func NewPriceService(tracer trace.Tracer, provider PriceFetcher, redisClient RedisClient) *PriceService {
	return &PriceService{
		tracer:   tracer,
		provider: provider,
		redis:    redisClient,
	}
}

// GetPrices returns the current price table: symbols renamed to display
// names, prices rounded to 2 decimals, sorted descending by price. Coins
// with a missing price are dropped; unmapped symbols pass through unchanged.
func (s *PriceService) GetPrices(ctx context.Context) ([]domain.CoinPriceRecord, error) {
	ctx, span := s.tracer.Start(ctx, "price-service.get-prices")
	defer span.End()

	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	prices, err := s.provider.FetchPriceMulti(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	records := make([]domain.CoinPriceRecord, 0, len(prices))
	for symbol, price := range prices {
		if price == nil {
			continue
		}
		name, ok := domain.DisplayName[symbol]
		if !ok {
			name = symbol
		}
		records = append(records, domain.CoinPriceRecord{
			Coin:     name,
			PriceUSD: domain.Round2(*price),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid price data extracted")
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].PriceUSD != records[j].PriceUSD {
			return records[i].PriceUSD > records[j].PriceUSD
		}
		return records[i].Coin < records[j].Coin
	})

	s.writeCache(ctx, records)
	return records, nil
}

func (s *PriceService) readCache(ctx context.Context) []domain.CoinPriceRecord {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, priceCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis cache read error: %v", err)
		}
		return nil
	}
	var records []domain.CoinPriceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("redis cache decode error: %v", err)
		return nil
	}
	return records
}

func (s *PriceService) writeCache(ctx context.Context, records []domain.CoinPriceRecord) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, priceCacheKey, data, priceCacheTTL).Err(); err != nil {
		log.Printf("redis cache write error: %v", err)
	}
}
