package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"coinboard/internal/domain"
	"coinboard/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

type GeneralInfoFetcher interface {
	FetchGeneralInfo(ctx context.Context) ([]provider.GeneralInfoEntry, error)
}

// GeneralInfoService builds coin metadata records with USD pricing and
// market caps from the batched general-info feed.
type GeneralInfoService struct {
	tracer   trace.Tracer
	provider GeneralInfoFetcher
}

func NewGeneralInfoService(tracer trace.Tracer, provider GeneralInfoFetcher) *GeneralInfoService {
	return &GeneralInfoService{tracer: tracer, provider: provider}
}

// parsedQuote is the positional content of the tilde-delimited RAW field:
// index 3 is the quote currency, index 5 the price in that currency.
type parsedQuote struct {
	currency string
	price    float64
}

// GetGeneralInfo fetches the batch and converts every price to USD.
// Conversion is two-pass: BTC's USD price is located first, then used as
// the pivot for any coin quoted in BTC, so upstream ordering never matters.
// A BTC-quoted coin with no BTC row in the batch is an explicit error.
func (s *GeneralInfoService) GetGeneralInfo(ctx context.Context) ([]domain.CoinGeneralInfo, error) {
	ctx, span := s.tracer.Start(ctx, "general-info-service.get-general-info")
	defer span.End()

	entries, err := s.provider.FetchGeneralInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch general info: %w", err)
	}

	var btcPriceUSD float64
	btcFound := false
	for _, entry := range entries {
		if entry.CoinInfo.Name != "BTC" {
			continue
		}
		quote, err := parseRawQuote(entry)
		if err != nil {
			return nil, err
		}
		btcPriceUSD = quote.price
		btcFound = true
		break
	}

	records := make([]domain.CoinGeneralInfo, 0, len(entries))
	for _, entry := range entries {
		name := entry.CoinInfo.Name
		if name == "" {
			name = "unknown coin"
		}

		quote, err := parseRawQuote(entry)
		if err != nil {
			return nil, err
		}

		priceUSD := quote.price
		if name != "BTC" && quote.currency == "BTC" {
			if !btcFound {
				return nil, fmt.Errorf("BTC price not available to convert %s price", name)
			}
			priceUSD = quote.price * btcPriceUSD
		}

		supply := entry.ConversionInfo.Supply
		if supply <= 0 {
			return nil, fmt.Errorf("invalid supply (non-positive) for %s: %v", name, supply)
		}

		records = append(records, domain.CoinGeneralInfo{
			Coin:         name,
			FullName:     entry.CoinInfo.FullName,
			LaunchDate:   entry.CoinInfo.AssetLaunchDate,
			Algorithm:    valueOrNA(entry.CoinInfo.Algorithm),
			ProofType:    valueOrNA(entry.CoinInfo.ProofType),
			PriceUSD:     domain.Round2(priceUSD),
			MarketCapUSD: supply * priceUSD,
		})
	}

	return records, nil
}

func parseRawQuote(entry provider.GeneralInfoEntry) (parsedQuote, error) {
	name := entry.CoinInfo.Name
	raw := entry.ConversionInfo.Raw
	if len(raw) == 0 {
		return parsedQuote{}, fmt.Errorf("no RAW data for %s", name)
	}

	parts := strings.Split(raw[0], "~")
	if len(parts) < 6 {
		return parsedQuote{}, fmt.Errorf("invalid RAW data format for %s: %s", name, raw[0])
	}

	price, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return parsedQuote{}, fmt.Errorf("failed to parse price for %s: %s", name, parts[5])
	}
	if price <= 0 {
		return parsedQuote{}, fmt.Errorf("invalid price (non-positive) for %s: %v", name, price)
	}

	return parsedQuote{currency: parts[3], price: price}, nil
}

func valueOrNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return "N/A"
	}
	return v
}
