package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"coinboard/internal/domain"
	"coinboard/internal/provider"
)

type fakeSocialFetcher struct {
	stats  map[int]*domain.SocialStats
	errs   map[int]error
	called []int
}

func (f *fakeSocialFetcher) FetchSocialLatest(ctx context.Context, coinID int) (*domain.SocialStats, error) {
	f.called = append(f.called, coinID)
	if err, ok := f.errs[coinID]; ok {
		return nil, err
	}
	if stats, ok := f.stats[coinID]; ok {
		return stats, nil
	}
	return nil, provider.ErrNoSocialData
}

func activeStats(comments float64) *domain.SocialStats {
	var s domain.SocialStats
	s.Reddit.CommentsPerDay = comments
	return &s
}

func TestGetSentimentIsolatesPerCoinFailure(t *testing.T) {
	fetcher := &fakeSocialFetcher{
		stats: map[int]*domain.SocialStats{},
		errs:  map[int]error{},
	}
	for _, coin := range domain.SentimentCoins {
		fetcher.stats[coin.ID] = activeStats(100)
	}
	// One coin's upstream call blows up.
	failing := domain.SentimentCoins[3]
	delete(fetcher.stats, failing.ID)
	fetcher.errs[failing.ID] = fmt.Errorf("connection reset")

	s := NewBuzzService(noopTracer(), fetcher)
	records, err := s.GetSentiment(context.Background())
	if err != nil {
		t.Fatalf("per-coin failure must not fail the batch: %v", err)
	}
	if len(records) != len(domain.SentimentCoins) {
		t.Fatalf("expected %d records, got %d", len(domain.SentimentCoins), len(records))
	}

	failures := 0
	for _, r := range records {
		if strings.Contains(r.Interpretation, "Failed to fetch sentiment data") {
			failures++
			if r.Symbol != failing.Symbol {
				t.Fatalf("wrong coin marked failed: %+v", r)
			}
			if r.Score != nil {
				t.Fatalf("failed coin must have nil score: %+v", r)
			}
		} else if r.Score == nil {
			t.Fatalf("healthy coin missing score: %+v", r)
		}
	}
	if failures != 1 {
		t.Fatalf("expected exactly 1 failure record, got %d", failures)
	}
}

func TestGetSentimentNoDataRecord(t *testing.T) {
	fetcher := &fakeSocialFetcher{} // everything returns ErrNoSocialData
	s := NewBuzzService(noopTracer(), fetcher)

	records, err := s.GetSentiment(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range records {
		if r.Score != nil {
			t.Fatalf("expected nil score, got %+v", r)
		}
		expected := fmt.Sprintf("%s: No data to calculate buzz score.", r.Symbol)
		if r.Interpretation != expected {
			t.Fatalf("unexpected interpretation: %q", r.Interpretation)
		}
	}
}

func TestGetSentimentFetchesSequentiallyInOrder(t *testing.T) {
	fetcher := &fakeSocialFetcher{}
	s := NewBuzzService(noopTracer(), fetcher)

	if _, err := s.GetSentiment(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fetcher.called) != len(domain.SentimentCoins) {
		t.Fatalf("expected %d calls, got %d", len(domain.SentimentCoins), len(fetcher.called))
	}
	for i, coin := range domain.SentimentCoins {
		if fetcher.called[i] != coin.ID {
			t.Fatalf("call %d: expected coin %d, got %d", i, coin.ID, fetcher.called[i])
		}
	}
}

func TestBuzzFor(t *testing.T) {
	fetcher := &fakeSocialFetcher{stats: map[int]*domain.SocialStats{1182: activeStats(2000)}}
	s := NewBuzzService(noopTracer(), fetcher)

	record, err := s.BuzzFor(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Score == nil || *record.Score != 4000 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if !strings.Contains(record.Interpretation, "High buzz") {
		t.Fatalf("unexpected interpretation: %q", record.Interpretation)
	}

	if _, err := s.BuzzFor(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for unsupported symbol")
	}
}
