package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"coinboard/internal/domain"
	"coinboard/internal/provider"
	"coinboard/internal/sentiment"

	"go.opentelemetry.io/otel/trace"
)

const maxNewsArticles = 10

type NewsFetcher interface {
	FetchNews(ctx context.Context) ([]provider.NewsItem, error)
}

// NewsService builds the news table: the 10 most recent articles with a
// compound sentiment polarity per body. Lexicon scores are the baseline;
// a configured batch scorer refines them best-effort.
type NewsService struct {
	tracer   trace.Tracer
	provider NewsFetcher
	analyzer *sentiment.Analyzer
	scorer   sentiment.BatchScorer
}

func NewNewsService(tracer trace.Tracer, provider NewsFetcher, analyzer *sentiment.Analyzer, scorer sentiment.BatchScorer) *NewsService {
	return &NewsService{
		tracer:   tracer,
		provider: provider,
		analyzer: analyzer,
		scorer:   scorer,
	}
}

func (s *NewsService) GetNews(ctx context.Context) ([]domain.NewsArticle, error) {
	ctx, span := s.tracer.Start(ctx, "news-service.get-news")
	defer span.End()

	items, err := s.provider.FetchNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	if len(items) > maxNewsArticles {
		items = items[:maxNewsArticles]
	}

	articles := make([]domain.NewsArticle, 0, len(items))
	for _, item := range items {
		articles = append(articles, domain.NewsArticle{
			Title:     valueOrNA(item.Title),
			Source:    articleSource(item),
			Link:      valueOrNA(item.URL),
			TimeUTC:   time.Unix(item.PublishedOn, 0).UTC().Format("2006-01-02T15:04:05Z"),
			Sentiment: s.analyzer.Compound(item.Body),
		})
	}

	s.refineSentiment(ctx, items, articles)
	return articles, nil
}

// refineSentiment overwrites lexicon polarities with scorer output where
// available. Scorer failures keep the lexicon scores.
func (s *NewsService) refineSentiment(ctx context.Context, items []provider.NewsItem, articles []domain.NewsArticle) {
	if s.scorer == nil || len(items) == 0 {
		return
	}

	batch := make([]sentiment.ArticleText, 0, len(items))
	for i, item := range items {
		batch = append(batch, sentiment.ArticleText{Index: i, Title: item.Title, Body: item.Body})
	}

	scored, err := s.scorer.ScoreBatch(ctx, batch)
	if err != nil {
		log.Printf("news sentiment refinement failed, keeping lexicon scores: %v", err)
		return
	}
	for _, row := range scored {
		if row.Index >= 0 && row.Index < len(articles) {
			articles[row.Index].Sentiment = row.Score
		}
	}
}

func articleSource(item provider.NewsItem) string {
	if item.SourceInfo.Name != "" {
		return item.SourceInfo.Name
	}
	return valueOrNA(item.Source)
}
