package handler

import (
	"context"
	"path/filepath"

	"coinboard/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type PriceLister interface {
	GetPrices(ctx context.Context) ([]domain.CoinPriceRecord, error)
}

type GeneralInfoLister interface {
	GetGeneralInfo(ctx context.Context) ([]domain.CoinGeneralInfo, error)
}

type NewsLister interface {
	GetNews(ctx context.Context) ([]domain.NewsArticle, error)
}

type SentimentLister interface {
	GetSentiment(ctx context.Context) ([]domain.SentimentRecord, error)
}

type Handler struct {
	tracer      trace.Tracer
	prices      PriceLister
	generalInfo GeneralInfoLister
	news        NewsLister
	buzz        SentimentLister
	staticDir   string
}

func New(tracer trace.Tracer, prices PriceLister, generalInfo GeneralInfoLister, news NewsLister, buzz SentimentLister, staticDir string) *Handler {
	return &Handler{
		tracer:      tracer,
		prices:      prices,
		generalInfo: generalInfo,
		news:        news,
		buzz:        buzz,
		staticDir:   staticDir,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/prices", h.GetPrices)
	r.GET("/api/general_info", h.GetGeneralInfo)
	r.GET("/api/news", h.GetNews)
	r.GET("/api/sentiment", h.GetSentiment)

	r.StaticFile("/", filepath.Join(h.staticDir, "index.html"))
	r.StaticFile("/styles.css", filepath.Join(h.staticDir, "styles.css"))
	r.StaticFile("/scripts.js", filepath.Join(h.staticDir, "scripts.js"))
}
