package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coinboard/internal/bot"
	"coinboard/internal/cache"
	"coinboard/internal/config"
	"coinboard/internal/handler"
	"coinboard/internal/provider"
	"coinboard/internal/sentiment"
	"coinboard/internal/service"
	"coinboard/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "coinboard/docs"
)

var (
	loadEnvFunc     = godotenv.Load
	loadConfigFunc  = config.Load
	initRedisFunc   = cache.InitRedis
	initTracerFunc  = tracing.InitTracer
	newProviderFunc = func(tracer trace.Tracer, cfg *config.Config) *provider.CryptoCompareClient {
		return provider.NewCryptoCompareClient(tracer, cfg.CryptoCompareAPIKey,
			provider.RetryPolicy{MaxAttempts: cfg.RetryMaxAttempts, InitialBackoff: cfg.RetryBackoff},
			provider.Timeouts{
				Price:   cfg.PriceTimeout,
				General: cfg.GeneralTimeout,
				News:    cfg.NewsTimeout,
				Social:  cfg.SocialTimeout,
			})
	}
	newPriceServiceFunc    = service.NewPriceService
	newGeneralInfoFunc     = service.NewGeneralInfoService
	newNewsServiceFunc     = service.NewNewsService
	newBuzzServiceFunc     = service.NewBuzzService
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Coinboard API
// @version         1.0
// @description     Crypto market dashboard API with OpenTelemetry tracing.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional Redis price cache
	initRedisFunc(ctx, cfg.RedisURL)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Upstream client and services
	cc := newProviderFunc(tracer, cfg)

	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	priceService := newPriceServiceFunc(tracer, cc, redisClient)
	generalInfoService := newGeneralInfoFunc(tracer, cc)

	var scorer sentiment.BatchScorer
	if s := sentiment.NewOpenAIScorer(cfg.OpenAIAPIKey, cfg.OpenAIModel); s != nil {
		scorer = s
		log.Println("News sentiment refinement enabled")
	}
	newsService := newNewsServiceFunc(tracer, cc, sentiment.NewAnalyzer(), scorer)
	buzzService := newBuzzServiceFunc(tracer, cc)

	// Start Telegram bot
	startTelegramBotFunc(cfg.TelegramBotToken, priceService, buzzService)

	// Create handlers and routes
	h := newHandlerFunc(tracer, priceService, generalInfoService, newsService, buzzService, cfg.StaticDir)

	r := newRouterFunc()
	r.Use(cors.Default())
	r.Use(otelgin.Middleware("coinboard"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
