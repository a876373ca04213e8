package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"coinboard/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/trace"
)

const cryptoCompareBaseURL = "https://min-api.cryptocompare.com"

// ErrNoSocialData marks an empty or absent social payload. Callers use it
// to tell "no data for this coin" apart from a failed fetch.
var ErrNoSocialData = errors.New("no social data")

// RetryPolicy bounds the synchronous retry applied to transient upstream
// failures. Attempts counts the initial call.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

// transientStatus lists the upstream statuses worth retrying. Anything
// else fails immediately.
var transientStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Timeouts holds the per-endpoint request deadlines.
type Timeouts struct {
	Price   time.Duration
	General time.Duration
	News    time.Duration
	Social  time.Duration
}

// CryptoCompareClient talks to the CryptoCompare min-api. All methods issue
// a single GET with bounded retry and rate limiting.
type CryptoCompareClient struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	tracer   trace.Tracer
	limiter  *RateLimiter
	retry    RetryPolicy
	timeouts Timeouts
}

// NewCryptoCompareClient creates a client with built-in rate limiting.
// Rate limited to 20 requests per minute (one token every 3 seconds).
func NewCryptoCompareClient(tracer trace.Tracer, apiKey string, retry RetryPolicy, timeouts Timeouts) *CryptoCompareClient {
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = 3
	}
	if retry.InitialBackoff <= 0 {
		retry.InitialBackoff = 500 * time.Millisecond
	}
	return &CryptoCompareClient{
		client:   &http.Client{},
		baseURL:  cryptoCompareBaseURL,
		apiKey:   apiKey,
		tracer:   tracer,
		limiter:  NewRateLimiter(20, 3*time.Second),
		retry:    retry,
		timeouts: timeouts,
	}
}

// FetchPriceMulti fetches USD prices for the fixed price symbol list in one
// batched call. Coins whose PRICE field is missing or not numeric map to nil.
func (c *CryptoCompareClient) FetchPriceMulti(ctx context.Context) (map[string]*float64, error) {
	ctx, span := c.tracer.Start(ctx, "cryptocompare.fetch-price-multi")
	defer span.End()

	url := fmt.Sprintf("%s/data/pricemultifull?fsyms=%s&tsyms=USD&api_key=%s",
		c.baseURL, strings.Join(domain.PriceSymbols, ","), c.apiKey)

	body, err := c.doRequest(ctx, url, c.timeouts.Price)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	var payload struct {
		Response string                     `json:"Response"`
		Message  string                     `json:"Message"`
		Raw      map[string]json.RawMessage `json:"RAW"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse prices: %w", err)
	}
	if payload.Response == "Error" {
		return nil, fmt.Errorf("cryptocompare error: %s", payload.Message)
	}
	if len(payload.Raw) == 0 {
		return nil, fmt.Errorf("no price data returned")
	}

	result := make(map[string]*float64, len(payload.Raw))
	for symbol, raw := range payload.Raw {
		var quote struct {
			USD struct {
				Price *float64 `json:"PRICE"`
			} `json:"USD"`
		}
		if err := json.Unmarshal(raw, &quote); err != nil {
			// Non-numeric price: treat as missing, the coin is dropped later.
			result[symbol] = nil
			continue
		}
		result[symbol] = quote.USD.Price
	}

	return result, nil
}

// GeneralInfoEntry is one coin's record from the general-info endpoint,
// kept close to the wire shape. Raw holds the tilde-delimited quote field.
type GeneralInfoEntry struct {
	CoinInfo struct {
		Name            string `json:"Name"`
		FullName        string `json:"FullName"`
		AssetLaunchDate string `json:"AssetLaunchDate"`
		Algorithm       string `json:"Algorithm"`
		ProofType       string `json:"ProofType"`
	} `json:"CoinInfo"`
	ConversionInfo struct {
		Supply float64  `json:"Supply"`
		Raw    []string `json:"RAW"`
	} `json:"ConversionInfo"`
}

// FetchGeneralInfo fetches metadata and pricing for the fixed general-info
// symbol list in one batched call.
func (c *CryptoCompareClient) FetchGeneralInfo(ctx context.Context) ([]GeneralInfoEntry, error) {
	ctx, span := c.tracer.Start(ctx, "cryptocompare.fetch-general-info")
	defer span.End()

	url := fmt.Sprintf("%s/data/coin/generalinfo?fsyms=%s&tsym=USD&api_key=%s",
		c.baseURL, strings.Join(domain.GeneralInfoSymbols, ","), c.apiKey)

	body, err := c.doRequest(ctx, url, c.timeouts.General)
	if err != nil {
		return nil, fmt.Errorf("fetch general info: %w", err)
	}

	var payload struct {
		Response string             `json:"Response"`
		Message  string             `json:"Message"`
		Data     []GeneralInfoEntry `json:"Data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse general info: %w", err)
	}
	if payload.Response == "Error" {
		return nil, fmt.Errorf("cryptocompare error: %s", payload.Message)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("no general info data returned")
	}

	return payload.Data, nil
}

// NewsItem is one article from the news feed, kept close to the wire shape.
type NewsItem struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Source     string `json:"source"`
	SourceInfo struct {
		Name string `json:"name"`
	} `json:"source_info"`
	PublishedOn int64  `json:"published_on"`
	Body        string `json:"body"`
}

// FetchNews fetches the English-language news feed filtered to the BTC and
// ETH categories. The upstream marks a well-formed feed with Type 100.
func (c *CryptoCompareClient) FetchNews(ctx context.Context) ([]NewsItem, error) {
	ctx, span := c.tracer.Start(ctx, "cryptocompare.fetch-news")
	defer span.End()

	url := fmt.Sprintf("%s/data/v2/news/?lang=EN&categories=BTC,ETH&api_key=%s", c.baseURL, c.apiKey)

	body, err := c.doRequest(ctx, url, c.timeouts.News)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}

	var payload struct {
		Type    int        `json:"Type"`
		Message string     `json:"Message"`
		Data    []NewsItem `json:"Data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse news: %w", err)
	}
	if payload.Type != 100 || payload.Data == nil {
		return nil, fmt.Errorf("unexpected news response format (type %d)", payload.Type)
	}

	return payload.Data, nil
}

// FetchSocialLatest fetches the latest social-metrics snapshot for one coin.
// Returns ErrNoSocialData when the upstream has nothing for the coin, which
// is a normal outcome, not a failure.
func (c *CryptoCompareClient) FetchSocialLatest(ctx context.Context, coinID int) (*domain.SocialStats, error) {
	ctx, span := c.tracer.Start(ctx, "cryptocompare.fetch-social-latest")
	defer span.End()

	url := fmt.Sprintf("%s/data/social/coin/latest?coinId=%d&api_key=%s", c.baseURL, coinID, c.apiKey)

	body, err := c.doRequest(ctx, url, c.timeouts.Social)
	if err != nil {
		return nil, fmt.Errorf("fetch social stats for coin %d: %w", coinID, err)
	}

	var payload struct {
		Data json.RawMessage `json:"Data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse social stats for coin %d: %w", coinID, err)
	}

	trimmed := strings.TrimSpace(string(payload.Data))
	if trimmed == "" || trimmed == "null" || trimmed == "{}" || trimmed == "[]" {
		return nil, ErrNoSocialData
	}

	var stats domain.SocialStats
	if err := json.Unmarshal(payload.Data, &stats); err != nil {
		return nil, fmt.Errorf("parse social stats for coin %d: %w", coinID, err)
	}

	return &stats, nil
}

// doRequest issues one rate-limited GET with bounded exponential retry on
// transient statuses and network errors. Other statuses fail immediately.
func (c *CryptoCompareClient) doRequest(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("cryptocompare API error %d: %s", resp.StatusCode, string(data))
			if transientStatus[resp.StatusCode] {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		body = data
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.retry.InitialBackoff

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(c.retry.MaxAttempts-1)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}

	return body, nil
}
