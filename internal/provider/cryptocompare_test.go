package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(transport http.RoundTripper) *CryptoCompareClient {
	c := NewCryptoCompareClient(
		trace.NewNoopTracerProvider().Tracer("test"),
		"test-key",
		RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond},
		Timeouts{Price: time.Second, General: time.Second, News: time.Second, Social: time.Second},
	)
	c.baseURL = "http://example"
	c.client = &http.Client{Transport: transport}
	c.limiter = NewRateLimiter(100, time.Millisecond)
	return c
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func TestFetchPriceMulti(t *testing.T) {
	t.Parallel()

	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "/data/pricemultifull") {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		body := `{"RAW":{"BTC":{"USD":{"PRICE":97000.123}},"ETH":{"USD":{}},"DOGE":{"USD":{"PRICE":0.42}}}}`
		return jsonResponse(http.StatusOK, body), nil
	}))

	prices, err := c.FetchPriceMulti(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := prices["BTC"]; p == nil || *p != 97000.123 {
		t.Fatalf("unexpected BTC price: %v", p)
	}
	if prices["ETH"] != nil {
		t.Fatalf("expected nil price for ETH, got %v", *prices["ETH"])
	}
	if p := prices["DOGE"]; p == nil || *p != 0.42 {
		t.Fatalf("unexpected DOGE price: %v", p)
	}
}

func TestFetchPriceMultiAPIError(t *testing.T) {
	t.Parallel()

	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"Response":"Error","Message":"rate limit"}`), nil
	}))

	_, err := c.FetchPriceMulti(context.Background())
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Fatalf("expected API-level error, got %v", err)
	}
}

func TestDoRequestRetriesTransientStatus(t *testing.T) {
	t.Parallel()

	attempts := 0
	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return jsonResponse(http.StatusServiceUnavailable, "upstream down"), nil
		}
		return jsonResponse(http.StatusOK, `{"RAW":{"BTC":{"USD":{"PRICE":1}}}}`), nil
	}))

	if _, err := c.FetchPriceMulti(context.Background()); err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDoRequestDoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	attempts := 0
	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusUnauthorized, "bad key"), nil
	}))

	_, err := c.FetchPriceMulti(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt for 401, got %d", attempts)
	}
}

func TestDoRequestGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	attempts := 0
	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		attempts++
		return jsonResponse(http.StatusBadGateway, "flaky"), nil
	}))

	_, err := c.FetchPriceMulti(context.Background())
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestFetchGeneralInfo(t *testing.T) {
	t.Parallel()

	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "/data/coin/generalinfo") {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		body := `{"Data":[{"CoinInfo":{"Name":"BTC","FullName":"Bitcoin (BTC)","AssetLaunchDate":"2009-01-03","Algorithm":"SHA-256","ProofType":"PoW"},"ConversionInfo":{"Supply":19000000,"RAW":["5~CCCAGG~BTC~USD~2~50000~1"]}}]}`
		return jsonResponse(http.StatusOK, body), nil
	}))

	entries, err := c.FetchGeneralInfo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].CoinInfo.Name != "BTC" || entries[0].ConversionInfo.Supply != 19000000 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if len(entries[0].ConversionInfo.Raw) != 1 {
		t.Fatalf("expected RAW field, got %+v", entries[0].ConversionInfo)
	}
}

func TestFetchGeneralInfoEmpty(t *testing.T) {
	t.Parallel()

	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"Data":[]}`), nil
	}))

	if _, err := c.FetchGeneralInfo(context.Background()); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestFetchNews(t *testing.T) {
	t.Parallel()

	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "/data/v2/news/") {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		body := `{"Type":100,"Data":[{"title":"BTC rallies","url":"https://example.com/a","source":"feed","source_info":{"name":"Example News"},"published_on":1735689600,"body":"Markets rallied strongly today."}]}`
		return jsonResponse(http.StatusOK, body), nil
	}))

	items, err := c.FetchNews(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "BTC rallies" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].SourceInfo.Name != "Example News" {
		t.Fatalf("unexpected source info: %+v", items[0])
	}
}

func TestFetchNewsUnexpectedType(t *testing.T) {
	t.Parallel()

	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"Type":2,"Message":"bad request"}`), nil
	}))

	if _, err := c.FetchNews(context.Background()); err == nil {
		t.Fatal("expected error for unexpected type")
	}
}

func TestFetchSocialLatest(t *testing.T) {
	t.Parallel()

	c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "/data/social/coin/latest") {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if req.URL.Query().Get("coinId") != "1182" {
			t.Fatalf("unexpected coinId: %s", req.URL.Query().Get("coinId"))
		}
		body := `{"Data":{"Reddit":{"comments_per_day":120,"posts_per_day":30,"active_users":900},"Twitter":{"followers":5000000},"CodeRepository":{"List":[{"stars":70000,"forks":35000}]}}}`
		return jsonResponse(http.StatusOK, body), nil
	}))

	stats, err := c.FetchSocialLatest(context.Background(), 1182)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Reddit.CommentsPerDay != 120 || stats.Twitter.Followers != 5000000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.CodeRepository.List) != 1 || stats.CodeRepository.List[0].Stars != 70000 {
		t.Fatalf("unexpected repo list: %+v", stats.CodeRepository)
	}
}

func TestFetchSocialLatestNoData(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"Data":{}}`, `{"Data":null}`, `{}`, `{"Data":[]}`} {
		c := newTestClient(roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, body), nil
		}))
		_, err := c.FetchSocialLatest(context.Background(), 42)
		if !errors.Is(err, ErrNoSocialData) {
			t.Fatalf("body %s: expected ErrNoSocialData, got %v", body, err)
		}
	}
}
