package domain

import (
	"fmt"
	"math"
)

// CoinPriceRecord is one row of the /api/prices response, already
// renamed to a display name and rounded to 2 decimals.
type CoinPriceRecord struct {
	Coin     string  `json:"coin"`
	PriceUSD float64 `json:"price_usd"`
}

// CoinGeneralInfo is one row of the /api/general_info response.
// MarketCapUSD stays numeric here; the handler applies the B/M/raw
// magnitude formatting before serialization.
type CoinGeneralInfo struct {
	Coin         string  `json:"coin"`
	FullName     string  `json:"full_name"`
	LaunchDate   string  `json:"launch_date"`
	Algorithm    string  `json:"algorithm"`
	ProofType    string  `json:"proof_type"`
	PriceUSD     float64 `json:"price_usd"`
	MarketCapUSD float64 `json:"market_cap_usd"`
}

// NewsArticle is one row of the /api/news response. Sentiment is the
// compound polarity of the article body, 0.0 when the body is empty.
type NewsArticle struct {
	Title     string  `json:"title"`
	Source    string  `json:"source"`
	Link      string  `json:"link"`
	TimeUTC   string  `json:"time_utc"`
	Sentiment float64 `json:"sentiment"`
}

// SentimentRecord is one row of the /api/sentiment response.
// Score is nil when no social data was available for the coin.
type SentimentRecord struct {
	Symbol         string   `json:"symbol"`
	Score          *float64 `json:"score"`
	Interpretation string   `json:"interpretation"`
}

// SocialStats is the latest social-metrics snapshot for one coin as
// returned by the upstream provider. Every field is optional upstream;
// absent fields decode to zero so the weighted score stays well-defined.
type SocialStats struct {
	Reddit struct {
		CommentsPerDay float64 `json:"comments_per_day"`
		PostsPerDay    float64 `json:"posts_per_day"`
		ActiveUsers    float64 `json:"active_users"`
	} `json:"Reddit"`
	Twitter struct {
		Followers float64 `json:"followers"`
	} `json:"Twitter"`
	CodeRepository struct {
		List []CodeRepoStats `json:"List"`
	} `json:"CodeRepository"`
}

type CodeRepoStats struct {
	Stars float64 `json:"stars"`
	Forks float64 `json:"forks"`
}

// SentimentCoin pairs a ticker symbol with the upstream numeric coin id
// used by the social-stats endpoint.
type SentimentCoin struct {
	Symbol string
	ID     int
}

// PriceSymbols is the fixed list requested from the price endpoint.
var PriceSymbols = []string{
	"BTC", "ETH", "BNB", "ADA", "XRP", "SOL", "DOGE", "DOT", "TRX", "APT", "NEAR", "HBAR",
}

// GeneralInfoSymbols is the fixed list requested from the general-info endpoint.
var GeneralInfoSymbols = []string{
	"BTC", "ETH", "BNB", "SOL", "XRP", "DOGE", "ADA", "AVAX", "DOT", "TRX", "SUI",
}

// DisplayName maps ticker symbols to human-readable coin names.
// Symbols without an entry are passed through unchanged.
var DisplayName = map[string]string{
	"BTC":  "Bitcoin",
	"ETH":  "Ethereum",
	"BNB":  "Binance Coin",
	"ADA":  "Cardano",
	"XRP":  "Ripple",
	"SOL":  "Solana",
	"DOGE": "Dogecoin",
	"DOT":  "Polkadot",
	"TRX":  "Tron",
	"APT":  "Aptos",
	"NEAR": "NEAR Protocol",
	"HBAR": "Hedera",
}

// SentimentCoins is the fixed list scored by the sentiment endpoint.
var SentimentCoins = []SentimentCoin{
	{Symbol: "BTC", ID: 1182},
	{Symbol: "ETH", ID: 7605},
	{Symbol: "BNB", ID: 204788},
	{Symbol: "SOL", ID: 934443},
	{Symbol: "XRP", ID: 5031},
	{Symbol: "DOGE", ID: 4432},
	{Symbol: "ADA", ID: 321992},
	{Symbol: "AVAX", ID: 935805},
}

// SentimentCoinBySymbol returns the sentiment coin entry for a symbol.
func SentimentCoinBySymbol(symbol string) (SentimentCoin, bool) {
	for _, c := range SentimentCoins {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return SentimentCoin{}, false
}

// FormatMarketCap renders a market cap with a magnitude suffix:
// >= 1e9 uses "B", >= 1e6 uses "M", anything smaller stays a raw
// 2-decimal string.
func FormatMarketCap(marketCap float64) string {
	switch {
	case marketCap >= 1_000_000_000:
		return fmt.Sprintf("%.2fB", marketCap/1_000_000_000)
	case marketCap >= 1_000_000:
		return fmt.Sprintf("%.2fM", marketCap/1_000_000)
	default:
		return fmt.Sprintf("%.2f", marketCap)
	}
}

// Round2 rounds to the 2-decimal precision used for display prices and scores.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
