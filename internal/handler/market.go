package handler

import (
	"net/http"

	"coinboard/internal/domain"

	"github.com/gin-gonic/gin"
)

// generalInfoResponse is CoinGeneralInfo with the market cap formatted for
// display. Magnitude formatting happens here at the boundary, not in the
// service.
type generalInfoResponse struct {
	Coin         string  `json:"coin"`
	FullName     string  `json:"full_name"`
	LaunchDate   string  `json:"launch_date"`
	Algorithm    string  `json:"algorithm"`
	ProofType    string  `json:"proof_type"`
	PriceUSD     float64 `json:"price_usd"`
	MarketCapUSD string  `json:"market_cap_usd"`
}

// GetPrices godoc
// @Summary      Current USD prices
// @Description  Returns display-ready coin prices sorted descending by price
// @Tags         market
// @Produce      json
// @Success      200  {array}   domain.CoinPriceRecord
// @Failure      500  {object}  map[string]string
// @Router       /api/prices [get]
func (h *Handler) GetPrices(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-prices")
	defer span.End()

	records, err := h.prices.GetPrices(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetGeneralInfo godoc
// @Summary      Coin metadata and market caps
// @Description  Returns general coin info with USD pricing and B/M-formatted market caps
// @Tags         market
// @Produce      json
// @Success      200  {array}   handler.generalInfoResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/general_info [get]
func (h *Handler) GetGeneralInfo(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-general-info")
	defer span.End()

	records, err := h.generalInfo.GetGeneralInfo(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]generalInfoResponse, 0, len(records))
	for _, r := range records {
		out = append(out, generalInfoResponse{
			Coin:         r.Coin,
			FullName:     r.FullName,
			LaunchDate:   r.LaunchDate,
			Algorithm:    r.Algorithm,
			ProofType:    r.ProofType,
			PriceUSD:     r.PriceUSD,
			MarketCapUSD: domain.FormatMarketCap(r.MarketCapUSD),
		})
	}

	c.JSON(http.StatusOK, out)
}

// GetNews godoc
// @Summary      Recent crypto news
// @Description  Returns the 10 most recent articles with sentiment polarity
// @Tags         market
// @Produce      json
// @Success      200  {array}   domain.NewsArticle
// @Failure      500  {object}  map[string]string
// @Router       /api/news [get]
func (h *Handler) GetNews(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-news")
	defer span.End()

	articles, err := h.news.GetNews(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, articles)
}

// GetSentiment godoc
// @Summary      Social buzz scores
// @Description  Returns one buzz record per tracked coin; per-coin failures degrade only that record
// @Tags         market
// @Produce      json
// @Success      200  {array}   domain.SentimentRecord
// @Failure      500  {object}  map[string]string
// @Router       /api/sentiment [get]
func (h *Handler) GetSentiment(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-sentiment")
	defer span.End()

	records, err := h.buzz.GetSentiment(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}
