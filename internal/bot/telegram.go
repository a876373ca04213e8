package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"coinboard/internal/domain"
	"coinboard/internal/service"

	tele "gopkg.in/telebot.v3"
)

// StartTelegramBot launches the optional Telegram command bot. A missing
// token skips startup entirely.
func StartTelegramBot(token string, priceService *service.PriceService, buzzService *service.BuzzService) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price BTC\nTracked: %s", strings.Join(domain.PriceSymbols, ", ")))
		}
		symbol := strings.ToUpper(args[0])
		name, ok := domain.DisplayName[symbol]
		if !ok {
			return c.Send(fmt.Sprintf("Unknown symbol: %s\nTracked: %s", symbol, strings.Join(domain.PriceSymbols, ", ")))
		}
		records, err := priceService.GetPrices(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching prices: %v", err))
		}
		for _, r := range records {
			if r.Coin == name {
				return c.Send(fmt.Sprintf("%s\nPrice: $%.2f", r.Coin, r.PriceUSD))
			}
		}
		return c.Send(fmt.Sprintf("No price available for %s", symbol))
	})

	b.Handle("/buzz", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			symbols := make([]string, 0, len(domain.SentimentCoins))
			for _, coin := range domain.SentimentCoins {
				symbols = append(symbols, coin.Symbol)
			}
			return c.Send(fmt.Sprintf("Usage: /buzz BTC\nTracked: %s", strings.Join(symbols, ", ")))
		}
		symbol := strings.ToUpper(args[0])
		record, err := buzzService.BuzzFor(context.Background(), symbol)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching buzz for %s: %v", symbol, err))
		}
		return c.Send(record.Interpretation)
	})

	log.Println("Telegram bot started")
	go b.Start()
}
