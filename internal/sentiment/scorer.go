package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ArticleText is the scoring input for one news article. Index identifies
// the article within its batch.
type ArticleText struct {
	Index int
	Title string
	Body  string
}

// ArticleScore is a refined polarity for one article.
type ArticleScore struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// BatchScorer refines lexicon polarities with a second opinion. The news
// service treats refinement as best-effort: an error keeps the lexicon scores.
type BatchScorer interface {
	ScoreBatch(ctx context.Context, articles []ArticleText) ([]ArticleScore, error)
}

type openAIChatClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// OpenAIScorer scores article batches with a chat model.
type OpenAIScorer struct {
	client openAIChatClient
	model  string
}

// NewOpenAIScorer returns nil when apiKey is empty, which disables refinement.
func NewOpenAIScorer(apiKey, model string) *OpenAIScorer {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIScorer{
		client: &openAIClient{client: client},
		model:  model,
	}
}

func (s *OpenAIScorer) ScoreBatch(ctx context.Context, articles []ArticleText) ([]ArticleScore, error) {
	if s == nil || s.client == nil || len(articles) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for _, a := range articles {
		sb.WriteString(fmt.Sprintf("index=%d\n", a.Index))
		sb.WriteString(fmt.Sprintf("title=%s\n", strings.TrimSpace(a.Title)))
		sb.WriteString(fmt.Sprintf("body=%s\n\n", strings.TrimSpace(a.Body)))
	}

	systemPrompt := "You score crypto news sentiment. Return ONLY a JSON array. Each object requires: index (int), score (-1..1 compound polarity). No markdown."
	userPrompt := "Articles:\n" + sb.String()

	completion, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty scorer completion")
	}

	raw := trimCodeFence(completion.Choices[0].Message.Content)

	var parsed []ArticleScore
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse scorer json: %w", err)
	}

	out := make([]ArticleScore, 0, len(parsed))
	for _, row := range parsed {
		if row.Index < 0 || row.Index >= len(articles) {
			continue
		}
		row.Score = clamp(row.Score, -1, 1)
		out = append(out, row)
	}
	return out, nil
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}
