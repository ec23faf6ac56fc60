package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type llmVerdict struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// LLMPipeline classifies messages with a chat-completion model instead
// of the tf-idf pipeline. It deliberately does not implement Scorer:
// chat models give no decision margin, so confidence stays absent.
type LLMPipeline struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewLLMPipeline(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *LLMPipeline {
	return &LLMPipeline{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (p *LLMPipeline) Name() string { return "llm_" + p.model }

func (p *LLMPipeline) Predict(ctx context.Context, messages []string) ([]bool, error) {
	labels := make([]bool, len(messages))
	for i, message := range messages {
		isSpam, err := p.classifyOne(ctx, message)
		if err != nil {
			// No keyword fallback here: a guessed default prediction
			// is worse than a surfaced failure.
			return nil, err
		}
		labels[i] = isSpam
	}
	return labels, nil
}

func (p *LLMPipeline) classifyOne(ctx context.Context, message string) (bool, error) {
	prompt := fmt.Sprintf(`Classify the following message as spam or legitimate.

Return the response as a JSON object with this structure:
{
    "label": "spam" or "ham",
    "reason": "brief_reason"
}

Message: %s`, message)

	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   p.maxTokens,
			Temperature: float32(p.temperature),
		},
	)
	if err != nil {
		p.logger.Error("Failed to get LLM response", zap.Error(err))
		return false, fmt.Errorf("llm classification: %w", err)
	}

	var verdict llmVerdict
	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(response), &verdict); err != nil {
		p.logger.Error("Failed to parse LLM response",
			zap.Error(err),
			zap.String("response", response))
		return false, fmt.Errorf("llm classification: unparseable response: %w", err)
	}

	switch strings.ToLower(verdict.Label) {
	case "spam":
		return true, nil
	case "ham":
		return false, nil
	default:
		return false, fmt.Errorf("llm classification: unexpected label %q", verdict.Label)
	}
}
