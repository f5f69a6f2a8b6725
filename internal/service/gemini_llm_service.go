package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/lawdesk/config"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

var ErrDrafterUnavailable = errors.New("explanation drafter not configured")

// ExplanationDrafter writes a short explanation for a multiple-choice question.
type ExplanationDrafter interface {
	Draft(ctx context.Context, test *model.Test, question *model.Question) (string, error)
}

type geminiLLMService struct {
	client  *genai.GenerativeModel
	limiter *rate.Limiter
}

func NewGeminiLLMService(lc fx.Lifecycle, cfg *config.Config) (ExplanationDrafter, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Explanation drafting will be unavailable.")
		return &geminiLLMService{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})

	rpm := cfg.Gemini.RequestsPerMinute
	if rpm <= 0 {
		rpm = 1
	}
	gm := client.GenerativeModel(cfg.Gemini.Model)
	gm.SetTemperature(0.2)
	return &geminiLLMService{
		client:  gm,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}, nil
}

func (s *geminiLLMService) Draft(ctx context.Context, test *model.Test, question *model.Question) (string, error) {
	if s.client == nil {
		return "", ErrDrafterUnavailable
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for gemini rate limit: %w", err)
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(explanationPrompt(test, question)))
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Gemini API error while drafting explanation")
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no content")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text, nil
}

func explanationPrompt(test *model.Test, q *model.Question) string {
	var b strings.Builder
	b.WriteString("You are a law lecturer preparing answer explanations for a multiple-choice practice test.\n")
	fmt.Fprintf(&b, "Test: %s (%s)\n\n", test.Title, test.Category)
	fmt.Fprintf(&b, "Question %d: %s\n", q.QuestionNumber, q.QuestionText)
	fmt.Fprintf(&b, "A. %s\nB. %s\nC. %s\nD. %s\n\n", q.OptionA, q.OptionB, q.OptionC, q.OptionD)
	fmt.Fprintf(&b, "The correct answer is %s.\n", q.CorrectAnswer)
	b.WriteString("In at most 120 words, explain why the correct answer is right and briefly why each other option is wrong. ")
	b.WriteString("Cite the governing rule or doctrine where one applies. Reply with the explanation text only.")
	return b.String()
}
