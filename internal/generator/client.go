package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/391rajan/Quiz/internal/models"
)

// LLMClient is the interface both generator implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and adds quiz-specific generation methods.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "mock"

	if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		log.Println("Generator using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-sonnet-4-20250514"
		}
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	}

	return &Generator{llm: llm, model: model}
}

// NewGeneratorWithClient builds a Generator around an explicit client.
// Handlers use NewGenerator; tests inject their own LLMClient here.
func NewGeneratorWithClient(llm LLMClient, model string) *Generator {
	return &Generator{llm: llm, model: model}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateQuiz produces a batch of multiple-choice questions for a topic.
func (g *Generator) GenerateQuiz(ctx context.Context, topic string, difficulty models.Difficulty, count int) ([]GeneratedQuestion, *LLMResponse, error) {
	systemPrompt := QuizSystemPrompt()
	userPrompt := BuildQuizUserPrompt(topic, difficulty, count)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, nil, fmt.Errorf("generate quiz: %w", err)
	}

	questions, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, resp, fmt.Errorf("parse quiz response: %w", err)
	}

	return questions, resp, nil
}

// ── APIClient (Anthropic SDK) ───────────────────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient (Local Development) ──────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	mockJSON := buildMockJSON()
	return &LLMResponse{
		Content:      mockJSON,
		PromptTokens: 500,
		OutputTokens: 1200,
	}, nil
}

func buildMockJSON() string {
	correctAnswers := []string{"A", "B", "C", "D"}
	subTopics := []string{"fundamentals", "terminology", "applications", "history", "notable figures"}

	questions := "["
	for i := 0; i < 5; i++ {
		correct := correctAnswers[i%4]
		subTopic := subTopics[i%len(subTopics)]

		if i > 0 {
			questions += ","
		}

		options := "["
		for j, letter := range correctAnswers {
			if j > 0 {
				options += ","
			}
			options += fmt.Sprintf(`"[Mock] Option %s covering %s"`, letter, subTopic)
		}
		options += "]"

		questions += fmt.Sprintf(`{"questionText":"[Mock] Question %d about %s: which statement is accurate?","options":%s,"correctAnswer":"%s","explanation":"[Mock] Option %s is correct because it accurately describes %s. The remaining options misstate key details or describe unrelated concepts.","subTopic":"%s"}`,
			i+1, subTopic, options, correct, correct, subTopic, subTopic)
	}
	questions += "]"

	return questions
}
