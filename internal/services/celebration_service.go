package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// CelebrationClient generates one short celebratory sentence. Failures
// are expected (quota, network); callers fall back to a canned message.
type CelebrationClient interface {
	Generate(ctx context.Context, childName string, requestType string, points int) (string, error)
}

var fallbackMessages = []string{
	"Amazing job! You're a superstar!",
	"Way to go! You did it!",
	"Incredible! Keep up the great work!",
	"Awesome! You're doing amazing!",
}

type CelebrationServiceInterface interface {
	GenerateMessage(ctx context.Context, childName string, requestType string, points int) string
}

type CelebrationService struct {
	client CelebrationClient
}

func NewCelebrationService(client CelebrationClient) CelebrationServiceInterface {
	return &CelebrationService{client: client}
}

// GenerateMessage never fails: any provider error yields a fallback.
func (s *CelebrationService) GenerateMessage(ctx context.Context, childName string, requestType string, points int) string {
	if s.client != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		message, err := s.client.Generate(ctx, childName, requestType, points)
		if err == nil && strings.TrimSpace(message) != "" {
			return strings.TrimSpace(message)
		}
		if err != nil {
			log.Printf("Celebration provider error, using fallback: %v", err)
		}
	}

	return fallbackMessages[rand.Intn(len(fallbackMessages))]
}

func celebrationPrompt(childName string, requestType string, points int) string {
	return fmt.Sprintf(`Generate a short, enthusiastic celebration message for a child named %s who just successfully used the bathroom (%s) and earned %d points.

Keep it:
- Very short (1-2 sentences max)
- Age-appropriate and encouraging
- Fun and exciting
- Use their name

Just return the message, nothing else.`, childName, requestType, points)
}

// ------------------- OpenAI provider -------------------

type OpenAICelebrationClient struct {
	client *openai.Client
	model  string
}

func NewOpenAICelebrationClient(apiKey, model string) CelebrationClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICelebrationClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAICelebrationClient) Generate(ctx context.Context, childName string, requestType string, points int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 100,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: celebrationPrompt(childName, requestType, points),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// ------------------- Gemini provider -------------------

type GeminiCelebrationClient struct {
	client *genai.Client
	model  string
}

func NewGeminiCelebrationClient(apiKey, model string) (CelebrationClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCelebrationClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiCelebrationClient) Generate(ctx context.Context, childName string, requestType string, points int) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.8)
	m.SetMaxOutputTokens(100)

	resp, err := m.GenerateContent(ctx, genai.Text(celebrationPrompt(childName, requestType, points)))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
