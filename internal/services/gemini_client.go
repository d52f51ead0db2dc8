package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sony/gobreaker"
	"google.golang.org/api/option"

	"github.com/averahq/avera/internal/models"
)

var ErrEmptyModelReply = errors.New("model returned no reply")

// ChatTurn is one prior exchange handed to the model as history.
type ChatTurn struct {
	Role    string
	Content string
}

// ModelClient produces the companion's reply for one send.
type ModelClient interface {
	Reply(ctx context.Context, systemPrompt string, history []ChatTurn, userMessage string) (string, error)
}

// GeminiClient talks to the hosted model through a circuit breaker so
// a misbehaving upstream sheds load instead of piling up requests.
type GeminiClient struct {
	client    *genai.Client
	modelName string
	breaker   *gobreaker.CircuitBreaker
}

func NewGeminiClient(ctx context.Context, apiKey string, modelName string, breaker *gobreaker.CircuitBreaker) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: client, modelName: modelName, breaker: breaker}, nil
}

func (gemini *GeminiClient) Close() error {
	return gemini.client.Close()
}

func (gemini *GeminiClient) Reply(ctx context.Context, systemPrompt string, history []ChatTurn, userMessage string) (string, error) {
	call := func() (interface{}, error) {
		model := gemini.client.GenerativeModel(gemini.modelName)
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}

		session := model.StartChat()
		session.History = buildModelHistory(history)

		response, err := session.SendMessage(ctx, genai.Text(userMessage))
		if err != nil {
			return nil, err
		}
		return extractReplyText(response)
	}

	result, err := gemini.execute(call)
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (gemini *GeminiClient) execute(call func() (interface{}, error)) (interface{}, error) {
	if gemini.breaker == nil {
		return call()
	}
	return gemini.breaker.Execute(call)
}

func buildModelHistory(history []ChatTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := "user"
		if turn.Role == models.MessageRoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}
	return contents
}

func extractReplyText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", ErrEmptyModelReply
	}

	candidate := response.Candidates[0]
	if candidate.Content == nil {
		return "", ErrEmptyModelReply
	}

	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}

	reply := strings.TrimSpace(builder.String())
	if reply == "" {
		return "", ErrEmptyModelReply
	}
	return reply, nil
}
