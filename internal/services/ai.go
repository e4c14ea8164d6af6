package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/taskaura-api/internal/models"
)

// AIService drafts tasks with the OpenAI chat completion API.
type AIService struct {
	client *openai.Client
	model  string
}

// GeneratedTask is a task draft. It is never persisted by the service.
type GeneratedTask struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// generatedTaskPayload is the JSON shape requested from the model.
type generatedTaskPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey))
}

// NewAIServiceWithConfig allows pointing the client at another base URL.
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.GPT4o,
	}
}

// GenerateTasksFromText extracts actionable tasks from text
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	today := time.Now().Format(models.DateLayout)
	prompt := fmt.Sprintf(`You are a task extraction assistant for a project tracker. Extract concrete, actionable tasks from the text below.

Today's date: %s

Text:
%s

Return a JSON array of tasks in this shape:
[
  {
    "title": "short task title",
    "description": "task details",
    "due_date": "due date as YYYY-MM-DD, or null when the text gives no deadline"
  }
]

Rules:
- Return [] when the text contains no tasks
- Convert relative deadlines ("tomorrow", "next week") into concrete dates
- Return JSON only, without any explanation`, today, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseGeneratedTasks(resp.Choices[0].Message.Content)
}

// parseGeneratedTasks decodes the model output. Unparseable due dates are dropped.
func parseGeneratedTasks(content string) ([]GeneratedTask, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var payload []generatedTaskPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	tasks := make([]GeneratedTask, len(payload))
	for i, p := range payload {
		tasks[i] = GeneratedTask{
			Title:       p.Title,
			Description: p.Description,
		}
		if p.DueDate == nil {
			continue
		}
		if due, err := time.Parse(models.DateLayout, *p.DueDate); err == nil {
			tasks[i].DueDate = &due
		}
	}

	return tasks, nil
}
