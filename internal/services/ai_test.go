package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedTasks(t *testing.T) {
	content := "```json\n[{\"title\":\"Book venue\",\"description\":\"by phone\",\"due_date\":\"2030-03-04\"},{\"title\":\"Plan menu\",\"description\":\"\",\"due_date\":\"soon\"},{\"title\":\"Relax\",\"due_date\":null}]\n```"

	tasks, err := parseGeneratedTasks(content)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, "Book venue", tasks[0].Title)
	assert.Equal(t, "by phone", tasks[0].Description)
	require.NotNil(t, tasks[0].DueDate)
	assert.Equal(t, time.Date(2030, 3, 4, 0, 0, 0, 0, time.UTC), *tasks[0].DueDate)
	assert.Nil(t, tasks[1].DueDate)
	assert.Nil(t, tasks[2].DueDate)
}

func TestParseGeneratedTasks_Invalid(t *testing.T) {
	_, err := parseGeneratedTasks("Sure! Here are your tasks.")
	assert.Error(t, err)
}

func TestAIService_GenerateTasksFromText(t *testing.T) {
	var received openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  openai.GPT4o,
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    openai.ChatMessageRoleAssistant,
						Content: `[{"title":"Draft agenda","description":"for Monday","due_date":null}]`,
					},
					FinishReason: openai.FinishReasonStop,
				},
			},
		})
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	service := NewAIServiceWithConfig(cfg)

	tasks, err := service.GenerateTasksFromText(context.Background(), "prepare the Monday meeting")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Draft agenda", tasks[0].Title)
	assert.Nil(t, tasks[0].DueDate)

	require.Len(t, received.Messages, 1)
	assert.Contains(t, received.Messages[0].Content, "prepare the Monday meeting")
	assert.Equal(t, openai.GPT4o, received.Model)
}

func TestAIService_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("wrong")
	cfg.BaseURL = server.URL + "/v1"

	_, err := NewAIServiceWithConfig(cfg).GenerateTasksFromText(context.Background(), "text")
	assert.Error(t, err)
}
