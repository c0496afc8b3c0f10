package openai

import (
	"context"

	"github.com/fwojciec/casebot"
	goopenai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used for completions.
const DefaultModel = "gpt-4o-mini"

var _ casebot.Completer = (*Completer)(nil)

// Completer implements casebot.Completer with chat completions.
type Completer struct {
	client *goopenai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *goopenai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Model returns the model name used for completions.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends prompt as a user message and returns the first choice as is.
func (c *Completer) Complete(ctx context.Context, prompt string, opts casebot.CompletionOptions) (string, error) {
	if prompt == "" {
		return "", casebot.Errorf(casebot.EINVALID, "prompt required")
	}

	req := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.SystemInstruction != "" {
		req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: opts.SystemInstruction,
		})
	}
	req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt,
	})
	if opts.JSON {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", apiError(err)
	}
	if len(resp.Choices) == 0 {
		return "", casebot.Errorf(casebot.EINTERNAL, "openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
