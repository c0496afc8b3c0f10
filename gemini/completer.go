package gemini

import (
	"context"

	"github.com/fwojciec/casebot"
	"google.golang.org/genai"
)

// DefaultModel is the model used for completions.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements casebot.Completer at compile time.
var _ casebot.Completer = (*Completer)(nil)

// Completer implements casebot.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Model returns the model name used for completions.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends prompt as a single user turn and returns the reply text.
func (c *Completer) Complete(ctx context.Context, prompt string, opts casebot.CompletionOptions) (string, error) {
	if prompt == "" {
		return "", casebot.Errorf(casebot.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(opts),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", casebot.Errorf(casebot.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for the given options.
func BuildConfig(opts casebot.CompletionOptions) *genai.GenerateContentConfig {
	temp := opts.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if opts.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: opts.SystemInstruction}},
		}
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.JSON {
		config.ResponseMIMEType = "application/json"
	}
	return config
}
