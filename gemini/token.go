package gemini

import (
	"context"
	"sync"

	"github.com/fwojciec/casebot"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ casebot.TokenCounter = (*TokenCounter)(nil)

// TokenCounter sizes answer prompts with the local Gemini tokenizer. The
// tokenizer model is downloaded on first use, so sessions without a prompt
// budget never fetch it.
type TokenCounter struct {
	model string

	once sync.Once
	tok  *tokenizer.LocalTokenizer
	err  error
}

// NewTokenCounter creates a TokenCounter for model. An empty model selects
// DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	return &TokenCounter{model: model}, nil
}

// Model returns the model whose tokenizer is used.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the tokens text takes as a user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	tok, err := tc.tokenizer()
	if err != nil {
		return 0, err
	}

	result, err := tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, casebot.Errorf(casebot.EINTERNAL, "counting tokens: %v", err)
	}
	return int(result.TotalTokens), nil
}

func (tc *TokenCounter) tokenizer() (*tokenizer.LocalTokenizer, error) {
	tc.once.Do(func() {
		tc.tok, tc.err = tokenizer.NewLocalTokenizer(tc.model)
		if tc.err != nil {
			tc.err = casebot.Errorf(casebot.ECONFIG, "no tokenizer for model %q: %v", tc.model, tc.err)
		}
	})
	return tc.tok, tc.err
}
