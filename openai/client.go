// Package openai implements casebot.Completer and casebot.Embedder with the
// go-openai client.
package openai

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/casebot"
	goopenai "github.com/sashabaranov/go-openai"
)

const defaultTimeout = 60 * time.Second

// NewClient returns a client for the public OpenAI API.
func NewClient(apiKey string) *goopenai.Client {
	cfg := goopenai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	return goopenai.NewClientWithConfig(cfg)
}

// apiError converts a client error. A rejected key is a configuration error.
func apiError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return casebot.Errorf(casebot.ECONFIG, "openai rejected the API key: %s", apiErr.Message)
		}
		return fmt.Errorf("openai API error (%s): %s", apiErr.Type, apiErr.Message)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusUnauthorized {
		return casebot.Errorf(casebot.ECONFIG, "openai rejected the API key")
	}
	return fmt.Errorf("openai request: %w", err)
}
