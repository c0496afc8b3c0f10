package casebot

import "context"

// CompletionOptions configures a single completion call.
type CompletionOptions struct {
	// SystemInstruction is sent separately from the prompt when the provider supports it.
	SystemInstruction string

	// Temperature controls sampling. Lower values favor deterministic output.
	Temperature float32

	// MaxTokens bounds the output length. Zero leaves the provider default.
	MaxTokens int

	// JSON asks the provider for a JSON response when it supports it.
	JSON bool
}

// Completer generates text from a prompt using a language model.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}
