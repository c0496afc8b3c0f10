package main

import (
	"context"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/bagofwords"
	"github.com/fwojciec/casebot/gemini"
	"github.com/fwojciec/casebot/goquery"
	"github.com/fwojciec/casebot/openai"
	"github.com/fwojciec/casebot/readability"
	cbslog "github.com/fwojciec/casebot/slog"
	"github.com/fwojciec/casebot/trafilatura"
	"google.golang.org/genai"
)

// Providers accepted by --provider.
const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
	providerLocal  = "local"
)

// wireModels sets the completer and embedder a command needs. Credentials
// are checked here, before any network call is made.
func (m *Main) wireModels(ctx context.Context, g Globals, deps *Dependencies, needCompleter, needEmbedder bool) error {
	if m.Completer != nil {
		deps.Completer = m.Completer
		needCompleter = false
	}
	if m.Embedder != nil {
		deps.Embedder = m.Embedder
		deps.EmbeddingModel = modelName(m.Embedder)
		needEmbedder = false
	}
	if !needCompleter && !needEmbedder {
		return nil
	}

	var (
		completer casebot.Completer
		embedder  casebot.Embedder
		model     string
		embModel  string
	)

	switch g.Provider {
	case providerLocal:
		if needCompleter {
			return casebot.Errorf(casebot.ECONFIG, "provider %q has no completion model; use gemini or openai", providerLocal)
		}
		e := bagofwords.NewEmbedder(bagofwords.DefaultDimensions)
		embedder, embModel = e, e.Model()

	case providerOpenAI:
		if err := checkAPIKey("OPENAI_API_KEY", g.OpenAIAPIKey); err != nil {
			return err
		}
		client := openai.NewClient(g.OpenAIAPIKey)
		c := openai.NewCompleter(client, g.Model)
		e := openai.NewEmbedder(client, g.EmbeddingModel)
		completer, model = c, c.Model()
		embedder, embModel = e, e.Model()

	default:
		if err := checkAPIKey("GEMINI_API_KEY", g.GeminiAPIKey); err != nil {
			return err
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return casebot.Errorf(casebot.ECONFIG, "failed to connect to Gemini API: %v", err)
		}
		c := gemini.NewCompleter(client, g.Model)
		e := gemini.NewEmbedder(client, g.EmbeddingModel)
		completer, model = c, c.Model()
		embedder, embModel = e, e.Model()
	}

	if deps.Logger != nil {
		if completer != nil {
			completer = cbslog.NewLoggingCompleter(completer, model, deps.Logger)
		}
		embedder = cbslog.NewLoggingEmbedder(embedder, embModel, deps.Logger)
	}
	if needCompleter {
		deps.Completer = completer
	}
	if needEmbedder {
		deps.Embedder = embedder
		deps.EmbeddingModel = embModel
	}
	return nil
}

// modelName returns the model reported by v, or "" if v does not report one.
func modelName(v any) string {
	if m, ok := v.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}

// newExtractor returns the extractor selected by --extractor.
func newExtractor(name string) (casebot.Extractor, error) {
	switch name {
	case "", "goquery":
		return goquery.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	}
	return nil, casebot.Errorf(casebot.ECONFIG, "unknown extractor %q", name)
}

// newTokenCounter returns the injected counter or the Gemini tokenizer,
// which approximates every provider and needs no API key.
func (m *Main) newTokenCounter() (casebot.TokenCounter, error) {
	if m.TokenCounter != nil {
		return m.TokenCounter, nil
	}
	tc, err := gemini.NewTokenCounter(gemini.DefaultModel)
	if err != nil {
		return nil, casebot.Errorf(casebot.ECONFIG, "failed to load tokenizer: %v", err)
	}
	return tc, nil
}
