package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/casebot"
)

// defaultConfigPath is applied when present in the working directory.
const defaultConfigPath = "casebot.toml"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Styles *Styles

	// Logger is set with --verbose.
	Logger *slog.Logger

	Sitemaps     casebot.SitemapService
	Fetcher      casebot.Fetcher
	Extractor    casebot.Extractor
	Completer    casebot.Completer
	Embedder     casebot.Embedder
	TokenCounter casebot.TokenCounter

	// EmbeddingModel names the embedder's model. It is recorded with the index.
	EmbeddingModel string
}

// Globals are flags accepted by every command.
type Globals struct {
	Config  kong.ConfigFlag `help:"TOML configuration file" placeholder:"PATH"`
	Verbose bool            `short:"v" help:"Log service calls to stderr"`

	Provider       string `enum:"gemini,openai,local" default:"gemini" env:"CASEBOT_PROVIDER" help:"Model provider (gemini, openai or local)"`
	Model          string `env:"CASEBOT_MODEL" help:"Completion model (provider default if empty)"`
	EmbeddingModel string `env:"CASEBOT_EMBEDDING_MODEL" help:"Embedding model (provider default if empty)"`
	GeminiAPIKey   string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey   string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Links  LinksCmd  `cmd:"" help:"Build a links file from a site's sitemap"`
	Scrape ScrapeCmd `cmd:"" help:"Scrape the pages listed in a links file"`
	Enrich EnrichCmd `cmd:"" help:"Tag scraped pages with business metadata"`
	Index  IndexCmd  `cmd:"" help:"Build the search index from enriched pages"`
	Ask    AskCmd    `cmd:"" help:"Answer a single question about the projects"`
	Chat   ChatCmd   `cmd:"" help:"Answer questions interactively"`
	Setup  SetupCmd  `cmd:"" help:"Scrape, enrich and index in one run"`
	Export ExportCmd `cmd:"" help:"Write enriched pages as Markdown files"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	URL     string   `arg:"" help:"Site URL"`
	Out     string   `short:"o" default:"links.txt" help:"Output links file"`
	Filter  []string `short:"F" help:"Keep URLs matching regex (repeatable)"`
	Exclude []string `short:"X" help:"Drop URLs matching regex (repeatable)"`
}

// ScrapeOptions are the fetch settings shared by scrape and setup.
type ScrapeOptions struct {
	Extractor string `enum:"goquery,readability,trafilatura" default:"goquery" help:"Text extractor (goquery keeps all page text)"`
	Render    bool   `help:"Render pages in a headless browser"`
	Retries   int    `default:"0" help:"Retry failed fetches with backoff (1s, 2s, 4s...)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	ScrapeOptions `embed:""`

	Links string        `default:"links.txt" help:"Links file, one URL per line"`
	Out   string        `short:"o" default:"projects_raw.json" help:"Output corpus file"`
	Delay time.Duration `default:"2s" help:"Delay between requests"`
	Force bool          `short:"f" help:"Overwrite an existing output file"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	In    string        `short:"i" default:"projects_raw.json" help:"Scraped corpus file"`
	Out   string        `short:"o" default:"projects_enriched.json" help:"Enriched corpus file"`
	Delay time.Duration `default:"1s" help:"Delay between model calls"`
	Force bool          `short:"f" help:"Re-enrich pages that already carry metadata"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	In  string `short:"i" default:"projects_enriched.json" help:"Enriched corpus file"`
	Dir string `default:"index" help:"Index directory"`
}

// SessionOptions locate the index used to answer questions.
type SessionOptions struct {
	Dir             string `default:"index" help:"Index directory"`
	Corpus          string `default:"projects_enriched.json" help:"Enriched corpus used when the index is empty or stale"`
	TopK            int    `name:"top-k" short:"k" default:"3" help:"Documents retrieved per question"`
	MaxPromptTokens int    `name:"max-prompt-tokens" default:"0" help:"Drop the lowest ranked documents until the answer prompt fits this many tokens (0 disables)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	SessionOptions `embed:""`

	Question string `arg:"" help:"Question about the projects"`
	Sources  bool   `help:"Print the source pages of the answer"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	SessionOptions `embed:""`

	Sources bool `help:"Print the source pages of each answer"`
}

// SetupCmd is the "setup" subcommand.
type SetupCmd struct {
	ScrapeOptions `embed:""`

	Links       string        `default:"links.txt" help:"Links file, one URL per line"`
	Raw         string        `default:"projects_raw.json" help:"Scraped corpus file"`
	Enriched    string        `default:"projects_enriched.json" help:"Enriched corpus file"`
	Dir         string        `default:"index" help:"Index directory"`
	ScrapeDelay time.Duration `default:"2s" help:"Delay between requests"`
	EnrichDelay time.Duration `default:"1s" help:"Delay between model calls"`
	Force       bool          `short:"f" help:"Scrape and enrich again even if the corpus files exist"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	In  string `short:"i" default:"projects_enriched.json" help:"Enriched corpus file"`
	Dir string `default:"export" help:"Output directory"`
}
