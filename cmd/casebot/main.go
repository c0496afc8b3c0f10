package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/casebot"
	casebothttp "github.com/fwojciec/casebot/http"
	"github.com/fwojciec/casebot/rod"
	"github.com/fwojciec/casebot/scrape"
	cbslog "github.com/fwojciec/casebot/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorText(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Dotenv file loaded before flags are parsed. Empty disables it.
	EnvFile string

	// TOML configuration file applied when present. Empty disables it.
	ConfigPath string

	// Input for the chat command.
	Stdin io.Reader

	// Services for end-to-end testing. When set they replace the ones
	// built from the selected provider.
	Fetcher      casebot.Fetcher
	Completer    casebot.Completer
	Embedder     casebot.Embedder
	TokenCounter casebot.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile:    ".env",
		ConfigPath: defaultConfigPath,
		Stdin:      os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := loadEnv(m.EnvFile); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	var configPaths []string
	if m.ConfigPath != "" {
		configPaths = append(configPaths, m.ConfigPath)
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("casebot"),
		kong.Description("Scrape project case studies, enrich them with a language model and answer questions about them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(TOML, configPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'casebot --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Styles = NewStyles(isTerminal(stdout))
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	// Wire command-specific dependencies.
	cmd := kongCtx.Selected().Name

	deps.Sitemaps = casebothttp.NewSitemapService(nil)
	if deps.Logger != nil {
		deps.Sitemaps = cbslog.NewLoggingSitemapService(deps.Sitemaps, deps.Logger)
	}

	if cmd == "scrape" || cmd == "setup" {
		opts := cli.Scrape.ScrapeOptions
		if cmd == "setup" {
			opts = cli.Setup.ScrapeOptions
		}
		fetcher, err := m.newFetcher(opts.Render)
		if err != nil {
			return err
		}
		defer fetcher.Close()
		deps.Fetcher = fetcher
		if deps.Logger != nil {
			deps.Fetcher = cbslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
		if opts.Retries > 0 {
			retry := &scrape.RetryFetcher{Fetcher: deps.Fetcher, Delays: scrape.BackoffDelays(opts.Retries)}
			if logger := deps.Logger; logger != nil {
				retry.OnRetry = func(url string, attempt int, err error) {
					logger.Info("retry", "url", url, "attempt", attempt, "err", err)
				}
			}
			deps.Fetcher = retry
		}
		if deps.Extractor, err = newExtractor(opts.Extractor); err != nil {
			return err
		}
	}

	needCompleter := cmd == "enrich" || cmd == "ask" || cmd == "chat" || cmd == "setup"
	needEmbedder := cmd == "index" || cmd == "ask" || cmd == "chat" || cmd == "setup"
	if err := m.wireModels(ctx, cli.Globals, deps, needCompleter, needEmbedder); err != nil {
		return err
	}

	budget := (cmd == "ask" && cli.Ask.MaxPromptTokens > 0) || (cmd == "chat" && cli.Chat.MaxPromptTokens > 0)
	if budget {
		if deps.TokenCounter, err = m.newTokenCounter(); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the injected fetcher or builds one. Rendering starts a
// headless browser.
func (m *Main) newFetcher(render bool) (casebot.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if !render {
		return casebothttp.NewFetcher(), nil
	}
	f, err := rod.NewFetcher()
	if err != nil {
		return nil, casebot.Errorf(casebot.ECONFIG, "failed to start browser (Chrome or Chromium must be installed): %s", errorText(err))
	}
	return f, nil
}

func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return casebot.Errorf(casebot.ECONFIG, "failed to load %s: %v", path, err)
	}
	return nil
}

// errorText returns the message of an application error, or the error
// text for anything else.
func errorText(err error) string {
	var e *casebot.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
