package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/casebot"
	main "github.com/fwojciec/casebot/cmd/casebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"links", "scrape", "enrich", "index", "ask", "chat", "setup", "export"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestTOML(t *testing.T) {
	t.Parallel()

	config := `
provider = "openai"
model = "gpt-4o"

[scrape]
delay = "3s"
extractor = "readability"

[ask]
top_k = 5
`
	path := filepath.Join(t.TempDir(), "casebot.toml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	parse := func(t *testing.T, args ...string) *main.CLI {
		t.Helper()
		cli := &main.CLI{}
		parser, err := kong.New(cli,
			kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}),
			kong.Exit(func(int) {}),
			kong.Configuration(main.TOML, path),
		)
		require.NoError(t, err)
		_, err = parser.Parse(args)
		require.NoError(t, err)
		return cli
	}

	t.Run("top-level keys set global flags", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "scrape")

		assert.Equal(t, "openai", cli.Provider)
		assert.Equal(t, "gpt-4o", cli.Model)
	})

	t.Run("command tables set command flags", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "scrape")

		assert.Equal(t, 3*time.Second, cli.Scrape.Delay)
		assert.Equal(t, "readability", cli.Scrape.Extractor)
		assert.Equal(t, "links.txt", cli.Scrape.Links)
	})

	t.Run("integers are accepted", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "ask", "question")

		assert.Equal(t, 5, cli.Ask.TopK)
	})

	t.Run("flags override the file", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "--provider", "gemini", "scrape", "--delay", "500ms")

		assert.Equal(t, "gemini", cli.Provider)
		assert.Equal(t, 500*time.Millisecond, cli.Scrape.Delay)
	})

	t.Run("tables do not leak into other commands", func(t *testing.T) {
		t.Parallel()

		cli := parse(t, "enrich")

		assert.Equal(t, time.Second, cli.Enrich.Delay)
	})
}

func TestTOML_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "casebot.toml")
	require.NoError(t, os.WriteFile(path, []byte("provider = "), 0o644))

	_, err := kong.New(&main.CLI{},
		kong.Exit(func(int) {}),
		kong.Configuration(main.TOML, path),
	)

	require.Error(t, err)
}

func TestMain_Run_Config(t *testing.T) {
	t.Parallel()

	t.Run("config flag loads file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("provider = \"local\"\n"), 0o644))

		m := newMain(t)
		err := m.Run(context.Background(), []string{"--config", path, "ask", "вопрос"}, &bytes.Buffer{}, &bytes.Buffer{})

		// local has no completion model, which proves the file was applied.
		assert.Equal(t, casebot.ECONFIG, casebot.ErrorCode(err))
		assert.Contains(t, casebot.ErrorMessage(err), `provider "local"`)
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		err := m.Run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "export"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})

	t.Run("malformed dotenv file is a config error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY='unterminated\n"), 0o644))

		m := newMain(t)
		m.EnvFile = path
		err := m.Run(context.Background(), []string{"export"}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, casebot.ECONFIG, casebot.ErrorCode(err))
	})
}

func TestMain_Run_Credentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing gemini key",
			args: []string{"--gemini-api-key=", "enrich"},
			want: "GEMINI_API_KEY is not set",
		},
		{
			name: "placeholder gemini key",
			args: []string{"--gemini-api-key=your_api_key_here", "enrich"},
			want: "GEMINI_API_KEY holds a placeholder value",
		},
		{
			name: "placeholder openai key",
			args: []string{"--provider", "openai", "--openai-api-key=your_openai_api_key_here", "index"},
			want: "OPENAI_API_KEY holds a placeholder value",
		},
		{
			name: "local provider cannot answer",
			args: []string{"--provider", "local", "chat"},
			want: "no completion model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMain(t)
			err := m.Run(context.Background(), tt.args, &bytes.Buffer{}, &bytes.Buffer{})

			assert.Equal(t, casebot.ECONFIG, casebot.ErrorCode(err))
			assert.Contains(t, casebot.ErrorMessage(err), tt.want)
		})
	}
}
