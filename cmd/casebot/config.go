package main

import (
	"io"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/casebot"
	"github.com/pelletier/go-toml/v2"
)

// TOML is a kong.ConfigurationLoader. Top-level keys set global flags and
// a table named after a command sets that command's flags. Flag names use
// underscores in place of dashes:
//
//	provider = "openai"
//
//	[scrape]
//	delay = "3s"
//	extractor = "readability"
//
//	[ask]
//	top_k = 5
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, casebot.Errorf(casebot.ECONFIG, "invalid configuration file: %v", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		key := strings.ReplaceAll(flag.Name, "-", "_")

		scope := values
		if parent.Command != nil {
			table, ok := values[parent.Command.Name].(map[string]any)
			if !ok {
				return nil, nil
			}
			scope = table
		}

		v, ok := scope[key]
		if !ok {
			return nil, nil
		}
		if _, isTable := v.(map[string]any); isTable {
			return nil, nil
		}
		return v, nil
	}
	return f, nil
}

// placeholderKeys are the sample values shipped in example .env files.
var placeholderKeys = []string{
	"your_api_key_here",
	"your_openai_api_key_here",
	"your_gemini_api_key_here",
}

// checkAPIKey returns ECONFIG if key is missing or a placeholder.
func checkAPIKey(name, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return casebot.Errorf(casebot.ECONFIG, "%s is not set. Add it to the environment or to a .env file", name)
	}
	if slices.Contains(placeholderKeys, key) {
		return casebot.Errorf(casebot.ECONFIG, "%s holds a placeholder value. Replace it with a real API key", name)
	}
	return nil
}
