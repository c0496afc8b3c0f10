package enrich

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/casebot"
)

type response struct {
	Industry       string   `json:"industry"`
	SolutionType   string   `json:"solution_type"`
	Technologies   []string `json:"technologies"`
	TargetAudience string   `json:"target_audience"`
	Company        string   `json:"company"`
	Keywords       []string `json:"keywords"`
	Summary        string   `json:"summary"`
}

// stripFences removes a surrounding ```json ... ``` block if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```json"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = rest
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Parse decodes a model reply into an Enrichment. The reply may be wrapped
// in a Markdown code fence. Returns EENRICH if it is not a JSON object.
func Parse(reply string) (*casebot.Enrichment, error) {
	var r *response
	if err := json.Unmarshal([]byte(stripFences(reply)), &r); err != nil {
		return nil, casebot.Errorf(casebot.EENRICH, "invalid model reply: %v", err)
	}
	if r == nil {
		return nil, casebot.Errorf(casebot.EENRICH, "empty model reply")
	}
	return &casebot.Enrichment{
		Industry:       strings.TrimSpace(r.Industry),
		SolutionType:   strings.TrimSpace(r.SolutionType),
		Technologies:   dedupe(r.Technologies),
		TargetAudience: strings.TrimSpace(r.TargetAudience),
		Company:        strings.TrimSpace(r.Company),
		Keywords:       capKeywords(r.Keywords),
		Summary:        strings.TrimSpace(r.Summary),
	}, nil
}

// dedupe keeps the first occurrence of each non-empty value.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func capKeywords(values []string) []string {
	out := make([]string, 0, casebot.MaxKeywords)
	for _, v := range values {
		if len(out) == casebot.MaxKeywords {
			break
		}
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
