package enrich

import (
	"strings"

	"github.com/fwojciec/casebot"
)

// Fallback values used when the model is unavailable.
const (
	FallbackTargetAudience = "бизнес"
	FallbackCompany        = "неизвестно"
	FallbackTechnology     = "AI"
)

type rule struct {
	value string
	words []string
}

var industryRules = []rule{
	{"ритейл", []string{"магнит", "магазин", "ритейл", "торговля"}},
	{"финтех", []string{"банк", "финанс", "платеж"}},
}

var solutionRules = []rule{
	{"чат-бот", []string{"бот", "чат"}},
	{"поиск и рекомендации", []string{"поиск", "фото", "изображ"}},
}

// Fallback derives an Enrichment from page text with fixed keyword rules.
// It is deterministic and populates every field.
func Fallback(page *casebot.Page) *casebot.Enrichment {
	title := strings.ToLower(page.Title)
	text := title + " " + strings.ToLower(page.Content)

	keywords := strings.Fields(title)
	if len(keywords) > casebot.MaxKeywords {
		keywords = keywords[:casebot.MaxKeywords]
	}

	return &casebot.Enrichment{
		Industry:       classify(text, industryRules, "общее"),
		SolutionType:   classify(text, solutionRules, "AI решение"),
		Technologies:   []string{FallbackTechnology},
		TargetAudience: FallbackTargetAudience,
		Company:        FallbackCompany,
		Keywords:       keywords,
		Summary:        casebot.Truncate(page.Content, 100) + "...",
	}
}

// classify returns the value of the first rule with a word found in text.
func classify(text string, rules []rule, otherwise string) string {
	for _, r := range rules {
		for _, w := range r.words {
			if strings.Contains(text, w) {
				return r.value
			}
		}
	}
	return otherwise
}
