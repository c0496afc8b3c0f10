package enrich

import (
	"fmt"

	"github.com/fwojciec/casebot"
)

// PromptVersion identifies the enrichment prompt below. Bump it whenever the
// wording or the schema changes.
const PromptVersion = "enrich-v1"

// promptContentLength is the number of content characters shown to the model.
const promptContentLength = 1000

const promptTemplate = `
Проанализируй проект и добавь структурированную информацию:

НАЗВАНИЕ: %s
КОНТЕНТ: %s

Ответь СТРОГО в JSON формате:
{
  "industry": "основная индустрия (ритейл, финтех, и т.д.)",
  "solution_type": "тип решения (чат-бот, анализ данных, и т.д.)",
  "technologies": ["технология1", "технология2"],
  "target_audience": "целевая аудитория",
  "company": "название компании-клиента",
  "keywords": ["ключевое слово1", "ключевое слово2", "ключевое слово3"],
  "summary": "краткое описание проекта в 1-2 предложения"
}

Отвечай только JSON, без дополнительного текста:`

// BuildPrompt returns the enrichment prompt for page.
func BuildPrompt(page *casebot.Page) string {
	return fmt.Sprintf(promptTemplate, page.Title, casebot.Truncate(page.Content, promptContentLength))
}
