package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/casebot"
	"gopkg.in/yaml.v3"
)

// frontMatter is the YAML header of an exported page.
type frontMatter struct {
	Source       string   `yaml:"source"`
	Title        string   `yaml:"title"`
	Industry     string   `yaml:"industry"`
	SolutionType string   `yaml:"solution_type"`
	Company      string   `yaml:"company"`
	Keywords     []string `yaml:"keywords,flow"`
	Enriched     string   `yaml:"enriched"`
}

// Exporter writes enriched pages as Markdown files with YAML front matter.
// Files are written to dir.tmp and moved to dir once all pages are written,
// replacing any previous export.
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter writing to dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export writes every enriched page and returns the number of files written.
func (e *Exporter) Export(ctx context.Context, pages []*casebot.Page) (int, error) {
	tmp := e.dir + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return 0, err
	}

	var n int
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			os.RemoveAll(tmp)
			return 0, err
		}
		if !page.OK() || page.Enrichment == nil {
			continue
		}
		if err := writePage(tmp, page); err != nil {
			os.RemoveAll(tmp)
			return 0, err
		}
		n++
	}

	if n == 0 {
		return 0, nil
	}
	if err := os.RemoveAll(e.dir); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, e.dir); err != nil {
		return 0, err
	}
	return n, nil
}

func writePage(base string, page *casebot.Page) error {
	rel, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	content, err := FormatPage(page)
	if err != nil {
		return err
	}

	full := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(content), 0644)
}

// FormatPage renders an enriched page as Markdown with YAML front matter.
func FormatPage(page *casebot.Page) (string, error) {
	fm := frontMatter{Source: page.URL, Title: page.Title}
	if en := page.Enrichment; en != nil {
		fm.Industry = en.Industry
		fm.SolutionType = en.SolutionType
		fm.Company = en.Company
		fm.Keywords = en.Keywords
		fm.Enriched = en.CreatedAt.Format("2006-01-02")
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	if page.Title != "" {
		b.WriteString("# ")
		b.WriteString(page.Title)
		b.WriteString("\n\n")
	}
	if page.Enrichment != nil && page.Enrichment.Summary != "" {
		b.WriteString("> ")
		b.WriteString(page.Enrichment.Summary)
		b.WriteString("\n\n")
	}
	b.WriteString(page.Content)
	b.WriteString("\n")
	return b.String(), nil
}

// URLToPath converts a page URL to a relative file path under the host.
// Example: https://example.com/cases/hr-bot → example.com/cases/hr-bot.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", casebot.Errorf(casebot.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", casebot.Errorf(casebot.EINVALID, "URL %q has no host", rawURL)
	}

	p := u.Path
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", casebot.Errorf(casebot.EINVALID, "path traversal in URL %q", rawURL)
		}
	}

	switch {
	case p == "" || p == "/":
		p = "index.md"
	case strings.HasSuffix(p, "/"):
		p = strings.TrimPrefix(p, "/") + "index.md"
	default:
		p = strings.TrimPrefix(p, "/") + ".md"
	}
	return path.Join(u.Host, p), nil
}
