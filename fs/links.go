package fs

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/casebot"
)

// ReadLinks reads a link list with one URL per line. Blank lines are
// skipped and surrounding whitespace is trimmed.
// Returns ENOTFOUND if the file does not exist.
func ReadLinks(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, casebot.Errorf(casebot.ENOTFOUND, "file %s not found", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseLinks(f)
}

// ParseLinks parses a link list from r.
func ParseLinks(r io.Reader) ([]string, error) {
	var links []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			links = append(links, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

// WriteLinks writes urls to path, one per line.
func WriteLinks(path string, urls []string) error {
	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteByte('\n')
	}
	return writeFileAtomic(path, []byte(b.String()))
}
