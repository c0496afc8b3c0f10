// Package fs provides file-based storage for the page corpus, the link list
// and Markdown exports.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/casebot"
)

// Ensure CorpusStore implements casebot.CorpusStore at compile time.
var _ casebot.CorpusStore = (*CorpusStore)(nil)

// CorpusStore keeps pages in a single JSON file. The file is a UTF-8 array
// indented with two spaces; non-ASCII text is written as is.
type CorpusStore struct {
	path string
}

// NewCorpusStore returns a store backed by the file at path.
func NewCorpusStore(path string) *CorpusStore {
	return &CorpusStore{path: path}
}

// Path returns the backing file path.
func (s *CorpusStore) Path() string {
	return s.path
}

// Exists reports whether the backing file exists.
func (s *CorpusStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads all pages. Returns ENOTFOUND if the file does not exist and
// EINVALID if it is not a valid page array.
func (s *CorpusStore) Load(ctx context.Context) ([]*casebot.Page, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, casebot.Errorf(casebot.ENOTFOUND, "file %s not found", s.path)
	}
	if err != nil {
		return nil, err
	}

	var pages []*casebot.Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, casebot.Errorf(casebot.EINVALID, "file %s is not a page list: %v", s.path, err)
	}
	for _, p := range pages {
		if p == nil {
			return nil, casebot.Errorf(casebot.EINVALID, "file %s contains a null page", s.path)
		}
	}
	return pages, nil
}

// Save replaces the file contents with pages. The data is written to a
// temporary file in the same directory and renamed into place.
func (s *CorpusStore) Save(ctx context.Context, pages []*casebot.Page) error {
	if pages == nil {
		pages = []*casebot.Page{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pages); err != nil {
		return fmt.Errorf("encode pages: %w", err)
	}

	return writeFileAtomic(s.path, buf.Bytes())
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
