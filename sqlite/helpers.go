package sqlite

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/casebot"
)

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

// encodeMetadata serializes entry metadata for the meta column.
func encodeMetadata(m casebot.Metadata) (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeMetadata parses a meta column written by encodeMetadata.
func decodeMetadata(s string) (casebot.Metadata, error) {
	var m casebot.Metadata
	if s == "" {
		return m, nil
	}
	err := json.Unmarshal([]byte(s), &m)
	return m, err
}
