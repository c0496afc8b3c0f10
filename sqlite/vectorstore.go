package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/casebot"
	"github.com/google/uuid"
	"github.com/viant/sqlite-vec/vector"
)

// Compile-time interface verification.
var _ casebot.VectorStore = (*VectorStore)(nil)

// DatasetID partitions the shadow table. All casebot entries share one dataset.
const DatasetID = "casebot"

// Keys of the meta table.
const (
	metaModel      = "embedding_model"
	metaDimensions = "dimensions"
	metaGeneration = "generation"
	metaUpdatedAt  = "updated_at"
)

// VectorStore implements casebot.VectorStore on SQLite. Similarity is
// computed by the sqlite-vec MATCH operator.
type VectorStore struct {
	db *DB
}

// NewVectorStore creates a new VectorStore.
func NewVectorStore(db *DB) *VectorStore {
	return &VectorStore{db: db}
}

// Replace swaps the stored entries in one transaction. Each Replace bumps
// the generation stamped on rows as their scn.
func (s *VectorStore) Replace(ctx context.Context, entries []*casebot.IndexEntry, info casebot.IndexInfo) error {
	if err := casebot.ValidateEntries(entries, info); err != nil {
		return err
	}

	type row struct {
		id, meta string
		blob     []byte
	}
	rows := make([]row, len(entries))
	for i, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		meta, err := encodeMetadata(e.Metadata)
		if err != nil {
			return err
		}
		blob, err := vector.EncodeEmbedding(e.Vector)
		if err != nil {
			return casebot.Errorf(casebot.EINVALID, "index entry %q: %v", e.Metadata.URL, err)
		}
		rows[i] = row{id: id, meta: meta, blob: blob}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	generation, err := nextGeneration(ctx, tx)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+shadowTable+` WHERE dataset_id = ?`, DatasetID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO `+shadowTable+` (dataset_id, id, asset_id, content, meta, embedding, embedding_model, scn, archived, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, DatasetID, rows[i].id, hashContent(e.Text), e.Text,
			rows[i].meta, rows[i].blob, info.Model, generation, i); err != nil {
			return fmt.Errorf("failed to insert entry %q: %w", e.Metadata.URL, err)
		}
	}

	for key, value := range map[string]string{
		metaModel:      info.Model,
		metaDimensions: strconv.Itoa(info.Dimensions),
		metaGeneration: strconv.FormatInt(generation, 10),
		metaUpdatedAt:  time.Now().UTC().Format(time.RFC3339),
	} {
		if err := setMeta(ctx, tx, key, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Search returns the k entries most similar to vector.
func (s *VectorStore) Search(ctx context.Context, v []float32, k int) ([]casebot.SearchResult, error) {
	if k <= 0 {
		return nil, casebot.Errorf(casebot.EINVALID, "k must be positive, got %d", k)
	}

	n, err := s.Count(ctx)
	if err != nil || n == 0 {
		return nil, err
	}
	info, err := s.Info(ctx)
	if err != nil {
		return nil, err
	}
	if err := casebot.CheckDimensions(v, info); err != nil {
		return nil, err
	}

	blob, err := vector.EncodeEmbedding(v)
	if err != nil {
		return nil, casebot.Errorf(casebot.EINVALID, "query vector: %v", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.position, d.content, d.meta, d.embedding, v.match_score
		FROM `+vecTable+` v
		JOIN `+shadowTable+` d ON d.dataset_id = v.dataset_id AND d.id = v.doc_id
		WHERE v.dataset_id = ?
		  AND v.doc_id MATCH ?
		  AND d.archived = 0
		ORDER BY v.match_score DESC, d.position ASC
		LIMIT ?
	`, DatasetID, blob, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []casebot.SearchResult
	for rows.Next() {
		var (
			e         casebot.IndexEntry
			meta      string
			embedding []byte
			score     float64
		)
		if err := rows.Scan(&e.ID, &e.Position, &e.Text, &meta, &embedding, &score); err != nil {
			return nil, err
		}
		if e.Metadata, err = decodeMetadata(meta); err != nil {
			return nil, fmt.Errorf("failed to decode metadata of %s: %w", e.ID, err)
		}
		if e.Vector, err = vector.DecodeEmbedding(embedding); err != nil {
			return nil, fmt.Errorf("failed to decode embedding of %s: %w", e.ID, err)
		}
		results = append(results, casebot.SearchResult{Entry: &e, Score: float32(score)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of stored entries.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM `+shadowTable+` WHERE dataset_id = ? AND archived = 0
	`, DatasetID).Scan(&n)
	return n, err
}

// Info returns the embedding model and vector size of the last Replace.
// Returns ENOTFOUND if the index has never been built.
func (s *VectorStore) Info(ctx context.Context) (casebot.IndexInfo, error) {
	model, err := getMeta(ctx, s.db, metaModel)
	if err != nil {
		return casebot.IndexInfo{}, err
	}
	dims, err := getMeta(ctx, s.db, metaDimensions)
	if err != nil {
		return casebot.IndexInfo{}, err
	}
	n, err := strconv.Atoi(dims)
	if err != nil {
		return casebot.IndexInfo{}, fmt.Errorf("failed to parse %s: %w", metaDimensions, err)
	}
	return casebot.IndexInfo{Model: model, Dimensions: n}, nil
}

func nextGeneration(ctx context.Context, tx *sql.Tx) (int64, error) {
	var value string
	err := tx.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, metaGeneration).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	} else if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", metaGeneration, err)
	}
	return n + 1, nil
}

func getMeta(ctx context.Context, db *DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", casebot.Errorf(casebot.ENOTFOUND, "index has never been built")
	}
	return value, err
}

func setMeta(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
