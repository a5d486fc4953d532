package chain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const blocksSchema = `
CREATE TABLE IF NOT EXISTS blocks (
	idx       INTEGER PRIMARY KEY,
	data      TEXT NOT NULL,
	prev_hash TEXT NOT NULL,
	hash      TEXT NOT NULL
)`

// SQLiteStore keeps the blocks in a "blocks" table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	const errCtx = "opening sqlite chain store"

	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%s: storage path is required", errCtx)
	}

	dsn := filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("%s: ping: %w", errCtx, err)
	}

	if _, err := db.Exec(blocksSchema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("%s: schema: %w", errCtx, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (blocks []Block, retErr error) {
	const errCtx = "loading sqlite chain"

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT idx, data, prev_hash, hash FROM blocks ORDER BY idx`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	for rows.Next() {
		var b Block
		if err := rows.Scan(&b.Index, &b.Data, &b.PrevHash, &b.Hash); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("%s: %w", errCtx, ErrNotFound)
	}

	return blocks, nil
}

// Save implements Store. All rows are replaced in one
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, blocks []Block) (retErr error) {
	const errCtx = "saving sqlite chain"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if retErr == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil &&
			!errors.Is(rbErr, sql.ErrTxDone) {
			slog.Warn("rollback failed", "error", rbErr)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks`); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for _, b := range blocks {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO blocks (idx, data, prev_hash, hash) VALUES (?, ?, ?, ?)`,
			b.Index, b.Data, b.PrevHash, b.Hash,
		)
		if err != nil {
			return fmt.Errorf("%s: block %d: %w", errCtx, b.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing sqlite chain store: %w", err)
	}

	return nil
}
