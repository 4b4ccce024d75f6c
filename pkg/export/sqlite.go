package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yzays8/filmr/pkg/review"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS reviews (
	position INTEGER PRIMARY KEY,
	title    TEXT    NOT NULL,
	year     INTEGER NOT NULL,
	score    REAL    NOT NULL,
	review   TEXT    NOT NULL
)`

// writeSQLite stores reviews in a reviews table; position keeps source order
func writeSQLite(path string, reviews []review.Review) error {
	ctx := context.Background()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO reviews (position, title, year, score, review) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range reviews {
		if _, err := stmt.ExecContext(ctx, i, r.Title, r.Year, r.Score, r.Body); err != nil {
			return fmt.Errorf("failed to insert review %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return db.Close()
}
