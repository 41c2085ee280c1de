// Package fixture serves the constant seed batch from an SQLite database
// built out of embedded SQL files.
package fixture

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/mattn/go-sqlite3"

	"tasklist/internal/models"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

//go:embed fixtures/*.sql
var fixturesFS embed.FS

// Fixture holds the seed records.
type Fixture struct {
	db *sql.DB
}

// Open creates the fixture database at dsn and loads the embedded fixtures.
func Open(dsn string) (*Fixture, error) {
	sub, err := fs.Sub(fixturesFS, "fixtures")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded fixtures: %w", err)
	}
	return openFS(dsn, sub)
}

func openFS(dsn string, fsys fs.FS) (*Fixture, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every new connection to :memory: is a fresh, empty database.
	db.SetMaxOpenConns(1)

	if err := runFixtures(db, fsys); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}

	return &Fixture{db: db}, nil
}

// Close closes the database connection.
func (f *Fixture) Close() error {
	return f.db.Close()
}

// LoadBatch returns every seed record ordered by position.
func (f *Fixture) LoadBatch(ctx context.Context) (models.Batch, error) {
	rows, err := f.db.QueryContext(ctx, `
		SELECT id, title, status
		FROM tasks ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return models.Batch{}, fmt.Errorf("failed to list seed tasks: %w", err)
	}
	defer rows.Close()

	items := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Status); err != nil {
			return models.Batch{}, fmt.Errorf("failed to scan seed task: %w", err)
		}
		if err := task.Validate(); err != nil {
			return models.Batch{}, fmt.Errorf("seed task %d: %w", task.ID, err)
		}
		items = append(items, task)
	}

	if err := rows.Err(); err != nil {
		return models.Batch{}, fmt.Errorf("failed iterating seed tasks: %w", err)
	}

	return models.Batch{Items: items}, nil
}
