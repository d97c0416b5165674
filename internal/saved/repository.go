// Package saved persists named searches so filter sets can be rerun later.
package saved

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evcraddock/propfinder/internal/search"
)

// Search is a named, persisted filter set.
type Search struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Filters   search.Filters `json:"filters"`
	CreatedAt time.Time      `json:"created_at"`
}

// Repository provides CRUD operations for saved searches.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a saved-search repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores (or replaces) a filter set under name.
func (r *Repository) Save(name string, f *search.Filters) (*Search, error) {
	if name == "" {
		return nil, fmt.Errorf("search name is required")
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("saving search %q: %w", name, err)
	}

	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encoding filters: %w", err)
	}

	_, err = r.db.Exec(
		"INSERT INTO saved_searches (name, filters) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET filters = excluded.filters",
		name, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting saved search: %w", err)
	}

	return r.Get(name)
}

// Get returns the saved search with the given name.
func (r *Repository) Get(name string) (*Search, error) {
	var s Search
	var raw string
	err := r.db.QueryRow(
		"SELECT id, name, filters, created_at FROM saved_searches WHERE name = ?", name,
	).Scan(&s.ID, &s.Name, &raw, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("saved search %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading saved search: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &s.Filters); err != nil {
		return nil, fmt.Errorf("decoding filters for %q: %w", name, err)
	}
	return &s, nil
}

// List returns all saved searches, newest first.
func (r *Repository) List() (searches []*Search, err error) {
	rows, err := r.db.Query("SELECT id, name, filters, created_at FROM saved_searches ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing saved searches: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var s Search
		var raw string
		if err := rows.Scan(&s.ID, &s.Name, &raw, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning saved search: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &s.Filters); err != nil {
			return nil, fmt.Errorf("decoding filters for %q: %w", s.Name, err)
		}
		searches = append(searches, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saved searches: %w", err)
	}
	return searches, nil
}

// Delete removes a saved search by name.
func (r *Repository) Delete(name string) error {
	result, err := r.db.Exec("DELETE FROM saved_searches WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting saved search: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("saved search %q not found", name)
	}
	return nil
}
