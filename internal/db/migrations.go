package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id            TEXT    PRIMARY KEY,
		street        TEXT    NOT NULL DEFAULT '',
		city          TEXT    NOT NULL,
		state         TEXT    NOT NULL DEFAULT '',
		zip           TEXT    NOT NULL DEFAULT '',
		lat           REAL    NOT NULL,
		lng           REAL    NOT NULL,
		property_type TEXT    NOT NULL,
		price         REAL    NOT NULL CHECK (price >= 0),
		price_sqft    REAL,
		sqft          REAL,
		year_built    INTEGER,
		occupancy     REAL,
		cap_rate      REAL,
		noi           REAL,
		days_on_market INTEGER,
		zoning        TEXT    NOT NULL DEFAULT '',
		updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_city ON listings(city)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_type ON listings(property_type)`,
	`CREATE TABLE IF NOT EXISTS saved_searches (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT    NOT NULL UNIQUE,
		filters    TEXT    NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
