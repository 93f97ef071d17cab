package leaderboard

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps the ledger in a PostgreSQL table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and ensures the schema exists
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leaderboard (
		rank INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		level INTEGER NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the stored entries ordered by rank
func (s *PostgresStore) Load() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT name, score, level FROM leaderboard ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score, &e.Level); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save replaces the table contents in one transaction
func (s *PostgresStore) Save(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}
	for i, e := range entries {
		_, err := tx.Exec(`INSERT INTO leaderboard (rank, name, score, level) VALUES ($1, $2, $3, $4)`,
			i+1, e.Name, e.Score, e.Level)
		if err != nil {
			return fmt.Errorf("failed to save entry %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
