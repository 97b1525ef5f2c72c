package vm

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"progman/internal/domain"
)

const memoryLocation = ":memory:"

// Store persists programs and transactions for a VM.
type Store struct {
	db       *sql.DB
	location string

	closeOnce sync.Once
	closeErr  error
}

// OpenStore opens the store at location. An empty location opens a private
// in-memory database.
func OpenStore(location string) (*Store, error) {
	dsn := location
	if dsn == "" {
		dsn = memoryLocation
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, location: dsn}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS programs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// Location returns the data source the store was opened with.
func (s *Store) Location() string { return s.location }

// PutProgram records p. Programs are immutable once stored.
func (s *Store) PutProgram(ctx context.Context, p domain.Program) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO programs (id, source) VALUES (?, ?)`, string(p.ID), p.Source)
	if err != nil {
		return fmt.Errorf("failed to store program %s: %w", p.ID, err)
	}
	return nil
}

// ProgramSource returns the stored source for id.
func (s *Store) ProgramSource(ctx context.Context, id domain.ProgramID) (string, bool, error) {
	var src string
	err := s.db.QueryRowContext(ctx, `SELECT source FROM programs WHERE id = ?`, string(id)).Scan(&src)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return src, true, nil
}

// ProgramIDs lists stored programs in insertion order.
func (s *Store) ProgramIDs(ctx context.Context) ([]domain.ProgramID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM programs ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []domain.ProgramID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, domain.ProgramID(id))
	}
	return ids, rows.Err()
}

// PutTransaction records tx.
func (s *Store) PutTransaction(ctx context.Context, tx domain.Transaction) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, type, body) VALUES (?, ?, ?)`,
		string(tx.ID), string(tx.Type), string(body))
	if err != nil {
		return fmt.Errorf("failed to store transaction %s: %w", tx.ID, err)
	}
	return nil
}

// Transaction returns a stored transaction by id.
func (s *Store) Transaction(ctx context.Context, id domain.TransactionID) (domain.Transaction, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM transactions WHERE id = ?`, string(id)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Transaction{}, false, nil
	}
	if err != nil {
		return domain.Transaction{}, false, err
	}
	var tx domain.Transaction
	if err := json.Unmarshal([]byte(body), &tx); err != nil {
		return domain.Transaction{}, false, err
	}
	return tx, true, nil
}

// Close releases the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() { s.closeErr = s.db.Close() })
	return s.closeErr
}
