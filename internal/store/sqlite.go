package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Youmanvi/dummygateway/internal/domain"
	errs "github.com/Youmanvi/dummygateway/internal/pkg/errors"
)

// SQLiteTokenStore persists payment tokens to SQLite
type SQLiteTokenStore struct {
	db *sql.DB
}

// NewSQLiteTokenStore opens (creating if needed) a SQLite-backed token
// store at the given path
func NewSQLiteTokenStore(dbPath string) (*SQLiteTokenStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteTokenStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

// initSchema creates the payment_tokens table and indexes
func (s *SQLiteTokenStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS payment_tokens (
		id TEXT PRIMARY KEY,
		gateway_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		token TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_payment_tokens_user ON payment_tokens(user_id);
	CREATE INDEX IF NOT EXISTS idx_payment_tokens_gateway ON payment_tokens(gateway_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Create persists a new token and assigns its id
func (s *SQLiteTokenStore) Create(ctx context.Context, token *domain.PaymentToken) (string, error) {
	id := uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment_tokens (id, gateway_id, user_id, token, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, token.GatewayID, token.UserID, token.Token, token.CreatedAt,
	)
	if err != nil {
		return "", errs.NewPersistenceError("failed to store payment token", err)
	}
	return id, nil
}

// Get retrieves a token by id
func (s *SQLiteTokenStore) Get(ctx context.Context, tokenID string) (*domain.PaymentToken, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, gateway_id, user_id, token, created_at FROM payment_tokens WHERE id = ?`,
		tokenID,
	)

	var token domain.PaymentToken
	err := row.Scan(&token.ID, &token.GatewayID, &token.UserID, &token.Token, &token.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewNotFoundError(errs.CodeTokenNotFound, fmt.Sprintf("token %s not found", tokenID))
	}
	if err != nil {
		return nil, errs.NewPersistenceError("failed to load payment token", err)
	}
	return &token, nil
}

// Validate performs base token validation against the stored row
func (s *SQLiteTokenStore) Validate(ctx context.Context, token *domain.PaymentToken) (bool, error) {
	if token == nil || token.GatewayID != domain.GatewayID || token.UserID == "" || token.Token == "" {
		return false, nil
	}
	if token.ID == "" {
		return true, nil
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM payment_tokens WHERE id = ? AND gateway_id = ?`,
		token.ID, token.GatewayID,
	).Scan(&count)
	if err != nil {
		return false, errs.NewPersistenceError("failed to validate payment token", err)
	}
	return count > 0, nil
}

// ListByUser returns the user's stored tokens, newest first
func (s *SQLiteTokenStore) ListByUser(ctx context.Context, userID string) ([]*domain.PaymentToken, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, gateway_id, user_id, token, created_at FROM payment_tokens WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, errs.NewPersistenceError("failed to list payment tokens", err)
	}
	defer rows.Close()

	var tokens []*domain.PaymentToken
	for rows.Next() {
		var token domain.PaymentToken
		if err := rows.Scan(&token.ID, &token.GatewayID, &token.UserID, &token.Token, &token.CreatedAt); err != nil {
			return nil, errs.NewPersistenceError("failed to scan payment token", err)
		}
		tokens = append(tokens, &token)
	}
	return tokens, rows.Err()
}

// Close closes the underlying database
func (s *SQLiteTokenStore) Close() error {
	return s.db.Close()
}
