package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"coachpanel/internal/adapters/storage"
	"coachpanel/internal/domain/admin"
)

// SQLiteStore implements Store using SQLite. Sessions survive restarts the
// way the original's browser storage did.
type SQLiteStore struct {
	db     storage.SQLDB
	sealer *Sealer
}

// NewSQLiteStore creates a session store.
func NewSQLiteStore(db storage.SQLDB, sealer *Sealer) *SQLiteStore {
	return &SQLiteStore{db: db, sealer: sealer}
}

// Create stores a new session and returns the cookie token.
// PRE: bearerToken is non-empty
// POST: Session row persisted with the bearer token sealed
func (s *SQLiteStore) Create(ctx context.Context, bearerToken string, profile admin.Profile) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sealed, err := s.sealer.Seal(bearerToken)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session (id, bearer_token, admin_id, admin_username, admin_name, admin_email, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		token, sealed, profile.ID, profile.Username, profile.Name, profile.Email,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Get retrieves a session by cookie token and unseals the bearer token.
// PRE: token is non-empty
// POST: Returns the session or ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, token string) (Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, bearer_token, admin_id, admin_username, admin_name, admin_email, created_at
		 FROM session WHERE id = ?`, token)

	var sess Session
	var sealed, createdAt string
	err := row.Scan(&sess.Token, &sealed, &sess.Admin.ID, &sess.Admin.Username, &sess.Admin.Name, &sess.Admin.Email, &createdAt)
	if err == sql.ErrNoRows {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	bearer, err := s.sealer.Open(sealed)
	if err != nil {
		// Key rotation or tampering: the session is unusable, treat as absent.
		return Session{}, ErrNotFound
	}
	sess.BearerToken = bearer
	sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return sess, nil
}

// UpdateProfile refreshes the cached admin profile for a session.
// PRE: token identifies an existing session
// POST: Cached profile replaced; bearer token untouched
func (s *SQLiteStore) UpdateProfile(ctx context.Context, token string, profile admin.Profile) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE session SET admin_id = ?, admin_username = ?, admin_name = ?, admin_email = ? WHERE id = ?`,
		profile.ID, profile.Username, profile.Name, profile.Email, token)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session. Logout is the only path that destroys one.
func (s *SQLiteStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = ?`, token)
	return err
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
