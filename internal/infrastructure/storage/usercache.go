package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/abyxtask/taskctl/internal/domain/entities"
)

const userSchema = `
CREATE TABLE IF NOT EXISTS user (
	id              TEXT PRIMARY KEY,
	email           TEXT NOT NULL DEFAULT '',
	display_name    TEXT NOT NULL DEFAULT '',
	profile_picture TEXT NOT NULL DEFAULT ''
)`

// UserCache is a single-table sqlite cache of the signed-in user, refreshed
// after every successful profile fetch and read back when the backend is
// unreachable.
type UserCache struct {
	db *sqlx.DB
}

// OpenUserCache opens (creating if needed) the cache database at path.
func OpenUserCache(path string) (*UserCache, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open user cache: %w", err)
	}

	if _, err := db.Exec(userSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create user cache schema: %w", err)
	}

	return &UserCache{db: db}, nil
}

type cachedUser struct {
	ID             string `db:"id"`
	Email          string `db:"email"`
	DisplayName    string `db:"display_name"`
	ProfilePicture string `db:"profile_picture"`
}

// Save stores user as the cached account, replacing whatever was there.
func (c *UserCache) Save(ctx context.Context, user *entities.User) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin user cache transaction: %w", err)
	}
	defer tx.Rollback()

	// One account per device, like the app it replaces.
	if _, err := tx.ExecContext(ctx, `DELETE FROM user`); err != nil {
		return fmt.Errorf("failed to clear user cache: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user (id, email, display_name, profile_picture) VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, user.DisplayName, user.ProfilePicture,
	)
	if err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return tx.Commit()
}

// Get returns the cached account, or entities.ErrUserNotFound if nothing is
// cached.
func (c *UserCache) Get(ctx context.Context) (*entities.User, error) {
	var row cachedUser
	err := c.db.GetContext(ctx, &row, `SELECT id, email, display_name, profile_picture FROM user LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entities.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user cache: %w", err)
	}

	return &entities.User{
		ID:             row.ID,
		Email:          row.Email,
		DisplayName:    row.DisplayName,
		ProfilePicture: row.ProfilePicture,
	}, nil
}

// Delete drops the cached account.
func (c *UserCache) Delete(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM user`); err != nil {
		return fmt.Errorf("failed to clear user cache: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *UserCache) Close() error {
	return c.db.Close()
}
