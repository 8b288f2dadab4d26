package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/countryexplorer/countryexplorer-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user and favorites persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// The email is stored lowercased so uniqueness is case-insensitive.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?, ?, ?, ?)`

	user.Email = strings.ToLower(user.Email)
	result, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, user.FirstName, user.LastName)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by email address, case-insensitively. The
// favorites list is loaded alongside.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
	          FROM users WHERE email = ?`
	return r.getOne(ctx, query, strings.ToLower(email))
}

// GetByID retrieves a user by ID, favorites included.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, email, password_hash, first_name, last_name, created_at, updated_at
	          FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Favorites, err = r.ListFavorites(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateNames updates the user's first and last name and refreshes updated_at.
func (r *UserRepository) UpdateNames(ctx context.Context, id int64, firstName, lastName string) error {
	query := `UPDATE users SET first_name = ?, last_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.execOnUser(ctx, query, firstName, lastName, id)
}

// UpdatePasswordHash replaces the stored password hash and refreshes updated_at.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.execOnUser(ctx, query, hash, id)
}

// TouchUpdatedAt refreshes updated_at, used to record logins.
func (r *UserRepository) TouchUpdatedAt(ctx context.Context, id int64) error {
	query := `UPDATE users SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UserRepository) execOnUser(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddFavorite records a country in the user's favorites. The UNIQUE key on
// (user_id, country_id) plus INSERT IGNORE makes the operation atomic and
// idempotent under concurrent requests.
func (r *UserRepository) AddFavorite(ctx context.Context, userID int64, countryID string) error {
	query := `INSERT IGNORE INTO favorites (user_id, country_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, query, userID, countryID)
	return err
}

// RemoveFavorite deletes a country from the user's favorites. Removing an
// absent entry is a no-op.
func (r *UserRepository) RemoveFavorite(ctx context.Context, userID int64, countryID string) error {
	query := `DELETE FROM favorites WHERE user_id = ? AND country_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID, countryID)
	return err
}

// ListFavorites returns the user's favorites in insertion order.
func (r *UserRepository) ListFavorites(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT country_id FROM favorites WHERE user_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []string{}
	for rows.Next() {
		var countryID string
		if err := rows.Scan(&countryID); err != nil {
			return nil, err
		}
		favorites = append(favorites, countryID)
	}

	return favorites, rows.Err()
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
