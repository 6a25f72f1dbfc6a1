package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/hatchwise/poultry-hatchery-api/internal/model"
	"github.com/hatchwise/poultry-hatchery-api/internal/utils"
)

// ErrEmailExists is returned when the email uniqueness constraint
// would be violated.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup yields no row.
var ErrUserNotFound = errors.New("user not found")

// UserRepo encapsulates all database queries related to user accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password,role,phone,created_at,updated_at"

// Create hashes the password, inserts the user and returns its ID.
// The email is checked for uniqueness before the insert so a duplicate
// produces ErrEmailExists; a concurrent insert racing past the check
// is caught on the way back from the store.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role, phone string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email=?)", email).Scan(&exists); err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password, role, phone) VALUES (?,?,?,?,?)",
		name, email, hash, role, phone)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrUserNotFound
	}
	return u, err
}

// AdminExists reports whether any admin account is present. Used at
// startup to decide whether the bootstrap admin needs seeding.
func (r *UserRepo) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE role=?)", "admin").Scan(&exists)
	return exists, err
}
