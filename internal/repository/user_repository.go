package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"accounts-service/internal/models"
)

var (
	// ErrUserNotFound signals that no row matched the given id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken signals a unique-constraint violation on the email column.
	ErrEmailTaken = errors.New("email already in use")
)

const uniqueViolation = "23505"

// projection selects every user column except the password hash, so results
// are safe to hand to response serialization as-is.
const projection = "id, email, name, role, created_at, updated_at"

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// UserUpdate is the explicit update command applied to a user row. Nil fields
// are left untouched. Password carries plaintext and is hashed on write.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// IsEmpty reports whether the command would change no column.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.Role == nil
}

// UserStore is the persistence contract the handlers depend on.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, name, email, password, role string) (*models.User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository implements UserStore against Postgres.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns every user, hash excluded.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, "SELECT "+projection+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID returns a single user, hash excluded.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		"SELECT "+projection+" FROM users WHERE id = $1",
		id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user including the password hash, for credential checks.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		"SELECT id, email, name, password_hash, role, created_at, updated_at FROM users WHERE email = $1",
		email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user, hashing the password first.
func (r *UserRepository) Create(ctx context.Context, name, email, password, role string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var u models.User
	err = r.db.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 RETURNING `+projection,
		email, name, string(hashed), role).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// Update applies the command as one conditional statement. The existence check
// is the statement itself: zero returned rows means the id is gone, so there is
// no lookup-then-mutate window. updated_at is refreshed on every real change;
// an empty command writes nothing and just reads the row back.
func (r *UserRepository) Update(ctx context.Context, id int64, upd UserUpdate) (*models.User, error) {
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := []string{}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		add("password_hash", string(hashed))
	}
	if upd.Role != nil {
		add("role", *upd.Role)
	}
	set = append(set, "updated_at = now()")

	query := "UPDATE users SET " + strings.Join(set, ", ") + " WHERE id = $1 RETURNING " + projection

	var u models.User
	err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// Delete removes the row unconditionally and reports NotFound when nothing
// was deleted.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
