package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"accounts-service/internal/repository"
)

// fakeDB records the statements the repository issues and serves canned rows.
type fakeDB struct {
	queries []string
	args    [][]any

	queryRowFn func() pgx.Row
	queryFn    func() (pgx.Rows, error)
	execFn     func() (pgconn.CommandTag, error)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return f.queryFn()
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, args)
	return f.queryRowFn()
}

func (f *fakeDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.queries = append(f.queries, sql)
	f.args = append(f.args, arguments)
	return f.execFn()
}

type rowFunc func(dest ...any) error

func (fn rowFunc) Scan(dest ...any) error { return fn(dest...) }

func userRow(id int64, email, name, role string) rowFunc {
	now := time.Now()
	return func(dest ...any) error {
		*dest[0].(*int64) = id
		*dest[1].(*string) = email
		*dest[2].(*string) = name
		*dest[3].(*string) = role
		*dest[4].(*time.Time) = now
		*dest[5].(*time.Time) = now
		return nil
	}
}

type fakeRows struct {
	data [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx < len(r.data) {
		r.idx++
		return true
	}
	return false
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx-1]
	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = row[i].(int64)
		case *string:
			*v = row[i].(string)
		case *time.Time:
			*v = row[i].(time.Time)
		}
	}
	return nil
}

func strptr(s string) *string { return &s }

func TestListExcludesPasswordHash(t *testing.T) {
	t.Parallel()

	now := time.Now()
	db := &fakeDB{
		queryFn: func() (pgx.Rows, error) {
			return &fakeRows{data: [][]any{
				{int64(1), "admin@example.com", "Admin", "admin", now, now},
				{int64(5), "jane@example.com", "Jane", "user", now, now},
			}}, nil
		},
	}
	repo := repository.NewUserRepository(db)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, int64(5), users[1].ID)
	assert.Empty(t, users[1].PasswordHash)
	require.Len(t, db.queries, 1)
	assert.NotContains(t, db.queries[0], "password_hash")
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()

	db := &fakeDB{
		queryRowFn: func() pgx.Row {
			return rowFunc(func(dest ...any) error { return pgx.ErrNoRows })
		},
	}
	repo := repository.NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	t.Parallel()

	db := &fakeDB{
		queryRowFn: func() pgx.Row {
			return rowFunc(func(dest ...any) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
			})
		},
	}
	repo := repository.NewUserRepository(db)

	_, err := repo.Create(context.Background(), "Jane", "jane@example.com", "secret1", "user")
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestCreateHashesPassword(t *testing.T) {
	t.Parallel()

	db := &fakeDB{
		queryRowFn: func() pgx.Row {
			return rowFunc(userRow(1, "jane@example.com", "Jane", "user"))
		},
	}
	repo := repository.NewUserRepository(db)

	_, err := repo.Create(context.Background(), "Jane", "jane@example.com", "secret1", "user")
	require.NoError(t, err)

	require.Len(t, db.args, 1)
	hash, ok := db.args[0][2].(string)
	require.True(t, ok)
	assert.NotEqual(t, "secret1", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret1")))
}

func TestUpdateBuildsSingleConditionalStatement(t *testing.T) {
	t.Parallel()

	db := &fakeDB{
		queryRowFn: func() pgx.Row {
			return rowFunc(userRow(5, "jane@example.com", "X", "user"))
		},
	}
	repo := repository.NewUserRepository(db)

	user, err := repo.Update(context.Background(), 5, repository.UserUpdate{Name: strptr("X")})
	require.NoError(t, err)
	assert.Equal(t, "X", user.Name)

	// One statement total: no separate existence lookup.
	require.Len(t, db.queries, 1)
	query := db.queries[0]
	assert.Contains(t, query, "UPDATE users SET")
	assert.Contains(t, query, "name = $2")
	assert.Contains(t, query, "updated_at = now()")
	assert.Contains(t, query, "WHERE id = $1")
	assert.Contains(t, query, "RETURNING")
	assert.NotContains(t, query, "role =")
	assert.NotContains(t, query, "email =")
	assert.NotContains(t, query, "password_hash =")

	assert.Equal(t, []any{int64(5), "X"}, db.args[0])
}

func TestUpdateEmptyCommandWritesNothing(t *testing.T) {
	t.Parallel()

	db := &fakeDB{
		queryRowFn: func() pgx.Row {
			return rowFunc(userRow(5, "jane@example.com", "Jane", "user"))
		},
	}
	repo := repository.NewUserRepository(db)

	user, err := repo.Update(context.Background(), 5, repository.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)

	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "SELECT")
	assert.NotContains(t, db.queries[0], "UPDATE")
}

func TestUpdateHashesPassword(t *testing.T) {
	t.Parallel()

	db := &fakeDB{
		queryRowFn: func() pgx.Row {
			return rowFunc(userRow(5, "jane@example.com", "Jane", "user"))
		},
	}
	repo := repository.NewUserRepository(db)

	_, err := repo.Update(context.Background(), 5, repository.UserUpdate{Password: strptr("newpass1")})
	require.NoError(t, err)

	assert.Contains(t, db.queries[0], "password_hash = $2")
	hash, ok := db.args[0][1].(string)
	require.True(t, ok)
	assert.NotEqual(t, "newpass1", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass1")))
}

func TestUpdateNotFound(t *testing.T) {
	t.Parallel()

	db := &fakeDB{
		queryRowFn: func() pgx.Row {
			return rowFunc(func(dest ...any) error { return pgx.ErrNoRows })
		},
	}
	repo := repository.NewUserRepository(db)

	_, err := repo.Update(context.Background(), 99, repository.UserUpdate{Name: strptr("X")})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		tag     string
		wantErr error
	}{
		{name: "row deleted", tag: "DELETE 1", wantErr: nil},
		{name: "no row matched", tag: "DELETE 0", wantErr: repository.ErrUserNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := &fakeDB{
				execFn: func() (pgconn.CommandTag, error) {
					return pgconn.NewCommandTag(tc.tag), nil
				},
			}
			repo := repository.NewUserRepository(db)

			err := repo.Delete(context.Background(), 5)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}

			// Delete is one unconditional statement.
			require.Len(t, db.queries, 1)
			assert.Equal(t, "DELETE FROM users WHERE id = $1", db.queries[0])
		})
	}
}
