package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-service/internal/dto"
)

func strptr(s string) *string { return &s }

func TestParseUserID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		raw     string
		wantID  int64
		wantErr bool
	}{
		{name: "simple number", raw: "42", wantID: 42},
		{name: "leading zeros", raw: "007", wantID: 7},
		{name: "single digit", raw: "5", wantID: 5},
		{name: "empty", raw: "", wantErr: true},
		{name: "letters", raw: "abc", wantErr: true},
		{name: "mixed", raw: "12a", wantErr: true},
		{name: "negative", raw: "-1", wantErr: true},
		{name: "decimal", raw: "1.5", wantErr: true},
		{name: "whitespace", raw: " 7", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, details := ParseUserID(tc.raw)
			if tc.wantErr {
				require.NotEmpty(t, details)
				assert.Equal(t, "id", details[0].Field)
				return
			}
			require.Empty(t, details)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestValidateUpdateUser(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		req       dto.UpdateUserRequest
		wantField string
	}{
		{
			name:      "empty body",
			req:       dto.UpdateUserRequest{},
			wantField: "body",
		},
		{
			name:      "name too short",
			req:       dto.UpdateUserRequest{Name: strptr("x")},
			wantField: "name",
		},
		{
			name:      "invalid email",
			req:       dto.UpdateUserRequest{Email: strptr("not-an-email")},
			wantField: "email",
		},
		{
			name:      "password too short",
			req:       dto.UpdateUserRequest{Password: strptr("short")},
			wantField: "password",
		},
		{
			name:      "unknown role",
			req:       dto.UpdateUserRequest{Role: strptr("superuser")},
			wantField: "role",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			details := ValidateUpdateUser(&tc.req)
			require.NotEmpty(t, details)
			assert.Equal(t, tc.wantField, details[0].Field)
		})
	}
}

func TestValidateUpdateUserNormalizes(t *testing.T) {
	t.Parallel()

	req := dto.UpdateUserRequest{
		Name:  strptr("  Jane Doe  "),
		Email: strptr("  Jane@Example.COM "),
	}

	details := ValidateUpdateUser(&req)
	require.Empty(t, details)
	assert.Equal(t, "Jane Doe", *req.Name)
	assert.Equal(t, "jane@example.com", *req.Email)
}

func TestValidateUpdateUserAcceptsValidFields(t *testing.T) {
	t.Parallel()

	req := dto.UpdateUserRequest{
		Name:     strptr("Jane"),
		Email:    strptr("jane@example.com"),
		Password: strptr("newpass1"),
		Role:     strptr("admin"),
	}

	assert.Empty(t, ValidateUpdateUser(&req))
}

func TestValidateRegister(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		req       dto.RegisterRequest
		wantField string
	}{
		{
			name:      "missing name",
			req:       dto.RegisterRequest{Email: "a@b.com", Password: "secret1"},
			wantField: "name",
		},
		{
			name:      "missing email",
			req:       dto.RegisterRequest{Name: "Jane", Password: "secret1"},
			wantField: "email",
		},
		{
			name:      "short password",
			req:       dto.RegisterRequest{Name: "Jane", Email: "a@b.com", Password: "abc"},
			wantField: "password",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			details := ValidateRegister(&tc.req)
			require.NotEmpty(t, details)
			assert.Equal(t, tc.wantField, details[0].Field)
		})
	}

	t.Run("valid request lowercases email", func(t *testing.T) {
		req := dto.RegisterRequest{Name: "Jane", Email: "Jane@Example.com", Password: "secret1"}
		require.Empty(t, ValidateRegister(&req))
		assert.Equal(t, "jane@example.com", req.Email)
	})
}
