package dto

// UpdateUserRequest represents the request payload for partial user updates.
// All fields are optional; absent fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=128"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UsersListResponse is the body of GET /api/users
type UsersListResponse struct {
	Message string         `json:"message"`
	Users   []UserResponse `json:"users"`
	Count   int            `json:"count"`
}

// UserDetailResponse is the body of GET/PUT /api/users/{id}
type UserDetailResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// UserDeletedResponse is the body of DELETE /api/users/{id}
type UserDeletedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// FieldError describes a single failed constraint on a request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries the per-field error list for a 400
type ValidationErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
}
