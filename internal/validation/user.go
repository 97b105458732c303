package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"accounts-service/internal/dto"
)

var validate = validator.New()

func init() {
	// Report fields under their json names so error details match the wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ParseUserID checks a raw path parameter and converts it to an integer id.
// The value must be non-empty and composed entirely of decimal digits.
func ParseUserID(raw string) (int64, []dto.FieldError) {
	if raw == "" {
		return 0, []dto.FieldError{{Field: "id", Message: "User ID is required"}}
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, []dto.FieldError{{Field: "id", Message: "User ID must be a valid number"}}
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, []dto.FieldError{{Field: "id", Message: "User ID must be a valid number"}}
	}
	return id, nil
}

// ValidateUpdateUser normalizes and checks a partial update payload.
// Returns a per-field error list, or nil when the payload is acceptable.
func ValidateUpdateUser(req *dto.UpdateUserRequest) []dto.FieldError {
	if req.Name == nil && req.Email == nil && req.Password == nil && req.Role == nil {
		return []dto.FieldError{{Field: "body", Message: "At least one field must be provided"}}
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &normalized
	}

	return checkStruct(req)
}

// ValidateRegister normalizes and checks a registration payload.
func ValidateRegister(req *dto.RegisterRequest) []dto.FieldError {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return checkStruct(req)
}

// ValidateLogin normalizes and checks a login payload.
func ValidateLogin(req *dto.LoginRequest) []dto.FieldError {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return checkStruct(req)
}

func checkStruct(v interface{}) []dto.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dto.FieldError{{Field: "body", Message: err.Error()}}
	}

	details := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, dto.FieldError{
			Field:   fe.Field(),
			Message: fieldErrorMessage(fe),
		})
	}
	return details
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
