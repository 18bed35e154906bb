package domain

import "strings"

// User validation errors.
var (
	ErrEmptyName    = newValidationError("name cannot be empty")
	ErrEmptyEmail   = newValidationError("email cannot be empty")
	ErrInvalidEmail = newValidationError("invalid email format")
)

// User is a registered library member. Users are immutable once stored.
// Several users may share an email address.
type User struct {
	ID    int64  `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewUser creates a User that has not been stored yet (ID is zero).
func NewUser(name, email, phone string) (*User, error) {
	user := &User{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// validateEmailFormat performs basic validation of email format: a non-empty
// local part, a single @, and a domain with a dot that is neither first nor last.
func validateEmailFormat(email string) bool {
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if strings.ContainsAny(domainPart, "@ ") || len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	dotIndex := strings.IndexByte(domainPart, '.')
	if dotIndex <= 0 || strings.HasSuffix(domainPart, ".") {
		return false
	}

	return true
}
