// Package forms holds the synchronous validation chains for the login,
// registration and profile forms. Each chain checks fields in a fixed order
// and stops at the first violated rule.
package forms

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minUsername = 3
	minPassword = 8
)

var emailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// FieldError is the first rule a form violated.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Form is implemented by every validatable form.
type Form interface {
	// Validate returns nil or the first *FieldError.
	Validate() error
	// Fields lists the field names in check order.
	Fields() []string
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.ToLower(s))
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func shorter(s string, n int) bool { return utf8.RuneCountInString(s) < n }

func fail(field, msg string) error { return &FieldError{Field: field, Message: msg} }

// Login is the login form.
type Login struct {
	Email    string
	Password string
}

func (f Login) Fields() []string { return []string{"email", "password"} }

func (f Login) Validate() error {
	if blank(f.Email) {
		return fail("email", "Email is required")
	}
	if !ValidEmail(f.Email) {
		return fail("email", "Please enter a valid email address")
	}
	if blank(f.Password) {
		return fail("password", "Password is required")
	}
	return nil
}

// Register is the account registration form.
type Register struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

func (f Register) Fields() []string {
	return []string{"username", "email", "password", "password2"}
}

func (f Register) Validate() error {
	if err := checkIdentity(f.Username, f.Email); err != nil {
		return err
	}
	if blank(f.Password) {
		return fail("password", "Password is required")
	}
	if shorter(f.Password, minPassword) {
		return fail("password", "Password must be at least 8 characters long")
	}
	if f.Password != f.Password2 {
		return fail("password2", "Passwords do not match")
	}
	return nil
}

// Profile is the profile update form. The password block only applies when
// NewPassword is filled in.
type Profile struct {
	Username        string
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func (f Profile) Fields() []string {
	return []string{"username", "email", "current_password", "new_password", "confirm_password"}
}

func (f Profile) Validate() error {
	if err := checkIdentity(f.Username, f.Email); err != nil {
		return err
	}
	if blank(f.NewPassword) {
		return nil
	}
	if blank(f.CurrentPassword) {
		return fail("current_password", "Current password is required to set a new password")
	}
	if shorter(f.NewPassword, minPassword) {
		return fail("new_password", "New password must be at least 8 characters long")
	}
	if f.NewPassword != f.ConfirmPassword {
		return fail("confirm_password", "Passwords do not match")
	}
	return nil
}

func checkIdentity(username, email string) error {
	if blank(username) {
		return fail("username", "Username is required")
	}
	if shorter(username, minUsername) {
		return fail("username", "Username must be at least 3 characters long")
	}
	if blank(email) {
		return fail("email", "Email is required")
	}
	if !ValidEmail(email) {
		return fail("email", "Please enter a valid email address")
	}
	return nil
}

// FromValues builds the named form ("login", "register" or "profile") from
// submitted form values.
func FromValues(name string, v url.Values) (Form, error) {
	switch name {
	case "login":
		return Login{Email: v.Get("email"), Password: v.Get("password")}, nil
	case "register":
		return Register{
			Username:  v.Get("username"),
			Email:     v.Get("email"),
			Password:  v.Get("password"),
			Password2: v.Get("password2"),
		}, nil
	case "profile":
		return Profile{
			Username:        v.Get("username"),
			Email:           v.Get("email"),
			CurrentPassword: v.Get("current_password"),
			NewPassword:     v.Get("new_password"),
			ConfirmPassword: v.Get("confirm_password"),
		}, nil
	default:
		return nil, fmt.Errorf("unknown form %q: must be login, register or profile", name)
	}
}
