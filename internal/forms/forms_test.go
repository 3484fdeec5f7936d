package forms

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErr(t *testing.T, err error) *FieldError {
	t.Helper()
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected *FieldError, got %v", err)
	return fe
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		form      Login
		wantField string
		wantMsg   string
	}{
		{"empty email", Login{Email: "  ", Password: "x"}, "email", "Email is required"},
		{"bad email", Login{Email: "nobody", Password: "x"}, "email", "Please enter a valid email address"},
		{"empty password", Login{Email: "a@b.io", Password: " "}, "password", "Password is required"},
		{"ok", Login{Email: "A@Example.COM", Password: "x"}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			fe := fieldErr(t, err)
			assert.Equal(t, tt.wantField, fe.Field)
			assert.Equal(t, tt.wantMsg, fe.Message)
		})
	}
}

func TestRegister(t *testing.T) {
	valid := Register{Username: "alice", Email: "alice@example.com", Password: "longenough", Password2: "longenough"}

	tests := []struct {
		name      string
		mutate    func(*Register)
		wantField string
		wantMsg   string
	}{
		{"empty username", func(r *Register) { r.Username = " " }, "username", "Username is required"},
		{"short username", func(r *Register) { r.Username = "ab" }, "username", "Username must be at least 3 characters long"},
		{"empty email", func(r *Register) { r.Email = "" }, "email", "Email is required"},
		{"bad email", func(r *Register) { r.Email = "alice@" }, "email", "Please enter a valid email address"},
		{"empty password", func(r *Register) { r.Password = "" }, "password", "Password is required"},
		{
			// Length is checked before the confirmation matches.
			"short mismatched password",
			func(r *Register) { r.Password, r.Password2 = "short1", "short2" },
			"password", "Password must be at least 8 characters long",
		},
		{"mismatch", func(r *Register) { r.Password2 = "different1" }, "password2", "Passwords do not match"},
		{"ok", func(r *Register) {}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			err := form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			fe := fieldErr(t, err)
			assert.Equal(t, tt.wantField, fe.Field)
			assert.Equal(t, tt.wantMsg, fe.Message)
		})
	}
}

func TestRegisterUsernameCountsCharacters(t *testing.T) {
	form := Register{Username: "éva", Email: "eva@example.com", Password: "longenough", Password2: "longenough"}
	assert.NoError(t, form.Validate())
}

func TestProfileWithoutNewPasswordIgnoresPasswordBlock(t *testing.T) {
	for _, current := range []string{"", "   ", "whatever", "x"} {
		form := Profile{Username: "alice", Email: "alice@example.com", CurrentPassword: current, ConfirmPassword: "nope"}
		assert.NoError(t, form.Validate(), "current password %q", current)
	}
}

func TestProfilePasswordChange(t *testing.T) {
	base := Profile{Username: "alice", Email: "alice@example.com"}

	tests := []struct {
		name      string
		mutate    func(*Profile)
		wantField string
	}{
		{"missing current", func(p *Profile) { p.NewPassword = "newpassword" }, "current_password"},
		{"short new", func(p *Profile) { p.CurrentPassword, p.NewPassword = "old", "short" }, "new_password"},
		{"mismatch", func(p *Profile) {
			p.CurrentPassword, p.NewPassword, p.ConfirmPassword = "old", "newpassword", "newpasswerd"
		}, "confirm_password"},
		{"ok", func(p *Profile) {
			p.CurrentPassword, p.NewPassword, p.ConfirmPassword = "old", "newpassword", "newpassword"
		}, ""},
		{"identity first", func(p *Profile) { p.Username, p.NewPassword = "", "newpassword" }, "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := base
			tt.mutate(&form)
			err := form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantField, fieldErr(t, err).Field)
		})
	}
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.io", "first.last@sub.example.org", `"odd name"@example.com`, "x@[10.0.0.1]"} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@b", "a b@c.com", "a@b.c", "a..b@c.com"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("username", "bob")
	v.Set("email", "bob@example.com")
	v.Set("new_password", "")

	f, err := FromValues("profile", v)
	require.NoError(t, err)
	assert.IsType(t, Profile{}, f)
	assert.NoError(t, f.Validate())

	_, err = FromValues("signup", v)
	assert.Error(t, err)
}

func TestSlots(t *testing.T) {
	bad := Register{Username: "ab"}
	slots := NewSlots(bad)

	assert.False(t, slots.Check(bad))
	assert.Equal(t, []string{"username"}, slots.Invalid())
	assert.Equal(t, "Username must be at least 3 characters long", slots.Message("username"))

	good := Register{Username: "abc", Email: "abc@example.com", Password: "password1", Password2: "password1"}
	assert.True(t, slots.Check(good))
	assert.Empty(t, slots.Invalid())
	assert.Empty(t, slots.Message("username"))
}
