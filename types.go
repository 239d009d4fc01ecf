package goAuthClient

import (
	"github.com/MrEthical07/goAuthClient/credstore"
	"github.com/MrEthical07/goAuthClient/transport"
)

// Profile is the cached user record.
type Profile = credstore.Profile

// Navigator abstracts the host application's routing.
type Navigator = transport.Navigator

// AuthResponse is the body of a successful login or registration.
type AuthResponse struct {
	User    *Profile `json:"user"`
	Token   string   `json:"token"`
	Message string   `json:"message,omitempty"`
}

// RegisterInput carries a registration form.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ResetPasswordInput carries a password reset form, including the emailed
// reset token.
type ResetPasswordInput struct {
	Token                string `json:"token"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// UpdatePasswordInput carries an authenticated password change.
type UpdatePasswordInput struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}
