package models

import "time"

// User is the profile record served by the auth endpoints.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Website        string    `json:"website,omitempty"`
	Credits        int64     `json:"credits"`
	MaterialsCount int64     `json:"materials_count"`
	DownloadsCount int64     `json:"downloads_count"`
	IsPremium      bool      `json:"is_premium"`
	DateJoined     time.Time `json:"date_joined"`
}

func (u *User) Validate() error {
	if u.ID == 0 {
		return ErrMissingID
	}
	return nil
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// LoginResponse carries the token pair and the authenticated user.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message"`
}

// ProfileUpdate holds partial profile changes; nil fields are not sent.
type ProfileUpdate struct {
	Email   *string `json:"email,omitempty"`
	Bio     *string `json:"bio,omitempty"`
	Website *string `json:"website,omitempty"`
}

// PasswordChange is the change-password request body.
type PasswordChange struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
