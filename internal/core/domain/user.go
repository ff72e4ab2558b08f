package domain

import "time"

// User is a registered account holder.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"` // Never expose
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasFullName reports whether both name parts are set, which the default wallet needs.
func (u *User) HasFullName() bool {
	return u.FirstName != "" && u.LastName != ""
}
