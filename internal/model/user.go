package model

import "time"

type UserID string

type CreateUserParams struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	EmergencyContact string `json:"emergencyContact"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the persisted directory record. Password holds a bcrypt hash and
// must never reach an API response; Sanitized strips it.
type User struct {
	ID               UserID    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Password         string    `json:"password,omitempty"`
	EmergencyContact string    `json:"emergencyContact"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (u User) Sanitized() User {
	u.Password = ""
	return u
}
