package adminuser

import "time"

// Admin is a back-office identity. Rows are created out-of-band
// (cmd/dev/seedadmin), never through the API.
type Admin struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// PasswordHash is never serialized.
	PasswordHash string `json:"-"`
}
