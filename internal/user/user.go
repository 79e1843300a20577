package user

import "time"

// Profile is the public-facing user row. Identity (credentials) lives in
// auth_users; the profile references it via AuthUserID and can be repaired
// from identity metadata if the registration-time insert failed.
type Profile struct {
	ID               string     `json:"id"`
	AuthUserID       string     `json:"authUserId"`
	FullName         string     `json:"fullName"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	EmergencyContact string     `json:"emergencyContact,omitempty"`
	EmergencyPhone   string     `json:"emergencyPhone,omitempty"`
	EmailConfirmed   bool       `json:"emailConfirmed"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
