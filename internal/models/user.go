package models

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

type User struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Password        string `json:"-"` // bcrypt hash, hidden from JSON responses
	Name            string `json:"name"`
	Role            string `json:"role"` // "patient" or "doctor"
	Specialization  string `json:"specialization,omitempty"`
	Verified        *bool  `json:"verified,omitempty"` // doctors only; patients carry no verified field
	LicenseDocument string `json:"licenseDocument,omitempty"`
}

func (u User) Key() string { return u.ID }

// Stripped returns a copy safe to persist as the session record or return to
// clients: the password hash is removed.
func (u User) Stripped() User {
	u.Password = ""
	return u
}

// IsVerified treats patients as always verified; doctors only once flagged.
func (u User) IsVerified() bool {
	if u.Role != RoleDoctor {
		return true
	}
	return u.Verified != nil && *u.Verified
}
