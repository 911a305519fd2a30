package models

// Doctor is a directory entry shown in patient-facing pickers. It is seeded
// once and curated separately from doctor user accounts.
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
}

func (d Doctor) Key() string { return d.ID }
