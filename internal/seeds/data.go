package seeds

import (
	"log"

	"github.com/oculab/octascan-api/internal/models"
	"github.com/oculab/octascan-api/internal/store"
	"github.com/oculab/octascan-api/internal/utils"
)

// AllDoctors is the curated directory shown in patient-facing pickers.
var AllDoctors = []models.Doctor{
	{ID: "doc1", Name: "Dr. Mahmood", Specialization: "Retinal Specialist", Email: "mahmooddoctor@gmail.com"},
	{ID: "doc2", Name: "Dr. Mones", Specialization: "Ophthalmologist", Email: "mones@hospital.com"},
	{ID: "doc3", Name: "Dr. Amer", Specialization: "Retinal Surgeon", Email: "amer@hospital.com"},
	{ID: "doc4", Name: "Dr. Momen", Specialization: "Vitreoretinal Specialist", Email: "momen@hospital.com"},
}

type demoAccount struct {
	user     models.User
	password string
	verified bool
}

// demoAccounts are the out-of-the-box logins for the demo deployment.
var demoAccounts = []demoAccount{
	{
		user: models.User{
			ID: "doc1", Email: "mahmooddoctor@gmail.com", Name: "Dr. Mahmood",
			Role: models.RoleDoctor, Specialization: "Retinal Specialist",
			LicenseDocument: "data:image/png;base64,verified",
		},
		password: "doctor123",
		verified: true,
	},
	{user: models.User{ID: "patient1", Email: "mahmoodpatient@gmail.com", Name: "Sheyab", Role: models.RolePatient}, password: "patient123"},
	{user: models.User{ID: "patient2", Email: "omari@gmail.com", Name: "Omari", Role: models.RolePatient}, password: "patient123"},
	{user: models.User{ID: "patient3", Email: "bdour@gmail.com", Name: "Bdour", Role: models.RolePatient}, password: "patient123"},
	{user: models.User{ID: "patient4", Email: "awwadeh@gmail.com", Name: "Awwadeh", Role: models.RolePatient}, password: "patient123"},
}

// Run populates empty collections. Existing data is never touched, so a
// restart keeps whatever users and reports have accumulated.
func Run(users *store.Collection[models.User], doctors *store.Collection[models.Doctor]) error {
	if doctors.Len() == 0 {
		for _, d := range AllDoctors {
			if err := doctors.Upsert(d); err != nil {
				return err
			}
		}
		log.Printf("Seeded %d directory doctors", len(AllDoctors))
	}

	if users.Len() == 0 {
		for _, acc := range demoAccounts {
			hashed, err := utils.HashPassword(acc.password)
			if err != nil {
				return err
			}
			u := acc.user
			u.Password = hashed
			if u.Role == models.RoleDoctor {
				verified := acc.verified
				u.Verified = &verified
			}
			if err := users.Upsert(u); err != nil {
				return err
			}
		}
		log.Printf("Seeded %d demo accounts", len(demoAccounts))
	}

	return nil
}
