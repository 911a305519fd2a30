package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/oculab/octascan-api/internal/models"
	"github.com/oculab/octascan-api/internal/store"
	"github.com/oculab/octascan-api/internal/utils"
)

var (
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("role must be patient or doctor")
	ErrDoctorDetails      = errors.New("specialization and license document are required for doctors")
)

// AuthService owns registration, login and the persisted session record.
type AuthService struct {
	users   *store.Collection[models.User]
	session *store.Session
}

func NewAuthService(users *store.Collection[models.User], session *store.Session) *AuthService {
	return &AuthService{users: users, session: session}
}

type RegisterInput struct {
	Email           string
	Password        string
	Name            string
	Role            string
	Specialization  string
	LicenseDocument string
}

// Register creates a user and auto-authenticates it. Doctors must supply
// specialization and a license document and start unverified; patients carry
// no verified field at all.
func (s *AuthService) Register(in RegisterInput) (models.User, error) {
	if in.Role != models.RolePatient && in.Role != models.RoleDoctor {
		return models.User{}, ErrInvalidRole
	}
	if in.Role == models.RoleDoctor && (in.Specialization == "" || in.LicenseDocument == "") {
		return models.User{}, ErrDoctorDetails
	}
	if _, ok := s.findByEmail(in.Email); ok {
		return models.User{}, ErrDuplicateEmail
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    in.Email,
		Password: hashed,
		Name:     in.Name,
		Role:     in.Role,
	}
	if in.Role == models.RoleDoctor {
		unverified := false
		user.Verified = &unverified
		user.Specialization = in.Specialization
		user.LicenseDocument = in.LicenseDocument
	}

	if err := s.users.Upsert(user); err != nil {
		return models.User{}, err
	}
	if err := s.session.Set(user); err != nil {
		return models.User{}, err
	}
	return user.Stripped(), nil
}

// Login checks the credentials and persists the stripped identity as the
// current session record.
func (s *AuthService) Login(email, password string) (models.User, error) {
	user, ok := s.findByEmail(email)
	if !ok || !utils.CheckPasswordHash(password, user.Password) {
		return models.User{}, ErrInvalidCredentials
	}
	if err := s.session.Set(user); err != nil {
		return models.User{}, err
	}
	return user.Stripped(), nil
}

// Logout clears the persisted session record.
func (s *AuthService) Logout() error {
	return s.session.Clear()
}

// CurrentUser loads the user behind an authenticated request.
func (s *AuthService) CurrentUser(userID string) (models.User, bool) {
	user, ok := s.users.Get(userID)
	if !ok {
		return models.User{}, false
	}
	return user.Stripped(), true
}

func (s *AuthService) findByEmail(email string) (models.User, bool) {
	email = strings.TrimSpace(email)
	matches := s.users.Find(func(u models.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return models.User{}, false
	}
	return matches[0], true
}
