package store

import (
	"encoding/json"

	"github.com/oculab/octascan-api/internal/models"
)

const sessionKey = "currentUser"

// Session persists the authenticated identity under the currentUser key.
// The stored record never contains the password hash.
type Session struct {
	backend Backend
}

func NewSession(backend Backend) *Session {
	return &Session{backend: backend}
}

func (s *Session) Set(user models.User) error {
	data, err := json.Marshal(user.Stripped())
	if err != nil {
		return err
	}
	return s.backend.Put(sessionKey, data)
}

func (s *Session) Get() (models.User, bool) {
	data, err := s.backend.Get(sessionKey)
	if err != nil {
		return models.User{}, false
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return models.User{}, false
	}
	return user, true
}

func (s *Session) Clear() error {
	return s.backend.Delete(sessionKey)
}
