package store

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"citysense-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[\d\s\-()]{10,}$`)
)

// Registration is the input accepted by UserStore.Register.
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UserStore is the demo account registry. Passwords are kept as bcrypt
// hashes.
type UserStore struct {
	mu      sync.RWMutex
	users   []*models.User
	byEmail map[string]*models.User
	now     func() time.Time
}

func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]*models.User),
		now:     time.Now,
	}
}

// Register validates r and adds a new account with the user role.
func (s *UserStore) Register(r Registration) (models.User, error) {
	name := strings.TrimSpace(r.Name)
	email := strings.ToLower(strings.TrimSpace(r.Email))
	phone := strings.TrimSpace(r.Phone)

	switch {
	case name == "" || email == "" || r.Password == "":
		return models.User{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	case utf8.RuneCountInString(name) < 2:
		return models.User{}, fmt.Errorf("%w: name must be at least 2 characters long", ErrValidation)
	case !emailPattern.MatchString(email):
		return models.User{}, fmt.Errorf("%w: invalid email address", ErrValidation)
	case len(r.Password) < 6:
		return models.User{}, fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	case phone != "" && !phonePattern.MatchString(phone):
		return models.User{}, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}

	return s.add(name, email, phone, r.Password, models.RoleUser)
}

// AddUser inserts an account with an explicit role. It is used to seed
// the demo accounts.
func (s *UserStore) AddUser(name, email, password string, role models.Role) (models.User, error) {
	return s.add(name, strings.ToLower(email), "", password, role)
}

func (s *UserStore) add(name, email, phone, password string, role models.Role) (models.User, error) {
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Role:      role,
		Password:  password,
		CreatedAt: s.now(),
	}
	if err := user.HashPassword(); err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return models.User{}, fmt.Errorf("%s: %w", email, ErrDuplicateUser)
	}
	s.users = append(s.users, user)
	s.byEmail[email] = user
	return *user, nil
}

// Authenticate returns the account matching email and password.
func (s *UserStore) Authenticate(email, password string) (models.User, error) {
	s.mu.RLock()
	user, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok || !user.ComparePassword(password) {
		return models.User{}, ErrInvalidCredentials
	}
	return *user, nil
}

// FindByID looks an account up by its hex id.
func (s *UserStore) FindByID(id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == oid {
			return *u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", id, ErrNotFound)
}
