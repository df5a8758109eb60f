package services

import (
	"strings"

	"shoppinglist/internal/events"
	"shoppinglist/internal/models"
	"shoppinglist/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// UserService handles business logic related to users.
type UserService struct {
	repo     repositories.UserRepository
	notifier *events.Notifier
	validate *validator.Validate
}

// NewUserService creates a new UserService. notifier may be nil.
func NewUserService(repo repositories.UserRepository, notifier *events.Notifier) *UserService {
	return &UserService{
		repo:     repo,
		notifier: notifier,
		validate: newValidator(),
	}
}

// CreateUsers validates and stores users. Nothing is stored if any is invalid.
func (s *UserService) CreateUsers(users []models.User) ([]models.User, error) {
	for i := range users {
		normalizeUser(&users[i])
		if err := validateStruct(s.validate, users[i]); err != nil {
			return nil, err
		}
	}
	if err := s.repo.CreateMany(users); err != nil {
		return nil, err
	}
	for _, u := range users {
		s.notifier.Notify(events.EntityUser, events.ActionCreated, u.ID)
	}
	return users, nil
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// GetUser retrieves a single user by ID.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

// UpdateUser overwrites the user with the given ID.
func (s *UserService) UpdateUser(id uint, user *models.User) error {
	user.ID = id
	normalizeUser(user)
	if err := validateStruct(s.validate, user); err != nil {
		return err
	}
	if err := s.repo.Update(user); err != nil {
		return err
	}
	s.notifier.Notify(events.EntityUser, events.ActionUpdated, id)
	return nil
}

// DeleteUser deletes a user by ID.
func (s *UserService) DeleteUser(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.notifier.Notify(events.EntityUser, events.ActionDeleted, id)
	return nil
}

func normalizeUser(u *models.User) {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}
