package services

import (
	"strings"

	"shoppinglist/internal/events"
	"shoppinglist/internal/models"
	"shoppinglist/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CategoryForm is the add/edit category form. ID zero means a new category.
type CategoryForm struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryService backs the categories tab.
type CategoryService struct {
	repo     repositories.CategoryRepository
	notifier *events.Notifier
	validate *validator.Validate
}

// NewCategoryService creates a new CategoryService. notifier may be nil.
func NewCategoryService(repo repositories.CategoryRepository, notifier *events.Notifier) *CategoryService {
	return &CategoryService{
		repo:     repo,
		notifier: notifier,
		validate: newValidator(),
	}
}

// ListCategories returns all categories in name order.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// GetCategory returns a single category.
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// SaveCategory inserts a new category or renames an existing one.
func (s *CategoryService) SaveCategory(form CategoryForm) (*models.Category, error) {
	category := &models.Category{ID: form.ID, Name: strings.TrimSpace(form.Name)}
	if category.Name == "" {
		return nil, &ValidationError{Fields: map[string]string{"name": "category name must not be blank"}}
	}
	if err := validateStruct(s.validate, category); err != nil {
		return nil, err
	}

	if form.ID == 0 {
		if err := s.repo.Create(category); err != nil {
			return nil, err
		}
		s.notifier.Notify(events.EntityCategory, events.ActionCreated, category.ID)
		return category, nil
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	s.notifier.Notify(events.EntityCategory, events.ActionUpdated, category.ID)
	return category, nil
}

// DeleteCategory deletes a category. Products in it stay, uncategorised.
func (s *CategoryService) DeleteCategory(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.notifier.Notify(events.EntityCategory, events.ActionDeleted, id)
	return nil
}
