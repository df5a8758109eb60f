package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"shoppinglist/internal/events"
	"shoppinglist/internal/models"
	"shoppinglist/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// DefaultQuantity is used when the quantity text is empty or not a number.
const DefaultQuantity = 1

// QuantityText is the raw quantity field of the product form. It accepts a
// JSON string or a JSON number.
type QuantityText string

func (q *QuantityText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = QuantityText(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	*q = QuantityText(data)
	return nil
}

// ParseQuantity converts quantity text to a count. Only plain digits are
// accepted; anything else, including an empty string, yields DefaultQuantity.
func ParseQuantity(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultQuantity
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return DefaultQuantity
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return DefaultQuantity
	}
	return n
}

// ProductForm is the add/edit product form. ID zero means a new product.
type ProductForm struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	Quantity   QuantityText `json:"quantity"`
	Unit       string       `json:"unit"`
	CategoryID *uint        `json:"category_id"`
	Notes      string       `json:"notes"`
}

// ProductView is a product together with the category it belongs to, if any.
type ProductView struct {
	Product  models.Product   `json:"product"`
	Category *models.Category `json:"category"`
}

// ProductService backs the products tab: the list, details and add/edit
// screens.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	notifier     *events.Notifier
	validate     *validator.Validate
	now          func() time.Time
}

// NewProductService creates a new ProductService. notifier may be nil.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, notifier *events.Notifier) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		notifier:     notifier,
		validate:     newValidator(),
		now:          time.Now,
	}
}

// ListProducts returns every product, newest first, joined with its category.
func (s *ProductService) ListProducts() ([]ProductView, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return joinCategories(products, categories), nil
}

// ListProductsByCategory returns the products of one category.
func (s *ProductService) ListProductsByCategory(categoryID uint) ([]ProductView, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.GetByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	return joinCategories(products, []models.Category{*category}), nil
}

// GetProductDetails returns a product and its category. The category is nil
// when the product has none or it no longer exists.
func (s *ProductService) GetProductDetails(id uint) (*ProductView, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	view := &ProductView{Product: *product}
	if product.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*product.CategoryID)
		switch {
		case err == nil:
			view.Category = category
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, err
		}
	}
	return view, nil
}

// SaveProduct inserts a new product or updates an existing one. A product is
// only saved when it has a non-blank name and an existing category.
func (s *ProductService) SaveProduct(form ProductForm) (*models.Product, error) {
	name := strings.TrimSpace(form.Name)
	fields := map[string]string{}
	if name == "" {
		fields["name"] = "product name must not be blank"
	}
	if form.CategoryID == nil || *form.CategoryID == 0 {
		fields["category_id"] = "a category must be selected"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.categoryRepo.GetByID(*form.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ValidationError{Fields: map[string]string{"category_id": "selected category does not exist"}}
		}
		return nil, err
	}

	categoryID := *form.CategoryID
	product := &models.Product{
		Name:       name,
		Quantity:   ParseQuantity(string(form.Quantity)),
		Unit:       strings.TrimSpace(form.Unit),
		CategoryID: &categoryID,
		Notes:      optionalText(form.Notes),
	}
	if err := validateStruct(s.validate, product); err != nil {
		return nil, err
	}

	if form.ID == 0 {
		product.DateAdded = s.now().UTC()
		if err := s.productRepo.Create(product); err != nil {
			return nil, err
		}
		s.notifier.Notify(events.EntityProduct, events.ActionCreated, product.ID)
		return product, nil
	}

	existing, err := s.productRepo.GetByID(form.ID)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	product.DateAdded = existing.DateAdded
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.notifier.Notify(events.EntityProduct, events.ActionUpdated, product.ID)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.notifier.Notify(events.EntityProduct, events.ActionDeleted, id)
	return nil
}

func joinCategories(products []models.Product, categories []models.Category) []ProductView {
	byID := make(map[uint]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		view := ProductView{Product: p}
		if p.CategoryID != nil {
			view.Category = byID[*p.CategoryID]
		}
		views = append(views, view)
	}
	return views
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
