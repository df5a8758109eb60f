package services_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"shoppinglist/internal/events"
	"shoppinglist/internal/models"
	"shoppinglist/internal/repositories"
	"shoppinglist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{" 12 ", 12},
		{"0", 0},
		{"", 1},
		{"abc", 1},
		{"-2", 1},
		{"1.5", 1},
		{"99999999999999999999999", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.ParseQuantity(tt.in), "input %q", tt.in)
	}
}

func TestQuantityText_UnmarshalJSON(t *testing.T) {
	var form services.ProductForm
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": 4}`), &form))
	assert.Equal(t, services.QuantityText("4"), form.Quantity)

	require.NoError(t, json.Unmarshal([]byte(`{"quantity": "7"}`), &form))
	assert.Equal(t, services.QuantityText("7"), form.Quantity)

	require.NoError(t, json.Unmarshal([]byte(`{"quantity": null}`), &form))
	assert.Equal(t, services.QuantityText(""), form.Quantity)
}

func TestProductService_ListProducts(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	products := []models.Product{
		{ID: 2, Name: "Milk", CategoryID: uintPtr(1)},
		{ID: 1, Name: "Batteries"},
		{ID: 3, Name: "Soap", CategoryID: uintPtr(9)},
	}
	categories := []models.Category{{ID: 1, Name: "Dairy"}}
	productRepo.On("GetAll").Return(products, nil).Once()
	categoryRepo.On("GetAll").Return(categories, nil).Once()

	views, err := service.ListProducts()
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Milk", views[0].Product.Name)
	require.NotNil(t, views[0].Category)
	assert.Equal(t, "Dairy", views[0].Category.Name)
	assert.Nil(t, views[1].Category)
	assert.Nil(t, views[2].Category)
	productRepo.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
}

func TestProductService_GetProductDetails(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	productRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1, Name: "Milk", CategoryID: uintPtr(4)}, nil).Once()
	categoryRepo.On("GetByID", uint(4)).Return(&models.Category{ID: 4, Name: "Dairy"}, nil).Once()

	view, err := service.GetProductDetails(1)
	require.NoError(t, err)
	assert.Equal(t, "Dairy", view.Category.Name)

	// A dangling category reference is shown as no category.
	productRepo.On("GetByID", uint(2)).Return(&models.Product{ID: 2, Name: "Tea", CategoryID: uintPtr(5)}, nil).Once()
	categoryRepo.On("GetByID", uint(5)).Return(nil, fmt.Errorf("category with ID 5: %w", repositories.ErrNotFound)).Once()
	view, err = service.GetProductDetails(2)
	require.NoError(t, err)
	assert.Nil(t, view.Category)

	productRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.GetProductDetails(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	productRepo.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
}

func TestProductService_SaveProduct_RequiresNameAndCategory(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	_, err := service.SaveProduct(services.ProductForm{Name: "   ", CategoryID: uintPtr(1)})
	require.ErrorIs(t, err, services.ErrValidation)
	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")

	_, err = service.SaveProduct(services.ProductForm{Name: "Milk"})
	require.ErrorIs(t, err, services.ErrValidation)
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "category_id")

	categoryRepo.On("GetByID", uint(42)).Return(nil, fmt.Errorf("category with ID 42: %w", repositories.ErrNotFound)).Once()
	_, err = service.SaveProduct(services.ProductForm{Name: "Milk", CategoryID: uintPtr(42)})
	assert.ErrorIs(t, err, services.ErrValidation)

	productRepo.AssertNotCalled(t, "Create", mock.Anything)
	productRepo.AssertNotCalled(t, "Update", mock.Anything)
	categoryRepo.AssertExpectations(t)
}

func TestProductService_SaveProduct_Insert(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	pub := new(MockPublisher)
	service := services.NewProductService(productRepo, categoryRepo, events.NewNotifier(pub))

	categoryRepo.On("GetByID", uint(1)).Return(&models.Category{ID: 1, Name: "Dairy"}, nil).Once()
	productRepo.On("Create", mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) { args.Get(0).(*models.Product).ID = 10 }).
		Return(nil).Once()
	pub.On("Publish", "product.created", mock.Anything).Return(nil).Once()

	before := time.Now().UTC()
	product, err := service.SaveProduct(services.ProductForm{
		Name:       " Milk ",
		Quantity:   "not a number",
		Unit:       "l",
		CategoryID: uintPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), product.ID)
	assert.Equal(t, "Milk", product.Name)
	assert.Equal(t, services.DefaultQuantity, product.Quantity)
	assert.Nil(t, product.Notes)
	assert.WithinDuration(t, before, product.DateAdded, time.Second)

	productRepo.AssertNotCalled(t, "Update", mock.Anything)
	productRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestProductService_SaveProduct_UpdateKeepsDateAdded(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	added := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	categoryRepo.On("GetByID", uint(2)).Return(&models.Category{ID: 2, Name: "Bakery"}, nil).Once()
	productRepo.On("GetByID", uint(5)).Return(&models.Product{ID: 5, Name: "Bread", DateAdded: added, Quantity: 1}, nil).Once()
	productRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 5 && p.DateAdded.Equal(added) && p.Quantity == 3 && *p.Notes == "wholegrain"
	})).Return(nil).Once()

	product, err := service.SaveProduct(services.ProductForm{
		ID:         5,
		Name:       "Bread",
		Quantity:   "3",
		CategoryID: uintPtr(2),
		Notes:      "wholegrain",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(5), product.ID)

	productRepo.AssertNotCalled(t, "Create", mock.Anything)
	productRepo.AssertExpectations(t)
}

func TestProductService_SaveProduct_UpdateMissing(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(productRepo, categoryRepo, nil)

	categoryRepo.On("GetByID", uint(2)).Return(&models.Category{ID: 2}, nil).Once()
	productRepo.On("GetByID", uint(77)).Return(nil, fmt.Errorf("product with ID 77: %w", repositories.ErrNotFound)).Once()

	_, err := service.SaveProduct(services.ProductForm{ID: 77, Name: "Ghost", CategoryID: uintPtr(2)})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	productRepo.AssertNotCalled(t, "Create", mock.Anything)
	productRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_DeleteProduct(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	pub := new(MockPublisher)
	service := services.NewProductService(productRepo, categoryRepo, events.NewNotifier(pub))

	productRepo.On("Delete", uint(1)).Return(nil).Once()
	pub.On("Publish", "product.deleted", mock.Anything).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(1))

	productRepo.On("Delete", uint(99)).Return(fmt.Errorf("product with ID 99 for deletion: %w", repositories.ErrNotFound)).Once()
	err := service.DeleteProduct(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	productRepo.AssertExpectations(t)
	pub.AssertExpectations(t)
}
