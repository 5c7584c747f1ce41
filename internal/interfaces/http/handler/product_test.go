package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/delivery/backend/internal/application/catalog"
	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/identity"
	"github.com/delivery/backend/internal/domain/shared"
	"github.com/delivery/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

func newProductHandler(productRepo *MockProductRepository, typeRepo *MockProductTypeRepository, manufacturerRepo *MockManufacturerRepository) *ProductHandler {
	service := catalogapp.NewProductService(productRepo, typeRepo, manufacturerRepo)
	return NewProductHandler(service)
}

func testProduct(t *testing.T, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, valueobject.NewMoneyBYN(decimal.NewFromFloat(price)), catalog.UnitPieces, decimal.NewFromFloat(0.5))
	require.NoError(t, err)
	require.NoError(t, product.SetStock(stock))
	return product
}

func TestProductHandler_Get(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := newProductHandler(productRepo, new(MockProductTypeRepository), new(MockManufacturerRepository))

	product := testProduct(t, "Sparkling Water", 1.99, 20)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	router := gin.New()
	router.GET("/catalog/products/:id", handler.Get)

	rec := performJSON(router, http.MethodGet, "/catalog/products/"+product.ID.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sparkling Water")
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := newProductHandler(productRepo, new(MockProductTypeRepository), new(MockManufacturerRepository))

	productRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	router := gin.New()
	router.GET("/catalog/products/:id", handler.Get)

	rec := performJSON(router, http.MethodGet, "/catalog/products/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_NOT_FOUND")
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	handler := newProductHandler(new(MockProductRepository), new(MockProductTypeRepository), new(MockManufacturerRepository))

	router := gin.New()
	router.GET("/catalog/products/:id", handler.Get)

	rec := performJSON(router, http.MethodGet, "/catalog/products/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_List_AnonymousSeesActiveOnly(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := newProductHandler(productRepo, new(MockProductTypeRepository), new(MockManufacturerRepository))

	active := testProduct(t, "Visible", 2.50, 5)
	productRepo.On("FindActive", mock.Anything, mock.Anything).Return([]catalog.Product{*active}, nil)
	productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	router := gin.New()
	router.GET("/catalog/products", handler.List)

	rec := performJSON(router, http.MethodGet, "/catalog/products", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	productRepo.AssertCalled(t, "FindActive", mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestProductHandler_List_StaffSeesEverything(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := newProductHandler(productRepo, new(MockProductTypeRepository), new(MockManufacturerRepository))

	productRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)
	productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	staff := identity.NewEmployeePrincipal(uuid.New(), "staff@example.com", uuid.New())

	router := gin.New()
	router.GET("/catalog/products", withPrincipal(staff), handler.List)

	rec := performJSON(router, http.MethodGet, "/catalog/products", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	productRepo.AssertCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestProductHandler_Create(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := newProductHandler(productRepo, new(MockProductTypeRepository), new(MockManufacturerRepository))

	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	router := gin.New()
	router.POST("/catalog/products", handler.Create)

	body := map[string]any{
		"name":  "Oat Milk",
		"price": "3.20",
		"unit":  "liters",
	}
	rec := performJSON(router, http.MethodPost, "/catalog/products", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Oat Milk")
}

func TestProductHandler_Create_ValidationFailure(t *testing.T) {
	handler := newProductHandler(new(MockProductRepository), new(MockProductTypeRepository), new(MockManufacturerRepository))

	router := gin.New()
	router.POST("/catalog/products", handler.Create)

	// Missing required name and an unsupported unit
	body := map[string]any{
		"price": "3.20",
		"unit":  "gallons",
	}
	rec := performJSON(router, http.MethodPost, "/catalog/products", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Delete(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := newProductHandler(productRepo, new(MockProductTypeRepository), new(MockManufacturerRepository))

	product := testProduct(t, "Retired Item", 1.00, 0)
	id := product.ID
	productRepo.On("FindByID", mock.Anything, id).Return(product, nil)
	productRepo.On("Delete", mock.Anything, id).Return(nil)

	router := gin.New()
	router.DELETE("/catalog/products/:id", handler.Delete)

	rec := performJSON(router, http.MethodDelete, "/catalog/products/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProductHandler_CreateType_Duplicate(t *testing.T) {
	typeRepo := new(MockProductTypeRepository)
	handler := newProductHandler(new(MockProductRepository), typeRepo, new(MockManufacturerRepository))

	existing := &catalog.ProductType{Name: "Dairy"}
	typeRepo.On("FindByName", mock.Anything, "Dairy").Return(existing, nil)

	router := gin.New()
	router.POST("/catalog/types", handler.CreateType)

	rec := performJSON(router, http.MethodPost, "/catalog/types", map[string]any{"name": "Dairy"})

	assert.Equal(t, http.StatusConflict, rec.Code)
}
