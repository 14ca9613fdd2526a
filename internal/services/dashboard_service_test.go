package services

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/mocks"

	"github.com/stretchr/testify/assert"
)

func dashboardFixtures() ([]domain.Customer, []domain.Product, []domain.Order) {
	customers := []domain.Customer{
		{ID: "1", Name: "John", Surname: "Doe"},
		{ID: "2", Name: "Jane", Surname: "Smith"},
	}
	products := []domain.Product{
		{ID: "1", Name: "Laptop", Price: 999.99, Stock: 10},
		{ID: "2", Name: "Mouse", Price: 29.99, Stock: 3},
		{ID: "3", Name: "Keyboard", Price: 89.99, Stock: 15},
	}
	orders := []domain.Order{
		{ID: "1", TotalPrice: 999.99, Status: domain.StatusCompleted},
		{ID: "2", TotalPrice: 59.98, Status: domain.StatusPending},
		{ID: "3", TotalPrice: 89.99, Status: domain.StatusPending},
	}
	return customers, products, orders
}

func TestDashboardService_HomeSummary(t *testing.T) {
	customers, products, orders := dashboardFixtures()

	customerRepo := new(mocks.MockCustomerRepository)
	customerRepo.On("FindAllActive").Return(customers, nil)
	productRepo := new(mocks.MockProductRepository)
	productRepo.On("FindAll").Return(products, nil)
	orderRepo := new(mocks.MockOrderRepository)
	orderRepo.On("FindAll").Return(orders, nil)

	service := NewDashboardService(customerRepo, productRepo, orderRepo)
	summary, err := service.HomeSummary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.CustomerCount)
	assert.Equal(t, 3, summary.ProductCount)
	assert.Equal(t, 3, summary.OrderCount)
	assert.Equal(t, 999.99+59.98+89.99, summary.TotalRevenue)
	assert.Len(t, summary.FeaturedProducts, 3)
}

func TestDashboardService_Admin(t *testing.T) {
	customers, products, orders := dashboardFixtures()

	customerRepo := new(mocks.MockCustomerRepository)
	customerRepo.On("FindAllActive").Return(customers, nil)
	productRepo := new(mocks.MockProductRepository)
	productRepo.On("FindAll").Return(products, nil)
	orderRepo := new(mocks.MockOrderRepository)
	orderRepo.On("FindAll").Return(orders, nil)

	service := NewDashboardService(customerRepo, productRepo, orderRepo)
	dash, err := service.Admin(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, dash.TotalCustomers)
	assert.Equal(t, 3, dash.TotalOrders)
	assert.Equal(t, 2, dash.PendingOrders)
	assert.Equal(t, 999.99+59.98+89.99, dash.TotalRevenue)
	// Only the mouse is below the low stock threshold.
	assert.Len(t, dash.LowStockProducts, 1)
	assert.Equal(t, "Mouse", dash.LowStockProducts[0].Name)
}

func TestDashboardService_PropagatesRepositoryError(t *testing.T) {
	customers, products, _ := dashboardFixtures()

	customerRepo := new(mocks.MockCustomerRepository)
	customerRepo.On("FindAllActive").Return(customers, nil)
	productRepo := new(mocks.MockProductRepository)
	productRepo.On("FindAll").Return(products, nil)
	orderRepo := new(mocks.MockOrderRepository)
	orderRepo.On("FindAll").Return(nil, errors.New("database error"))

	service := NewDashboardService(customerRepo, productRepo, orderRepo)
	summary, err := service.HomeSummary(context.Background())

	assert.Error(t, err)
	assert.Nil(t, summary)
}
