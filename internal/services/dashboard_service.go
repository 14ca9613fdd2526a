package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"golang.org/x/sync/errgroup"
)

const lowStockThreshold = 10

type HomeSummary struct {
	CustomerCount    int              `json:"customerCount"`
	ProductCount     int              `json:"productCount"`
	OrderCount       int              `json:"orderCount"`
	TotalRevenue     float64          `json:"totalRevenue"`
	FeaturedProducts []domain.Product `json:"featuredProducts"`
}

type AdminDashboard struct {
	TotalCustomers   int              `json:"totalCustomers"`
	TotalProducts    int              `json:"totalProducts"`
	TotalOrders      int              `json:"totalOrders"`
	PendingOrders    int              `json:"pendingOrders"`
	TotalRevenue     float64          `json:"totalRevenue"`
	RecentOrders     []domain.Order   `json:"recentOrders"`
	LowStockProducts []domain.Product `json:"lowStockProducts"`
}

type DashboardService struct {
	customers repository.CustomerRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
}

func NewDashboardService(customers repository.CustomerRepository, products repository.ProductRepository, orders repository.OrderRepository) *DashboardService {
	return &DashboardService{customers: customers, products: products, orders: orders}
}

func (s *DashboardService) load(ctx context.Context) ([]domain.Customer, []domain.Product, []domain.Order, error) {
	var (
		customers []domain.Customer
		products  []domain.Product
		orders    []domain.Order
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = s.customers.FindAllActive()
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.FindAll()
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.FindAll()
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return customers, products, orders, nil
}

func (s *DashboardService) HomeSummary(ctx context.Context) (*HomeSummary, error) {
	customers, products, orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	summary := &HomeSummary{
		CustomerCount:    len(customers),
		ProductCount:     len(products),
		OrderCount:       len(orders),
		FeaturedProducts: products,
	}
	for _, o := range orders {
		summary.TotalRevenue += o.TotalPrice
	}
	if len(summary.FeaturedProducts) > 6 {
		summary.FeaturedProducts = summary.FeaturedProducts[:6]
	}
	return summary, nil
}

func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	customers, products, orders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	dash := &AdminDashboard{
		TotalCustomers: len(customers),
		TotalProducts:  len(products),
		TotalOrders:    len(orders),
		RecentOrders:   orders,
	}
	for _, o := range orders {
		dash.TotalRevenue += o.TotalPrice
		if o.Status == domain.StatusPending {
			dash.PendingOrders++
		}
	}
	if len(dash.RecentOrders) > 10 {
		dash.RecentOrders = dash.RecentOrders[:10]
	}
	for _, p := range products {
		if p.Stock < lowStockThreshold {
			dash.LowStockProducts = append(dash.LowStockProducts, p)
		}
	}
	return dash, nil
}
