package services

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrAccessDenied    = errors.New("access denied")
)

type OrderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	products  repository.ProductRepository
	publisher rabbit.EventPublisher
}

func NewOrderService(orders repository.OrderRepository, customers repository.CustomerRepository, products repository.ProductRepository, publisher rabbit.EventPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		customers: customers,
		products:  products,
		publisher: publisher,
	}
}

// List returns all orders for admins and only owned orders for customers,
// newest first.
func (s *OrderService) List(identity auth.Identity) ([]domain.Order, error) {
	all, err := s.orders.FindAll()
	if err != nil {
		return nil, err
	}
	if identity.IsAdmin() {
		return all, nil
	}

	owned := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if auth.OwnsResource(identity, o.CustomerName) {
			owned = append(owned, o)
		}
	}
	return owned, nil
}

func (s *OrderService) Get(identity auth.Identity, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !auth.OwnsResource(identity, order.CustomerName) {
		log.Printf("user %q denied access to order %s", identity.Username, id)
		return nil, ErrAccessDenied
	}
	return order, nil
}

// Create places a single order. Customer and product names plus the unit
// price are snapshotted into the record; later catalog edits leave
// historical orders untouched.
func (s *OrderService) Create(ctx context.Context, customerID, productID string, quantity int) (*domain.Order, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	order := &domain.Order{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.FullName(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		OrderDate:    time.Now(),
		Quantity:     quantity,
		UnitPrice:    product.Price,
		TotalPrice:   product.Price * float64(quantity),
		Status:       domain.StatusPending,
	}

	if err := s.orders.Save(order); err != nil {
		return nil, err
	}

	go s.publishOrderCreated(context.Background(), order)

	return order, nil
}

// UpdateStatus overwrites the status unconditionally; any string is a
// legal status and no transition graph is enforced.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	order, err := s.orders.FindByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if err := s.orders.UpdateStatus(id, status); err != nil {
		return err
	}

	go func() {
		evt := domain.OrderStatusChangedEvent{
			OrderID:   id,
			Status:    status,
			ChangedAt: time.Now(),
		}
		if err := s.publisher.Publish(context.Background(), "order.status_changed", evt); err != nil {
			log.Printf("failed to publish order.status_changed: %v", err)
		}
	}()

	return nil
}

func (s *OrderService) Delete(id string) error {
	order, err := s.orders.FindByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orders.Delete(id)
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:      order.ID,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		ProductID:    order.ProductID,
		Quantity:     order.Quantity,
		TotalPrice:   order.TotalPrice,
		CreatedAt:    order.OrderDate,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("failed to publish order.created: %v", err)
	}
}
