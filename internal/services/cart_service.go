package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/domain"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartService struct {
	cart        repository.CartRepository
	products    repository.ProductRepository
	customers   repository.CustomerRepository
	orders      repository.OrderRepository
	publisher   rabbit.EventPublisher
	redisClient *redis.Client
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository, customers repository.CustomerRepository, orders repository.OrderRepository, publisher rabbit.EventPublisher) *CartService {
	return &CartService{
		cart:      cart,
		products:  products,
		customers: customers,
		orders:    orders,
		publisher: publisher,
	}
}

func (s *CartService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *CartService) Items(username string) ([]domain.CartItem, error) {
	return s.cart.FindByUsername(username)
}

// Add snapshots the product name and current price into a new cart line.
func (s *CartService) Add(ctx context.Context, username, productID string, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.getProductWithCache(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	item := &domain.CartItem{
		CustomerUsername: username,
		ProductID:        product.ID,
		ProductName:      product.Name,
		Quantity:         quantity,
		UnitPrice:        product.Price,
		AddedAt:          time.Now(),
	}

	if err := s.cart.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) Remove(id uint64) error {
	item, err := s.cart.FindByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cart.Delete(id)
}

func (s *CartService) Clear(username string) error {
	return s.cart.Clear(username)
}

// Checkout converts every cart line into an order, all or nothing. The
// customer profile and every line's product are resolved before any write;
// lines are then claimed atomically so a concurrent checkout of the same
// cart converts each line at most once, and the orders are inserted in a
// single transaction. A failed insert puts the claimed lines back.
func (s *CartService) Checkout(ctx context.Context, username string) ([]domain.Order, error) {
	customer, err := s.customers.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	lines, err := s.cart.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	resolved := make(map[string]*domain.Product, len(lines))
	for _, line := range lines {
		if _, ok := resolved[line.ProductID]; ok {
			continue
		}
		product, err := s.products.FindByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("checkout aborted: %w (product %s)", ErrProductNotFound, line.ProductID)
		}
		resolved[line.ProductID] = product
	}

	claimed, err := s.cart.ClaimByUsername(username)
	if err != nil {
		return nil, err
	}
	if len(claimed) == 0 {
		// Another checkout won the race for these lines.
		return nil, ErrEmptyCart
	}

	now := time.Now()
	orders := make([]*domain.Order, 0, len(claimed))
	for _, line := range claimed {
		product, ok := resolved[line.ProductID]
		if !ok {
			product, err = s.products.FindByID(line.ProductID)
			if err != nil || product == nil {
				if restoreErr := s.cart.Restore(claimed); restoreErr != nil {
					log.Printf("failed to restore cart for %q: %v", username, restoreErr)
				}
				if err != nil {
					return nil, err
				}
				return nil, ErrProductNotFound
			}
		}
		orders = append(orders, &domain.Order{
			ID:           uuid.New().String(),
			CustomerID:   customer.ID,
			CustomerName: customer.FullName(),
			ProductID:    product.ID,
			ProductName:  product.Name,
			OrderDate:    now,
			Quantity:     line.Quantity,
			UnitPrice:    product.Price,
			TotalPrice:   product.Price * float64(line.Quantity),
			Status:       domain.StatusPending,
		})
	}

	if err := s.orders.SaveBatch(orders); err != nil {
		if restoreErr := s.cart.Restore(claimed); restoreErr != nil {
			log.Printf("failed to restore cart for %q after order error: %v", username, restoreErr)
		}
		return nil, err
	}

	out := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, *order)
		go s.publishOrderCreated(context.Background(), *order)
	}

	log.Printf("customer %q checked out %d cart lines", username, len(out))
	return out, nil
}

func (s *CartService) getProductWithCache(ctx context.Context, productID string) (*domain.Product, error) {
	cacheKey := "product:" + productID

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var product domain.Product
			if err := json.Unmarshal([]byte(cached), &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && product != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return product, nil
}

// WarmupProductCache primes the product cache from the catalog.
func (s *CartService) WarmupProductCache(ctx context.Context) error {
	if s.redisClient == nil {
		return nil
	}

	products, err := s.products.FindAll()
	if err != nil {
		return err
	}

	for i := range products {
		if data, err := json.Marshal(&products[i]); err == nil {
			s.redisClient.Set(ctx, "product:"+products[i].ID, data, 5*time.Minute)
		}
	}
	return nil
}

func (s *CartService) publishOrderCreated(ctx context.Context, order domain.Order) {
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
