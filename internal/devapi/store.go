package devapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
)

var (
	ErrProductUnknown  = errors.New("unknown product model")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderNotPayable = errors.New("order is not pending")
)

// Product is one sellable product+model pair in the dev catalog.
type Product struct {
	ProductID int64
	ModelID   int64
	Name      string
	Model     string
	Price     decimal.Decimal
}

type order struct {
	detail domain.OrderDetail
	user   string
}

// Store holds the dev server's state in memory behind one RWMutex.
// It implements the remote side of the cart/order contract: carts keyed by
// user, a single order table, idempotency-key dedupe on order creation.
type Store struct {
	mu sync.RWMutex

	sessions map[string]string // token -> username
	catalog  map[[2]int64]Product

	nextLineID  int64
	nextOrderID int64
	carts       map[string][]domain.CartLine
	orders      []*order
	idempotency map[string]int64 // idempotency key -> order id
	addresses   map[string]string
}

func NewStore() *Store {
	return &Store{
		sessions:    make(map[string]string),
		catalog:     make(map[[2]int64]Product),
		carts:       make(map[string][]domain.CartLine),
		idempotency: make(map[string]int64),
		addresses:   make(map[string]string),
	}
}

// Seed adds products to the dev catalog.
func (s *Store) Seed(products ...Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.catalog[[2]int64{p.ProductID, p.ModelID}] = p
	}
}

func (s *Store) CreateSession(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.sessions[token] = username
	return token
}

func (s *Store) User(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.sessions[token]
	return user, ok
}

// Lines returns the user's cart, newest line first.
func (s *Store) Lines(user string) []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := make([]domain.CartLine, len(s.carts[user]))
	copy(lines, s.carts[user])
	return lines
}

// AddLine appends a cart line, or bumps the quantity when a line for the
// same product and model already exists.
func (s *Store) AddLine(user string, productID, modelID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.catalog[[2]int64{productID, modelID}]
	if !ok {
		return ErrProductUnknown
	}

	lines := s.carts[user]
	for i := range lines {
		if lines[i].ProductID == productID && lines[i].ModelID == modelID {
			lines[i].Qty += qty
			return nil
		}
	}

	s.nextLineID++
	s.carts[user] = append(lines, domain.CartLine{
		ID:        s.nextLineID,
		ProductID: productID,
		ModelID:   modelID,
		Name:      product.Name,
		Model:     product.Model,
		Price:     product.Price,
		Qty:       qty,
	})
	return nil
}

func (s *Store) UpdateQty(user string, id int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[user]
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Qty = qty
			return nil
		}
	}
	return ErrLineNotFound
}

func (s *Store) RemoveLine(user string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[user]
	for i := range lines {
		if lines[i].ID == id {
			s.carts[user] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// CreateOrder records a pending order. A repeated idempotency key returns
// the order it created the first time instead of a duplicate.
func (s *Store) CreateOrder(user, idempotencyKey string, items []domain.OrderItem, address string, total decimal.Decimal) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idempotencyKey != "" {
		if id, ok := s.idempotency[idempotencyKey]; ok {
			return id
		}
	}

	s.nextOrderID++
	s.orders = append(s.orders, &order{
		user: user,
		detail: domain.OrderDetail{
			ID:         s.nextOrderID,
			Status:     domain.OrderStatusPending,
			Items:      items,
			TotalPrice: total,
			Address:    address,
			CreatedAt:  time.Now().Format("2006-01-02 15:04:05"),
		},
	})
	if idempotencyKey != "" {
		s.idempotency[idempotencyKey] = s.nextOrderID
	}
	return s.nextOrderID
}

func (s *Store) Detail(user string, id int64) (domain.OrderDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o := s.find(user, id)
	if o == nil {
		return domain.OrderDetail{}, ErrOrderNotFound
	}
	return o.detail, nil
}

// Pay marks a pending order paid. Anything else is rejected, matching the
// remote contract's "pay only from pending" rule.
func (s *Store) Pay(user string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.find(user, id)
	if o == nil {
		return ErrOrderNotFound
	}
	if o.detail.Status != domain.OrderStatusPending {
		return ErrOrderNotPayable
	}
	o.detail.Status = domain.OrderStatusPaid
	return nil
}

func (s *Store) List(user string, status domain.OrderStatus) []domain.OrderSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := []domain.OrderSummary{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		o := s.orders[i]
		if o.user != user {
			continue
		}
		if status != "" && o.detail.Status != status {
			continue
		}
		summaries = append(summaries, domain.OrderSummary{
			ID:         o.detail.ID,
			Status:     o.detail.Status,
			TotalPrice: o.detail.TotalPrice,
			Address:    o.detail.Address,
			CreatedAt:  o.detail.CreatedAt,
			ItemCount:  len(o.detail.Items),
		})
	}
	return summaries
}

func (s *Store) Counts(user string) domain.OrderCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts domain.OrderCounts
	for _, o := range s.orders {
		if o.user != user {
			continue
		}
		switch o.detail.Status {
		case domain.OrderStatusPending:
			counts.Pending++
		case domain.OrderStatusToShip:
			counts.ToShip++
		case domain.OrderStatusToReceive:
			counts.ToReceive++
		case domain.OrderStatusToReview:
			counts.ToReview++
		case domain.OrderStatusRefund:
			counts.Refund++
		}
	}
	return counts
}

func (s *Store) Address(user string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addresses[user]
}

func (s *Store) SetAddress(user, address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[user] = address
}

func (s *Store) find(user string, id int64) *order {
	for _, o := range s.orders {
		if o.user == user && o.detail.ID == id {
			return o
		}
	}
	return nil
}
