package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
)

type CreateOrderRequest struct {
	Items   []domain.OrderItem `json:"items"`
	Address string             `json:"address"`
	Total   decimal.Decimal    `json:"total"`
}

type payOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

// CreateOrder submits the order and returns the new order id. The endpoint
// answers {order_id} or {order_ids: [...]}; the first id of order_ids wins
// when present. Every call carries a fresh idempotency key so the remote
// can drop duplicates from a desynchronized client.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (int64, error) {
	header := http.Header{}
	header.Set("Idempotency-Key", uuid.NewString())

	data, err := c.do(ctx, http.MethodPost, "/api/order/create", nil, req, header)
	if err != nil {
		return 0, err
	}

	var resp struct {
		OrderID  int64   `json:"order_id"`
		OrderIDs []int64 `json:"order_ids"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("decode order create response: %w", err)
	}
	if resp.OrderID != 0 {
		return resp.OrderID, nil
	}
	if len(resp.OrderIDs) > 0 {
		return resp.OrderIDs[0], nil
	}
	return 0, ErrNoOrderID
}

func (c *Client) OrderDetail(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	query := url.Values{"id": {strconv.FormatInt(orderID, 10)}}
	data, err := c.do(ctx, http.MethodGet, "/api/order/detail", query, nil, nil)
	if err != nil {
		return nil, err
	}
	var detail domain.OrderDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("decode order detail: %w", err)
	}
	return &detail, nil
}

// PayOrder confirms payment for the order. Payment is simulated remotely;
// a rejection means the order was not payable (unknown, or not pending).
func (c *Client) PayOrder(ctx context.Context, orderID int64) error {
	_, err := c.do(ctx, http.MethodPost, "/api/order/pay", nil, payOrderRequest{OrderID: orderID}, nil)
	return err
}

func (c *Client) OrderCounts(ctx context.Context) (domain.OrderCounts, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/order/counts", nil, nil, nil)
	if err != nil {
		return domain.OrderCounts{}, err
	}
	var counts domain.OrderCounts
	if err := json.Unmarshal(data, &counts); err != nil {
		return domain.OrderCounts{}, fmt.Errorf("decode order counts: %w", err)
	}
	return counts, nil
}

func (c *Client) OrderList(ctx context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status.String())
	}
	data, err := c.do(ctx, http.MethodGet, "/api/order/list", query, nil, nil)
	if err != nil {
		return nil, err
	}
	var orders []domain.OrderSummary
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode order list: %w", err)
	}
	return orders, nil
}
