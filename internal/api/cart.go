package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Akyl0n/202507Shopping-website/internal/domain"
)

type addCartRequest struct {
	ProductID int64 `json:"product_id"`
	ModelID   int64 `json:"model_id"`
	Qty       int   `json:"qty"`
}

type updateCartRequest struct {
	ID  int64 `json:"id"`
	Qty int   `json:"qty"`
}

type removeCartRequest struct {
	ID int64 `json:"id"`
}

// GetCart returns the authoritative cart lines. The endpoint answers with
// either a bare array or {items: [...]}; both shapes normalize to one slice.
func (c *Client) GetCart(ctx context.Context) ([]domain.CartLine, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/cart", nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeCartLines(data)
}

func decodeCartLines(data []byte) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err == nil {
		return lines, nil
	}
	var wrapped struct {
		Items []domain.CartLine `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode cart response: %w", err)
	}
	return wrapped.Items, nil
}

// AddCartLine posts a new line; the remote increments an existing line when
// product and model already match.
func (c *Client) AddCartLine(ctx context.Context, productID, modelID int64, qty int) error {
	_, err := c.do(ctx, http.MethodPost, "/api/cart", nil, addCartRequest{
		ProductID: productID,
		ModelID:   modelID,
		Qty:       qty,
	}, nil)
	return err
}

func (c *Client) UpdateCartQty(ctx context.Context, id int64, qty int) error {
	_, err := c.do(ctx, http.MethodPut, "/api/cart", nil, updateCartRequest{ID: id, Qty: qty}, nil)
	return err
}

func (c *Client) RemoveCartLine(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/cart", nil, removeCartRequest{ID: id}, nil)
	return err
}
